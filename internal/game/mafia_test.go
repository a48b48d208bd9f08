package game

import (
	"testing"

	"gamehub/internal/room"

	"github.com/stretchr/testify/require"
)

func startMafia(t *testing.T, players int) (*mafia, []room.Seat, *room.Outcome) {
	t.Helper()
	seedRNG(t, 21)
	g := newMafia()
	seats := seatsFor(players)
	out, err := g.Start(seats, nil)
	require.NoError(t, err)
	require.Equal(t, room.PhaseNight, out.Phase)
	return g, seats, out
}

func byRole(t *testing.T, g *mafia, seats []room.Seat, role string) room.Seat {
	t.Helper()
	for _, s := range seats {
		if g.roles[s.ID] == role {
			return s
		}
	}
	t.Fatalf("no seat holds role %s", role)
	return room.Seat{}
}

// runNight plays a full night: the mafia picks a kill, the doctor picks a
// save and the detective investigates, then the night resolves.
func runNight(t *testing.T, g *mafia, seats []room.Seat, kill, save string) *room.Outcome {
	t.Helper()
	m := byRole(t, g, seats, roleMafia)
	d := byRole(t, g, seats, roleDoctor)
	det := byRole(t, g, seats, roleDetective)

	if g.alive[m.ID] {
		_, err := g.Apply(m, action(t, "night_kill", map[string]string{"target_id": kill}))
		require.NoError(t, err)
	}
	if g.alive[d.ID] {
		_, err := g.Apply(d, action(t, "save", map[string]string{"target_id": save}))
		require.NoError(t, err)
	}
	if g.alive[det.ID] {
		_, err := g.Apply(det, action(t, "investigate", map[string]string{"target_id": kill}))
		require.NoError(t, err)
	}

	out, err := g.AdvanceRound()
	require.NoError(t, err)
	return out
}

func TestMafiaRoleDeal(t *testing.T) {
	g, _, out := startMafia(t, 4)

	counts := map[string]int{}
	for _, role := range g.roles {
		counts[role]++
	}
	require.Equal(t, map[string]int{
		roleMafia:     1,
		roleDoctor:    1,
		roleDetective: 1,
		roleVillager:  1,
	}, counts)

	assigned := 0
	for _, ev := range out.Events {
		if ev.Type == "role_assigned" {
			require.NotEmpty(t, ev.To, "roles are dealt privately")
			assigned++
		}
	}
	require.Equal(t, 4, assigned)
}

func TestMafiaRoleDealScalesWithTable(t *testing.T) {
	g, _, _ := startMafia(t, 8)

	counts := map[string]int{}
	for _, role := range g.roles {
		counts[role]++
	}
	require.Equal(t, 2, counts[roleMafia])
	require.Equal(t, 1, counts[roleDoctor])
	require.Equal(t, 1, counts[roleDetective])
	require.Equal(t, 4, counts[roleVillager])
}

func TestMafiaNightActionsAreRoleGated(t *testing.T) {
	g, seats, _ := startMafia(t, 4)
	v := byRole(t, g, seats, roleVillager)
	m := byRole(t, g, seats, roleMafia)

	_, err := g.Apply(v, action(t, "night_kill", map[string]string{"target_id": m.ID}))
	require.ErrorIs(t, err, room.ErrNotYourTurn)

	_, err = g.Apply(v, action(t, "save", map[string]string{"target_id": v.ID}))
	require.ErrorIs(t, err, room.ErrNotYourTurn)

	_, err = g.Apply(m, action(t, "night_kill", map[string]string{"target_id": "zzz"}))
	require.ErrorIs(t, err, room.ErrInvalidTarget, "target must be alive")
}

func TestMafiaDetectiveLearnsPrivately(t *testing.T) {
	g, seats, _ := startMafia(t, 4)
	m := byRole(t, g, seats, roleMafia)
	det := byRole(t, g, seats, roleDetective)

	out, err := g.Apply(det, action(t, "investigate", map[string]string{"target_id": m.ID}))
	require.NoError(t, err)

	result := findEvent(out, "investigation_result")
	require.NotNil(t, result)
	require.Equal(t, det.ID, result.To)
	require.Equal(t, true, result.Data["is_mafia"])

	_, err = g.Apply(det, action(t, "investigate", map[string]string{"target_id": m.ID}))
	require.ErrorIs(t, err, room.ErrNotYourTurn, "one investigation per night")
}

func TestMafiaDoctorSaveBlocksKill(t *testing.T) {
	g, seats, _ := startMafia(t, 4)
	v := byRole(t, g, seats, roleVillager)

	out := runNight(t, g, seats, v.ID, v.ID)
	require.Equal(t, room.PhaseDay, out.Phase)

	result := findEvent(out, "night_result")
	require.NotNil(t, result)
	require.Nil(t, result.Data["killed"])
	require.Equal(t, true, result.Data["saved"])
	require.True(t, g.alive[v.ID])
}

func TestMafiaNightKillLands(t *testing.T) {
	g, seats, _ := startMafia(t, 4)
	v := byRole(t, g, seats, roleVillager)
	d := byRole(t, g, seats, roleDoctor)

	out := runNight(t, g, seats, v.ID, d.ID)
	require.Equal(t, room.PhaseDay, out.Phase)

	result := findEvent(out, "night_result")
	require.NotNil(t, result)
	require.Equal(t, v.Name, result.Data["killed"])
	require.Equal(t, roleVillager, result.Data["role"])
	require.False(t, g.alive[v.ID])
	require.NotNil(t, findEvent(out, "day_started"))
}

func TestMafiaVoteEliminatesMafiaAndVillagersWin(t *testing.T) {
	g, seats, _ := startMafia(t, 4)
	m := byRole(t, g, seats, roleMafia)
	v := byRole(t, g, seats, roleVillager)

	runNight(t, g, seats, v.ID, v.ID)

	_, err := g.Apply(seats[1], room.Action{Kind: "start_voting"})
	require.ErrorIs(t, err, room.ErrNotHost)

	out, err := g.Apply(seats[0], room.Action{Kind: "start_voting"})
	require.NoError(t, err)
	require.Equal(t, room.PhaseVoting, out.Phase)

	for _, s := range seats {
		if s.ID == m.ID {
			continue
		}
		_, err := g.Apply(s, action(t, "vote", map[string]string{"target_id": m.ID}))
		require.NoError(t, err)
	}
	_, err = g.Apply(m, action(t, "vote", map[string]string{"target_id": v.ID}))
	require.NoError(t, err)

	out, err = g.AdvanceRound()
	require.NoError(t, err)

	result := findEvent(out, "voting_result")
	require.NotNil(t, result)
	require.Equal(t, m.Name, result.Data["eliminated"])
	require.Equal(t, roleMafia, result.Data["role"])

	require.NotNil(t, out.Terminal)
	require.Equal(t, "villagers", out.Terminal.WinnerName)
	over := findEvent(out, "game_over")
	require.NotNil(t, over)
	require.Equal(t, "villagers", over.Data["winners"])
}

func TestMafiaTiedVoteEliminatesNobody(t *testing.T) {
	g, seats, _ := startMafia(t, 4)
	v := byRole(t, g, seats, roleVillager)

	runNight(t, g, seats, v.ID, v.ID)
	_, err := g.Apply(seats[0], room.Action{Kind: "start_voting"})
	require.NoError(t, err)

	// Two votes each way.
	_, err = g.Apply(seats[0], action(t, "vote", map[string]string{"target_id": seats[1].ID}))
	require.NoError(t, err)
	_, err = g.Apply(seats[1], action(t, "vote", map[string]string{"target_id": seats[0].ID}))
	require.NoError(t, err)
	_, err = g.Apply(seats[2], action(t, "vote", map[string]string{"target_id": seats[1].ID}))
	require.NoError(t, err)
	_, err = g.Apply(seats[3], action(t, "vote", map[string]string{"target_id": seats[0].ID}))
	require.NoError(t, err)

	out, err := g.AdvanceRound()
	require.NoError(t, err)

	result := findEvent(out, "voting_result")
	require.NotNil(t, result)
	require.Nil(t, result.Data["eliminated"])
	require.Equal(t, room.PhaseNight, out.Phase)
	require.Equal(t, 2, g.night)
	require.Equal(t, 4, g.aliveCount())
}

func TestMafiaWinsWhenEven(t *testing.T) {
	g, seats, _ := startMafia(t, 4)
	v := byRole(t, g, seats, roleVillager)
	d := byRole(t, g, seats, roleDoctor)

	runNight(t, g, seats, v.ID, d.ID)
	require.Equal(t, 3, g.aliveCount())

	_, err := g.Apply(seats[0], room.Action{Kind: "start_voting"})
	require.NoError(t, err)
	m := byRole(t, g, seats, roleMafia)
	det := byRole(t, g, seats, roleDetective)
	_, err = g.Apply(m, action(t, "vote", map[string]string{"target_id": det.ID}))
	require.NoError(t, err)
	_, err = g.Apply(d, action(t, "vote", map[string]string{"target_id": m.ID}))
	require.NoError(t, err)
	_, err = g.Apply(det, action(t, "vote", map[string]string{"target_id": d.ID}))
	require.NoError(t, err)
	_, err = g.AdvanceRound()
	require.NoError(t, err)

	// Night two: the doctor guesses wrong and dies, leaving one of each.
	out := runNight(t, g, seats, d.ID, det.ID)
	require.NotNil(t, out.Terminal)
	require.Equal(t, "mafia", out.Terminal.WinnerName)
}

func TestMafiaLeaverWasLastHoldout(t *testing.T) {
	g, seats, _ := startMafia(t, 5)
	m := byRole(t, g, seats, roleMafia)
	d := byRole(t, g, seats, roleDoctor)
	det := byRole(t, g, seats, roleDetective)
	v := byRole(t, g, seats, roleVillager)

	_, err := g.Apply(m, action(t, "night_kill", map[string]string{"target_id": v.ID}))
	require.NoError(t, err)
	_, err = g.Apply(d, action(t, "save", map[string]string{"target_id": v.ID}))
	require.NoError(t, err)

	// The detective leaves without investigating: the night resolves.
	out := g.RemoveSeat(det.ID)
	require.NotNil(t, out)
	require.NotNil(t, findEvent(out, "night_result"))
	require.Equal(t, room.PhaseDay, out.Phase)
}

func TestMafiaViewRevealsRolesOnlyAtTheEnd(t *testing.T) {
	g, seats, _ := startMafia(t, 4)

	view := g.View(seats[0])
	require.Equal(t, g.roles[seats[0].ID], view["my_role"])
	require.NotContains(t, view, "roles")

	g.phase = room.PhaseFinished
	view = g.View(seats[0])
	require.Contains(t, view, "roles")
}
