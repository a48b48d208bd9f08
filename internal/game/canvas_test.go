package game

import (
	"testing"

	"gamehub/internal/room"

	"github.com/stretchr/testify/require"
)

func startCanvas(t *testing.T, players int) (*canvasBattle, []room.Seat) {
	t.Helper()
	seedRNG(t, 11)
	g := newCanvasBattle()
	seats := seatsFor(players)
	for _, s := range seats[1:] {
		_, err := g.Apply(s, room.Action{Kind: "ready"})
		require.NoError(t, err)
	}
	out, err := g.Start(seats, nil)
	require.NoError(t, err)
	require.Equal(t, room.PhaseDrawing, out.Phase)
	return g, seats
}

func submitAll(t *testing.T, g *canvasBattle, seats []room.Seat) {
	t.Helper()
	for _, s := range seats {
		out, err := g.Apply(s, action(t, "submit_drawing", map[string]string{
			"image": "data:image/png;base64,xyz",
		}))
		require.NoError(t, err)
		require.True(t, out.Advance)
		require.True(t, g.Settled(s.ID))
	}
}

func TestCanvasStartRequiresEveryoneReady(t *testing.T) {
	g := newCanvasBattle()
	seats := seatsFor(3)

	_, err := g.Start(seats, nil)
	require.ErrorIs(t, err, errNotAllReady)

	_, err = g.Apply(seats[1], room.Action{Kind: "ready"})
	require.NoError(t, err)
	_, err = g.Start(seats, nil)
	require.ErrorIs(t, err, errNotAllReady, "one player is still not ready")
}

func TestCanvasReadyOnlyBeforeStart(t *testing.T) {
	g, seats := startCanvas(t, 2)

	_, err := g.Apply(seats[1], room.Action{Kind: "ready"})
	require.ErrorIs(t, err, room.ErrActionNotInThisPhase)
}

func TestCanvasGalleryAfterAllSubmit(t *testing.T) {
	g, seats := startCanvas(t, 3)

	require.False(t, g.Settled("p1"))
	submitAll(t, g, seats)

	out, err := g.AdvanceRound()
	require.NoError(t, err)
	require.Equal(t, room.PhaseVoting, out.Phase)

	started := findEvent(out, "voting_started")
	require.NotNil(t, started)
	gallery := started.Data["gallery"].([]map[string]any)
	require.Len(t, gallery, 3)
	require.Equal(t, "p1", gallery[0]["player_id"])
}

func TestCanvasVoteRules(t *testing.T) {
	g, seats := startCanvas(t, 3)

	_, err := g.Apply(seats[0], action(t, "vote", map[string]string{"target_id": "p2"}))
	require.ErrorIs(t, err, room.ErrActionNotInThisPhase, "no voting during drawing")

	submitAll(t, g, seats)
	_, err = g.AdvanceRound()
	require.NoError(t, err)

	_, err = g.Apply(seats[0], action(t, "vote", map[string]string{"target_id": "p1"}))
	require.ErrorIs(t, err, room.ErrInvalidTarget, "no voting for yourself")

	_, err = g.Apply(seats[0], action(t, "vote", map[string]string{"target_id": "zzz"}))
	require.ErrorIs(t, err, room.ErrInvalidTarget, "target must have an entry")

	out, err := g.Apply(seats[0], action(t, "vote", map[string]string{"target_id": "p2"}))
	require.NoError(t, err)
	require.True(t, out.Advance)
	require.True(t, g.Settled("p1"))
}

func TestCanvasThreeRoundsCrownAWinner(t *testing.T) {
	g, seats := startCanvas(t, 3)

	var last *room.Outcome
	for round := 1; round <= canvasRounds; round++ {
		require.Equal(t, round, g.round)
		submitAll(t, g, seats)

		_, err := g.AdvanceRound()
		require.NoError(t, err)

		// p1 sweeps: both opponents vote for p1 every round.
		_, err = g.Apply(seats[1], action(t, "vote", map[string]string{"target_id": "p1"}))
		require.NoError(t, err)
		_, err = g.Apply(seats[2], action(t, "vote", map[string]string{"target_id": "p1"}))
		require.NoError(t, err)
		_, err = g.Apply(seats[0], action(t, "vote", map[string]string{"target_id": "p2"}))
		require.NoError(t, err)

		last, err = g.AdvanceRound()
		require.NoError(t, err)
		require.NotNil(t, findEvent(last, "round_result"))
	}

	require.NotNil(t, last.Terminal)
	require.Equal(t, "Player1", last.Terminal.WinnerName)
	require.False(t, last.Terminal.Draw)

	over := findEvent(last, "game_over")
	require.NotNil(t, over)
	scores := over.Data["scores"].(map[string]int)
	require.Equal(t, 6, scores["Player1"])
	require.Equal(t, 3, scores["Player2"])
}

func TestCanvasHostEndsVotingEarly(t *testing.T) {
	g, seats := startCanvas(t, 3)
	submitAll(t, g, seats)
	_, err := g.AdvanceRound()
	require.NoError(t, err)

	_, err = g.Apply(seats[1], room.Action{Kind: "end_voting"})
	require.ErrorIs(t, err, room.ErrNotHost)

	_, err = g.Apply(seats[1], action(t, "vote", map[string]string{"target_id": "p1"}))
	require.NoError(t, err)

	out, err := g.Apply(seats[0], room.Action{Kind: "end_voting"})
	require.NoError(t, err)
	require.NotNil(t, findEvent(out, "round_result"))
	require.Equal(t, 2, g.round, "next round opens with the votes counted so far")
}

func TestCanvasLeaverWasLastHoldout(t *testing.T) {
	g, seats := startCanvas(t, 3)

	for _, s := range seats[:2] {
		_, err := g.Apply(s, action(t, "submit_drawing", map[string]string{"image": "img"}))
		require.NoError(t, err)
	}

	out := g.RemoveSeat("p3")
	require.NotNil(t, out)
	require.Equal(t, room.PhaseVoting, out.Phase)
	require.NotNil(t, findEvent(out, "voting_started"))
}

func TestCanvasLastPlayerWinsByDefault(t *testing.T) {
	g, seats := startCanvas(t, 2)

	out := g.RemoveSeat(seats[1].ID)
	require.NotNil(t, out)
	require.NotNil(t, out.Terminal)
	require.Equal(t, "p1", out.Terminal.WinnerID)
}
