package game

import (
	"encoding/json"
	"fmt"

	"gamehub/internal/room"
)

const (
	roleMafia     = "mafia"
	roleDoctor    = "doctor"
	roleDetective = "detective"
	roleVillager  = "villager"

	mafiaLogCap = 10
)

// mafia is the social deduction game. Roles are dealt secretly: one mafia
// per four players (at least one), a doctor, a detective, villagers for
// the rest. Nights alternate with day discussion and a lynch vote until
// one faction is wiped out.
type mafia struct {
	seats []room.Seat
	roles map[string]string
	alive map[string]bool
	phase room.Phase
	night int

	killVotes  map[string]string
	doctorSave string
	doctorSet  bool
	detDone    bool

	dayVotes map[string]string
	log      []string
}

func newMafia() *mafia {
	return &mafia{
		roles:     make(map[string]string),
		alive:     make(map[string]bool),
		killVotes: make(map[string]string),
		dayVotes:  make(map[string]string),
		phase:     room.PhaseLobby,
	}
}

func (g *mafia) Config() room.Config {
	return room.Config{
		Type:         room.TypeMafia,
		MinPlayers:   4,
		MaxPlayers:   0,
		WaitingPhase: room.PhaseLobby,
	}
}

func (g *mafia) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	g.seats = seats
	n := len(seats)
	mafiaCount := n / 4
	if mafiaCount < 1 {
		mafiaCount = 1
	}

	deck := make([]string, 0, n)
	for i := 0; i < mafiaCount; i++ {
		deck = append(deck, roleMafia)
	}
	deck = append(deck, roleDoctor, roleDetective)
	for len(deck) < n {
		deck = append(deck, roleVillager)
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	var mafiaNames []string
	for i, s := range seats {
		g.roles[s.ID] = deck[i]
		g.alive[s.ID] = true
		if deck[i] == roleMafia {
			mafiaNames = append(mafiaNames, s.Name)
		}
	}

	events := []room.Event{event("game_started", map[string]any{
		"players":     n,
		"mafia_count": mafiaCount,
	})}
	for _, s := range seats {
		data := map[string]any{"role": g.roles[s.ID]}
		if g.roles[s.ID] == roleMafia {
			data["partners"] = mafiaNames
		}
		events = append(events, private(s.ID, "role_assigned", data))
	}

	g.night = 1
	g.phase = room.PhaseNight
	events = append(events, event("night_started", map[string]any{"night": g.night}))

	return &room.Outcome{Events: events, Phase: room.PhaseNight}, nil
}

func (g *mafia) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	switch act.Kind {
	case "night_kill":
		return g.nightKill(actor, act.Payload)
	case "save":
		return g.save(actor, act.Payload)
	case "investigate":
		return g.investigate(actor, act.Payload)
	case "start_voting":
		return g.startVoting(actor)
	case "vote":
		return g.vote(actor, act.Payload)
	default:
		return nil, room.ErrUnknownAction
	}
}

func (g *mafia) nightKill(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseNight {
		return nil, room.ErrActionNotInThisPhase
	}
	if g.roles[actor.ID] != roleMafia {
		return nil, room.ErrNotYourTurn
	}

	target, err := g.decodeTarget(raw)
	if err != nil {
		return nil, err
	}
	g.killVotes[actor.ID] = target

	return &room.Outcome{
		Events: []room.Event{private(actor.ID, "kill_chosen", map[string]any{
			"target_name": seatName(g.seats, target),
		})},
		Advance: true,
	}, nil
}

func (g *mafia) save(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseNight {
		return nil, room.ErrActionNotInThisPhase
	}
	if g.roles[actor.ID] != roleDoctor {
		return nil, room.ErrNotYourTurn
	}

	target, err := g.decodeTarget(raw)
	if err != nil {
		return nil, err
	}
	g.doctorSave = target
	g.doctorSet = true

	return &room.Outcome{
		Events: []room.Event{private(actor.ID, "save_chosen", map[string]any{
			"target_name": seatName(g.seats, target),
		})},
		Advance: true,
	}, nil
}

func (g *mafia) investigate(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseNight {
		return nil, room.ErrActionNotInThisPhase
	}
	if g.roles[actor.ID] != roleDetective {
		return nil, room.ErrNotYourTurn
	}
	if g.detDone {
		return nil, room.ErrNotYourTurn
	}

	target, err := g.decodeTarget(raw)
	if err != nil {
		return nil, err
	}
	g.detDone = true

	return &room.Outcome{
		Events: []room.Event{private(actor.ID, "investigation_result", map[string]any{
			"target_name": seatName(g.seats, target),
			"is_mafia":    g.roles[target] == roleMafia,
		})},
		Advance: true,
	}, nil
}

func (g *mafia) startVoting(actor room.Seat) (*room.Outcome, error) {
	if !actor.Host {
		return nil, room.ErrNotHost
	}
	if g.phase != room.PhaseDay {
		return nil, room.ErrActionNotInThisPhase
	}
	g.phase = room.PhaseVoting
	g.dayVotes = make(map[string]string)

	return &room.Outcome{
		Events: []room.Event{event("voting_started", map[string]any{
			"alive": g.aliveNames(),
		})},
		Phase: room.PhaseVoting,
	}, nil
}

func (g *mafia) vote(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseVoting {
		return nil, room.ErrActionNotInThisPhase
	}

	target, err := g.decodeTarget(raw)
	if err != nil {
		return nil, err
	}
	g.dayVotes[actor.ID] = target

	return &room.Outcome{
		Events: []room.Event{event("vote_cast", map[string]any{
			"player_name": actor.Name,
			"voted":       len(g.dayVotes),
			"total":       g.aliveCount(),
		})},
		Advance: true,
	}, nil
}

func (g *mafia) decodeTarget(raw json.RawMessage) (string, error) {
	var p struct {
		TargetID string `json:"target_id"`
	}
	if err := decode(raw, &p); err != nil {
		return "", err
	}
	if !g.alive[p.TargetID] {
		return "", room.ErrInvalidTarget
	}
	return p.TargetID, nil
}

// AdvanceRound resolves the night once every night role has acted, or the
// lynch once every living player has voted.
func (g *mafia) AdvanceRound() (*room.Outcome, error) {
	switch g.phase {
	case room.PhaseNight:
		return g.resolveNight(), nil
	case room.PhaseVoting:
		return g.resolveVoting(), nil
	}
	return nil, nil
}

func (g *mafia) resolveNight() *room.Outcome {
	victim := majorityTarget(g.killVotes)
	saved := g.doctorSet && victim != "" && victim == g.doctorSave

	g.killVotes = make(map[string]string)
	g.doctorSave = ""
	g.doctorSet = false
	g.detDone = false

	data := map[string]any{"night": g.night}
	if victim == "" || saved {
		data["killed"] = nil
		if saved {
			data["saved"] = true
			g.appendLog(fmt.Sprintf("Night %d: the doctor saved a life", g.night))
		} else {
			g.appendLog(fmt.Sprintf("Night %d: nobody died", g.night))
		}
	} else {
		g.alive[victim] = false
		name := seatName(g.seats, victim)
		data["killed"] = name
		data["role"] = g.roles[victim]
		g.appendLog(fmt.Sprintf("Night %d: %s was killed", g.night, name))
	}

	result := event("night_result", data)
	if out := g.checkWin([]room.Event{result}); out != nil {
		return out
	}

	g.phase = room.PhaseDay
	day := event("day_started", map[string]any{
		"day":   g.night,
		"alive": g.aliveNames(),
		"log":   g.log,
	})
	return &room.Outcome{Events: []room.Event{result, day}, Phase: room.PhaseDay}
}

func (g *mafia) resolveVoting() *room.Outcome {
	victim := majorityTarget(g.dayVotes)
	g.dayVotes = make(map[string]string)

	data := map[string]any{"day": g.night}
	if victim == "" {
		data["eliminated"] = nil
		g.appendLog(fmt.Sprintf("Day %d: the vote was tied, nobody was eliminated", g.night))
	} else {
		g.alive[victim] = false
		name := seatName(g.seats, victim)
		data["eliminated"] = name
		data["role"] = g.roles[victim]
		g.appendLog(fmt.Sprintf("Day %d: %s was voted out (%s)", g.night, name, g.roles[victim]))
	}

	result := event("voting_result", data)
	if out := g.checkWin([]room.Event{result}); out != nil {
		return out
	}

	g.night++
	g.phase = room.PhaseNight
	night := event("night_started", map[string]any{"night": g.night, "log": g.log})
	return &room.Outcome{Events: []room.Event{result, night}, Phase: room.PhaseNight}
}

// majorityTarget picks the strict plurality target; ties pick nobody.
func majorityTarget(votes map[string]string) string {
	counts := make(map[string]int)
	for _, t := range votes {
		counts[t]++
	}
	best, top, tied := 0, "", false
	for t, c := range counts {
		switch {
		case c > best:
			best = c
			top = t
			tied = false
		case c == best:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return top
}

// checkWin returns a terminal outcome when one faction has won, else nil.
func (g *mafia) checkWin(events []room.Event) *room.Outcome {
	mafiaAlive, othersAlive := 0, 0
	for id, alive := range g.alive {
		if !alive {
			continue
		}
		if g.roles[id] == roleMafia {
			mafiaAlive++
		} else {
			othersAlive++
		}
	}

	var winners string
	switch {
	case mafiaAlive == 0:
		winners = "villagers"
	case mafiaAlive >= othersAlive:
		winners = "mafia"
	default:
		return nil
	}

	g.phase = room.PhaseFinished
	over := event("game_over", map[string]any{
		"winners": winners,
		"roles":   g.rolesReveal(),
		"log":     g.log,
	})
	return &room.Outcome{
		Events: append(events, over),
		Terminal: &room.Result{
			WinnerName: winners,
			Detail:     map[string]any{"faction": winners, "nights": g.night},
		},
	}
}

func (g *mafia) rolesReveal() map[string]string {
	out := make(map[string]string, len(g.seats))
	for _, s := range g.seats {
		out[s.Name] = g.roles[s.ID]
	}
	return out
}

func (g *mafia) appendLog(line string) {
	g.log = append(g.log, line)
	if len(g.log) > mafiaLogCap {
		g.log = g.log[len(g.log)-mafiaLogCap:]
	}
}

func (g *mafia) aliveNames() []string {
	var out []string
	for _, s := range g.seats {
		if g.alive[s.ID] {
			out = append(out, s.Name)
		}
	}
	return out
}

func (g *mafia) aliveCount() int {
	n := 0
	for _, alive := range g.alive {
		if alive {
			n++
		}
	}
	return n
}

func (g *mafia) Discipline(phase room.Phase) room.Discipline {
	switch phase {
	case room.PhaseNight, room.PhaseVoting:
		return room.DisciplineFreeSet
	}
	return room.DisciplineNone
}

func (g *mafia) TurnExempt(kind string) bool {
	return kind == "start_voting"
}

// Eligible narrows by phase: at night only living role-holders act, during
// the vote every living player does.
func (g *mafia) Eligible(id string) bool {
	if !g.alive[id] {
		return false
	}
	switch g.phase {
	case room.PhaseNight:
		switch g.roles[id] {
		case roleMafia, roleDoctor, roleDetective:
			return true
		}
		return false
	case room.PhaseVoting:
		return true
	}
	return true
}

func (g *mafia) Settled(id string) bool {
	switch g.phase {
	case room.PhaseNight:
		switch g.roles[id] {
		case roleMafia:
			_, ok := g.killVotes[id]
			return ok
		case roleDoctor:
			return g.doctorSet
		case roleDetective:
			return g.detDone
		}
		return true
	case room.PhaseVoting:
		_, ok := g.dayVotes[id]
		return ok
	}
	return true
}

func (g *mafia) View(viewer room.Seat) map[string]any {
	if g.phase == room.PhaseLobby {
		return nil
	}
	view := map[string]any{
		"phase": string(g.phase),
		"night": g.night,
		"alive": g.aliveNames(),
		"log":   g.log,
	}
	if role, ok := g.roles[viewer.ID]; ok {
		view["my_role"] = role
	}
	if g.phase == room.PhaseFinished {
		view["roles"] = g.rolesReveal()
	}
	return view
}

func (g *mafia) RemoveSeat(id string) *room.Outcome {
	wasAlive := g.alive[id]
	g.alive[id] = false
	delete(g.killVotes, id)
	delete(g.dayVotes, id)

	if g.phase == room.PhaseLobby || g.phase == room.PhaseFinished || !wasAlive {
		return nil
	}

	g.appendLog(fmt.Sprintf("%s left the game", seatName(g.seats, id)))
	if out := g.checkWin(nil); out != nil {
		return out
	}

	// The leaver may have been the last actor the phase was waiting on.
	switch g.phase {
	case room.PhaseNight:
		if g.nightComplete() {
			return g.resolveNight()
		}
	case room.PhaseVoting:
		if g.votingComplete() {
			return g.resolveVoting()
		}
	}
	return nil
}

func (g *mafia) nightComplete() bool {
	for id, alive := range g.alive {
		if alive && g.Eligible(id) && !g.Settled(id) {
			return false
		}
	}
	return true
}

func (g *mafia) votingComplete() bool {
	for id, alive := range g.alive {
		if !alive {
			continue
		}
		if _, ok := g.dayVotes[id]; !ok {
			return false
		}
	}
	return true
}
