package game

import (
	"encoding/json"
	"errors"

	"gamehub/internal/room"
)

const canvasRounds = 3

var canvasThemes = []string{
	"a cat on a skateboard",
	"a haunted lighthouse",
	"breakfast in space",
	"a robot learning to dance",
	"the world's worst superhero",
	"a dragon at the dentist",
	"an underwater city",
	"a snowman on vacation",
}

var errNotAllReady = errors.New("not all players are ready")

// canvasBattle is a drawing contest over three rounds. Everyone draws the
// round's theme, then votes for someone else's picture; votes carry over
// as the running score.
type canvasBattle struct {
	seats   []room.Seat
	ready   map[string]bool
	themes  []string
	round   int
	entries map[string]string // player id -> drawing data
	votes   map[string]string // voter id -> target id
	scores  map[string]int
	phase   room.Phase
}

func newCanvasBattle() *canvasBattle {
	return &canvasBattle{
		ready:   make(map[string]bool),
		entries: make(map[string]string),
		votes:   make(map[string]string),
		scores:  make(map[string]int),
		phase:   room.PhaseWaiting,
	}
}

func (g *canvasBattle) Config() room.Config {
	return room.Config{
		Type:         room.TypeCanvasBattle,
		MinPlayers:   2,
		MaxPlayers:   6,
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *canvasBattle) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	for _, s := range seats {
		if !s.Host && !g.ready[s.ID] {
			return nil, errNotAllReady
		}
	}

	g.seats = seats
	for _, s := range seats {
		g.scores[s.ID] = 0
	}

	// Shuffled copy so themes never repeat within a game.
	g.themes = make([]string, len(canvasThemes))
	copy(g.themes, canvasThemes)
	rng.Shuffle(len(g.themes), func(i, j int) {
		g.themes[i], g.themes[j] = g.themes[j], g.themes[i]
	})

	g.round = 1
	g.phase = room.PhaseDrawing

	return &room.Outcome{
		Events: []room.Event{event("round_started", map[string]any{
			"round":  g.round,
			"rounds": canvasRounds,
			"theme":  g.themes[0],
		})},
		Phase: room.PhaseDrawing,
	}, nil
}

func (g *canvasBattle) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	switch act.Kind {
	case "ready":
		return g.markReady(actor)
	case "submit_drawing":
		return g.submitDrawing(actor, act.Payload)
	case "vote":
		return g.vote(actor, act.Payload)
	case "end_voting":
		if !actor.Host {
			return nil, room.ErrNotHost
		}
		if g.phase != room.PhaseVoting {
			return nil, room.ErrActionNotInThisPhase
		}
		return g.resolveVoting(), nil
	default:
		return nil, room.ErrUnknownAction
	}
}

func (g *canvasBattle) markReady(actor room.Seat) (*room.Outcome, error) {
	if g.phase != room.PhaseWaiting {
		return nil, room.ErrActionNotInThisPhase
	}
	g.ready[actor.ID] = true
	return &room.Outcome{
		Events: []room.Event{event("player_ready", map[string]any{
			"player_name": actor.Name,
		})},
	}, nil
}

func (g *canvasBattle) submitDrawing(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseDrawing {
		return nil, room.ErrActionNotInThisPhase
	}

	var p struct {
		Image string `json:"image"`
	}
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if p.Image == "" {
		return nil, room.ErrMalformedPayload
	}

	g.entries[actor.ID] = p.Image

	return &room.Outcome{
		Events: []room.Event{event("drawing_submitted", map[string]any{
			"player_name": actor.Name,
			"submitted":   len(g.entries),
			"total":       len(g.seats),
		})},
		Advance: true,
	}, nil
}

func (g *canvasBattle) vote(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseVoting {
		return nil, room.ErrActionNotInThisPhase
	}

	var p struct {
		TargetID string `json:"target_id"`
	}
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if p.TargetID == actor.ID {
		return nil, room.ErrInvalidTarget
	}
	if _, ok := g.entries[p.TargetID]; !ok {
		return nil, room.ErrInvalidTarget
	}

	g.votes[actor.ID] = p.TargetID

	return &room.Outcome{
		Events: []room.Event{event("vote_cast", map[string]any{
			"player_name": actor.Name,
			"voted":       len(g.votes),
			"total":       len(g.seats),
		})},
		Advance: true,
	}, nil
}

// AdvanceRound fires when every player has submitted (drawing phase) or
// voted (voting phase).
func (g *canvasBattle) AdvanceRound() (*room.Outcome, error) {
	switch g.phase {
	case room.PhaseDrawing:
		return g.openVoting(), nil
	case room.PhaseVoting:
		return g.resolveVoting(), nil
	}
	return nil, nil
}

func (g *canvasBattle) openVoting() *room.Outcome {
	g.phase = room.PhaseVoting

	gallery := make([]map[string]any, 0, len(g.entries))
	for _, s := range g.seats {
		if img, ok := g.entries[s.ID]; ok {
			gallery = append(gallery, map[string]any{
				"player_id":   s.ID,
				"player_name": s.Name,
				"image":       img,
			})
		}
	}

	return &room.Outcome{
		Events: []room.Event{event("voting_started", map[string]any{
			"round":   g.round,
			"gallery": gallery,
		})},
		Phase: room.PhaseVoting,
	}
}

func (g *canvasBattle) resolveVoting() *room.Outcome {
	roundVotes := make(map[string]int)
	for _, target := range g.votes {
		roundVotes[target]++
		g.scores[target]++
	}

	result := event("round_result", map[string]any{
		"round":  g.round,
		"votes":  g.namedCounts(roundVotes),
		"scores": g.namedCounts(g.scores),
	})

	g.entries = make(map[string]string)
	g.votes = make(map[string]string)

	if g.round < canvasRounds {
		g.round++
		g.phase = room.PhaseDrawing
		next := event("round_started", map[string]any{
			"round":  g.round,
			"rounds": canvasRounds,
			"theme":  g.themes[g.round-1],
		})
		return &room.Outcome{
			Events: []room.Event{result, next},
			Phase:  room.PhaseDrawing,
		}
	}

	g.phase = room.PhaseFinished
	winner, tied := g.topScore()
	over := event("game_over", map[string]any{
		"winner": winner.Name,
		"draw":   tied,
		"scores": g.namedCounts(g.scores),
	})
	if tied {
		return drawOutcome([]room.Event{result, over},
			map[string]any{"scores": g.namedCounts(g.scores)})
	}
	return winOutcome([]room.Event{result, over}, winner,
		map[string]any{"scores": g.namedCounts(g.scores)})
}

func (g *canvasBattle) namedCounts(byID map[string]int) map[string]int {
	out := make(map[string]int, len(g.seats))
	for _, s := range g.seats {
		out[s.Name] = byID[s.ID]
	}
	return out
}

func (g *canvasBattle) topScore() (room.Seat, bool) {
	var top room.Seat
	best, tied := -1, false
	for _, s := range g.seats {
		switch {
		case g.scores[s.ID] > best:
			best = g.scores[s.ID]
			top = s
			tied = false
		case g.scores[s.ID] == best:
			tied = true
		}
	}
	return top, tied
}

func (g *canvasBattle) Discipline(phase room.Phase) room.Discipline {
	switch phase {
	case room.PhaseDrawing, room.PhaseVoting:
		return room.DisciplineFreeSet
	}
	return room.DisciplineNone
}

func (g *canvasBattle) TurnExempt(kind string) bool {
	return kind == "ready" || kind == "end_voting"
}

func (g *canvasBattle) Eligible(string) bool { return true }

func (g *canvasBattle) Settled(id string) bool {
	switch g.phase {
	case room.PhaseDrawing:
		_, ok := g.entries[id]
		return ok
	case room.PhaseVoting:
		_, ok := g.votes[id]
		return ok
	}
	return true
}

func (g *canvasBattle) View(viewer room.Seat) map[string]any {
	if g.phase == room.PhaseWaiting {
		return nil
	}
	view := map[string]any{
		"round":  g.round,
		"rounds": canvasRounds,
		"theme":  g.themes[g.round-1],
		"scores": g.namedCounts(g.scores),
	}
	return view
}

func (g *canvasBattle) RemoveSeat(id string) *room.Outcome {
	delete(g.ready, id)
	delete(g.entries, id)
	delete(g.votes, id)
	remaining := make([]room.Seat, 0, len(g.seats))
	for _, s := range g.seats {
		if s.ID != id {
			remaining = append(remaining, s)
		}
	}
	g.seats = remaining

	if len(g.seats) == 1 && g.phase != room.PhaseWaiting && g.phase != room.PhaseFinished {
		g.phase = room.PhaseFinished
		winner := g.seats[0]
		return winOutcome([]room.Event{event("game_over", map[string]any{
			"winner": winner.Name,
			"reason": "opponents_left",
		})}, winner, map[string]any{"reason": "opponents_left"})
	}

	// The leaver may have been the last one holding the round up.
	switch g.phase {
	case room.PhaseDrawing:
		if len(g.entries) >= len(g.seats) {
			return g.openVoting()
		}
	case room.PhaseVoting:
		if len(g.votes) >= len(g.seats) {
			return g.resolveVoting()
		}
	}
	return nil
}
