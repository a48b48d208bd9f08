package game

import (
	"encoding/json"

	"gamehub/internal/room"
)

const finalSquare = 100

var snakes = map[int]int{
	99: 5, 95: 24, 92: 51, 87: 13, 85: 17, 80: 40, 73: 28,
	69: 33, 64: 16, 62: 18, 54: 31, 48: 9, 36: 6, 32: 10,
}

var ladders = map[int]int{
	4: 56, 12: 50, 14: 55, 22: 58, 41: 79,
	54: 88, 63: 81, 70: 90, 78: 98,
}

// snakeLadder is the classic race to square 100. The server rolls the die;
// an overshoot past 100 wastes the turn.
type snakeLadder struct {
	seats     []room.Seat
	positions map[string]int
	playing   bool
}

func newSnakeLadder() *snakeLadder {
	return &snakeLadder{positions: make(map[string]int)}
}

func (g *snakeLadder) Config() room.Config {
	return room.Config{
		Type:         room.TypeSnakeLadder,
		MinPlayers:   2,
		MaxPlayers:   6,
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *snakeLadder) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	g.seats = seats
	for _, s := range seats {
		g.positions[s.ID] = 0
	}
	g.playing = true

	return &room.Outcome{
		Events: []room.Event{event("game_started", map[string]any{
			"positions":    g.positions,
			"current_turn": seats[0].ID,
		})},
		Phase:      room.PhasePlaying,
		NextTurnID: seats[0].ID,
	}, nil
}

func (g *snakeLadder) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	if act.Kind != "roll" {
		return nil, room.ErrUnknownAction
	}
	if !g.playing {
		return nil, room.ErrActionNotInThisPhase
	}

	roll := rng.Intn(6) + 1
	from := g.positions[actor.ID]
	to := from + roll

	data := map[string]any{
		"player_name": actor.Name,
		"roll":        roll,
		"from":        from,
	}

	switch {
	case to > finalSquare:
		// Overshoot: stay put.
		to = from
	case to == finalSquare:
		g.positions[actor.ID] = to
		g.playing = false
		data["to"] = to
		rolled := event("dice_rolled", data)
		over := event("game_over", map[string]any{
			"winner":    actor.Name,
			"positions": g.positions,
		})
		return winOutcome([]room.Event{rolled, over}, actor,
			map[string]any{"roll": roll}), nil
	default:
		if dest, ok := snakes[to]; ok {
			data["snake"] = true
			to = dest
		} else if dest, ok := ladders[to]; ok {
			data["ladder"] = true
			to = dest
		}
	}

	g.positions[actor.ID] = to
	data["to"] = to
	data["positions"] = g.positions

	return &room.Outcome{
		Events:  []room.Event{event("dice_rolled", data)},
		Advance: true,
	}, nil
}

func (g *snakeLadder) Discipline(phase room.Phase) room.Discipline {
	if phase == room.PhasePlaying {
		return room.DisciplineRotation
	}
	return room.DisciplineNone
}

func (g *snakeLadder) TurnExempt(string) bool { return false }
func (g *snakeLadder) Eligible(string) bool   { return true }
func (g *snakeLadder) Settled(string) bool    { return true }

func (g *snakeLadder) AdvanceRound() (*room.Outcome, error) { return nil, nil }

func (g *snakeLadder) View(viewer room.Seat) map[string]any {
	if len(g.positions) == 0 {
		return nil
	}
	return map[string]any{"positions": g.positions}
}

func (g *snakeLadder) RemoveSeat(id string) *room.Outcome {
	delete(g.positions, id)
	if !g.playing {
		return nil
	}

	remaining := make([]room.Seat, 0, len(g.seats))
	for _, s := range g.seats {
		if s.ID != id {
			remaining = append(remaining, s)
		}
	}
	g.seats = remaining

	if len(remaining) == 1 {
		g.playing = false
		winner := remaining[0]
		return winOutcome([]room.Event{event("game_over", map[string]any{
			"winner": winner.Name,
			"reason": "opponents_left",
		})}, winner, map[string]any{"reason": "opponents_left"})
	}
	return nil
}
