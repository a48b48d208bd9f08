package game

import (
	"encoding/json"

	"gamehub/internal/room"
)

const startingChips = 1000

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

type rouletteBet struct {
	PlayerID string
	Kind     string // number, red, black, odd, even
	Number   int
	Amount   int
}

// roulette is a shared-table betting game. Anyone bets during the betting
// phase; the host spins, payouts land, and the table rolls into the next
// round until the host closes it.
type roulette struct {
	seats    []room.Seat
	balances map[string]int
	bets     []rouletteBet
	phase    room.Phase
	round    int
}

func newRoulette() *roulette {
	return &roulette{
		balances: make(map[string]int),
		phase:    room.PhaseWaiting,
	}
}

func (g *roulette) Config() room.Config {
	return room.Config{
		Type:         room.TypeRoulette,
		MinPlayers:   1,
		MaxPlayers:   8,
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *roulette) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	g.seats = seats
	for _, s := range seats {
		g.balances[s.ID] = startingChips
	}
	g.phase = room.PhaseBetting
	g.round = 1

	return &room.Outcome{
		Events: []room.Event{event("game_started", map[string]any{
			"balances": g.balances,
			"round":    g.round,
		})},
		Phase: room.PhaseBetting,
	}, nil
}

func (g *roulette) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	switch act.Kind {
	case "place_bet":
		return g.placeBet(actor, act.Payload)
	case "spin":
		return g.spin(actor)
	case "new_round":
		return g.newRound(actor)
	case "end_game":
		return g.endGame(actor)
	default:
		return nil, room.ErrUnknownAction
	}
}

func (g *roulette) placeBet(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseBetting {
		return nil, room.ErrActionNotInThisPhase
	}

	var p struct {
		Kind   string `json:"kind"`
		Number int    `json:"number"`
		Amount int    `json:"amount"`
	}
	if err := decode(raw, &p); err != nil {
		return nil, err
	}

	switch p.Kind {
	case "number":
		if p.Number < 0 || p.Number > 36 {
			return nil, room.ErrInvalidTarget
		}
	case "red", "black", "odd", "even":
	default:
		return nil, room.ErrMalformedPayload
	}
	if p.Amount <= 0 || p.Amount > g.balances[actor.ID] {
		return nil, room.ErrInvalidTarget
	}

	g.balances[actor.ID] -= p.Amount
	g.bets = append(g.bets, rouletteBet{
		PlayerID: actor.ID,
		Kind:     p.Kind,
		Number:   p.Number,
		Amount:   p.Amount,
	})

	return &room.Outcome{
		Events: []room.Event{event("bet_placed", map[string]any{
			"player_name": actor.Name,
			"kind":        p.Kind,
			"amount":      p.Amount,
			"balances":    g.balances,
		})},
	}, nil
}

func (g *roulette) spin(actor room.Seat) (*room.Outcome, error) {
	if !actor.Host {
		return nil, room.ErrNotHost
	}
	if g.phase != room.PhaseBetting {
		return nil, room.ErrActionNotInThisPhase
	}

	winning := rng.Intn(37)
	payouts := make(map[string]int)
	for _, b := range g.bets {
		if won, multiplier := betWins(b, winning); won {
			payout := b.Amount * (multiplier + 1)
			g.balances[b.PlayerID] += payout
			payouts[b.PlayerID] += payout
		}
	}
	g.bets = nil
	g.phase = room.PhaseSpinning

	return &room.Outcome{
		Events: []room.Event{event("wheel_spun", map[string]any{
			"number":   winning,
			"color":    numberColor(winning),
			"payouts":  payouts,
			"balances": g.balances,
			"round":    g.round,
		})},
		Phase: room.PhaseSpinning,
	}, nil
}

func (g *roulette) newRound(actor room.Seat) (*room.Outcome, error) {
	if !actor.Host {
		return nil, room.ErrNotHost
	}
	if g.phase != room.PhaseSpinning {
		return nil, room.ErrActionNotInThisPhase
	}

	g.round++
	g.phase = room.PhaseBetting

	return &room.Outcome{
		Events: []room.Event{event("round_started", map[string]any{
			"round":    g.round,
			"balances": g.balances,
		})},
		Phase: room.PhaseBetting,
	}, nil
}

func (g *roulette) endGame(actor room.Seat) (*room.Outcome, error) {
	if !actor.Host {
		return nil, room.ErrNotHost
	}
	if g.phase != room.PhaseSpinning {
		return nil, room.ErrActionNotInThisPhase
	}
	g.phase = room.PhaseFinished

	var top room.Seat
	best := -1
	for _, s := range g.seats {
		if g.balances[s.ID] > best {
			best = g.balances[s.ID]
			top = s
		}
	}

	over := event("game_over", map[string]any{
		"winner":   top.Name,
		"balances": g.balances,
	})
	return winOutcome([]room.Event{over}, top,
		map[string]any{"balances": g.balances, "rounds": g.round}), nil
}

func betWins(b rouletteBet, winning int) (bool, int) {
	switch b.Kind {
	case "number":
		return b.Number == winning, 35
	case "red":
		return redNumbers[winning], 1
	case "black":
		return winning != 0 && !redNumbers[winning], 1
	case "odd":
		return winning != 0 && winning%2 == 1, 1
	case "even":
		return winning != 0 && winning%2 == 0, 1
	}
	return false, 0
}

func numberColor(n int) string {
	switch {
	case n == 0:
		return "green"
	case redNumbers[n]:
		return "red"
	default:
		return "black"
	}
}

func (g *roulette) Discipline(room.Phase) room.Discipline { return room.DisciplineNone }
func (g *roulette) TurnExempt(string) bool                { return false }
func (g *roulette) Eligible(string) bool                  { return true }
func (g *roulette) Settled(string) bool                   { return true }

func (g *roulette) AdvanceRound() (*room.Outcome, error) { return nil, nil }

func (g *roulette) View(viewer room.Seat) map[string]any {
	if g.phase == room.PhaseWaiting {
		return nil
	}
	return map[string]any{
		"balances": g.balances,
		"round":    g.round,
		"phase":    string(g.phase),
	}
}

func (g *roulette) RemoveSeat(id string) *room.Outcome {
	delete(g.balances, id)
	remaining := make([]room.Seat, 0, len(g.seats))
	for _, s := range g.seats {
		if s.ID != id {
			remaining = append(remaining, s)
		}
	}
	g.seats = remaining

	kept := g.bets[:0]
	for _, b := range g.bets {
		if b.PlayerID != id {
			kept = append(kept, b)
		}
	}
	g.bets = kept
	return nil
}
