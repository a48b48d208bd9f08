package game

import (
	"encoding/json"

	"gamehub/internal/room"
)

const digitCount = 4

// digitGuess is a two-player code-breaking duel. Each player locks in a
// four-digit secret, then they alternate guessing the opponent's number.
// Feedback counts exact positions and total shared digits.
type digitGuess struct {
	seats   []room.Seat
	secrets map[string]string
	guesses map[string][]map[string]any
	phase   room.Phase
}

func newDigitGuess() *digitGuess {
	return &digitGuess{
		secrets: make(map[string]string),
		guesses: make(map[string][]map[string]any),
		phase:   room.PhaseWaiting,
	}
}

func (g *digitGuess) Config() room.Config {
	return room.Config{
		Type:         room.TypeDigitGuess,
		MinPlayers:   2,
		MaxPlayers:   2,
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *digitGuess) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	g.seats = seats
	g.phase = room.PhaseSettingNumbers

	return &room.Outcome{
		Events: []room.Event{event("game_started", map[string]any{
			"phase": string(room.PhaseSettingNumbers),
		})},
		Phase: room.PhaseSettingNumbers,
	}, nil
}

func (g *digitGuess) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	switch act.Kind {
	case "set_number":
		return g.setNumber(actor, act.Payload)
	case "guess":
		return g.guess(actor, act.Payload)
	default:
		return nil, room.ErrUnknownAction
	}
}

func (g *digitGuess) setNumber(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhaseSettingNumbers {
		return nil, room.ErrActionNotInThisPhase
	}

	var p struct {
		Number string `json:"number"`
	}
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if !validDigits(p.Number) {
		return nil, room.ErrMalformedPayload
	}

	g.secrets[actor.ID] = p.Number

	return &room.Outcome{
		Events: []room.Event{event("number_set", map[string]any{
			"player_name": actor.Name,
		})},
		Advance: true,
	}, nil
}

func (g *digitGuess) guess(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhasePlaying {
		return nil, room.ErrActionNotInThisPhase
	}

	var p struct {
		Number string `json:"number"`
	}
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if !validDigits(p.Number) {
		return nil, room.ErrMalformedPayload
	}

	opponent := g.opponent(actor.ID)
	secret := g.secrets[opponent.ID]
	positions, digits := digitFeedback(secret, p.Number)

	entry := map[string]any{
		"guess":             p.Number,
		"correct_positions": positions,
		"correct_digits":    digits,
	}
	g.guesses[actor.ID] = append(g.guesses[actor.ID], entry)

	made := event("guess_made", map[string]any{
		"player_name":       actor.Name,
		"guess":             p.Number,
		"correct_positions": positions,
		"correct_digits":    digits,
	})

	if positions == digitCount {
		g.phase = room.PhaseFinished
		over := event("game_over", map[string]any{
			"winner": actor.Name,
			"secret": secret,
		})
		return winOutcome([]room.Event{made, over}, actor,
			map[string]any{"guesses": len(g.guesses[actor.ID])}), nil
	}

	return &room.Outcome{Events: []room.Event{made}, Advance: true}, nil
}

// AdvanceRound fires once both secrets are locked in.
func (g *digitGuess) AdvanceRound() (*room.Outcome, error) {
	if g.phase != room.PhaseSettingNumbers {
		return nil, nil
	}
	g.phase = room.PhasePlaying

	return &room.Outcome{
		Events: []room.Event{event("guessing_started", map[string]any{
			"current_turn": g.seats[0].ID,
		})},
		Phase:      room.PhasePlaying,
		NextTurnID: g.seats[0].ID,
	}, nil
}

func (g *digitGuess) opponent(id string) room.Seat {
	for _, s := range g.seats {
		if s.ID != id {
			return s
		}
	}
	return room.Seat{}
}

func validDigits(s string) bool {
	if len(s) != digitCount {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// digitFeedback compares a guess to the secret. positions counts exact
// matches; digits counts all shared digits regardless of position, each
// occurrence matched at most once.
func digitFeedback(secret, guess string) (positions, digits int) {
	var secretCount, guessCount [10]int
	for i := 0; i < digitCount; i++ {
		if secret[i] == guess[i] {
			positions++
		}
		secretCount[secret[i]-'0']++
		guessCount[guess[i]-'0']++
	}
	for d := 0; d < 10; d++ {
		if secretCount[d] < guessCount[d] {
			digits += secretCount[d]
		} else {
			digits += guessCount[d]
		}
	}
	return positions, digits
}

func (g *digitGuess) Discipline(phase room.Phase) room.Discipline {
	switch phase {
	case room.PhaseSettingNumbers:
		return room.DisciplineFreeSet
	case room.PhasePlaying:
		return room.DisciplineRotation
	}
	return room.DisciplineNone
}

func (g *digitGuess) TurnExempt(string) bool { return false }
func (g *digitGuess) Eligible(string) bool   { return true }

// Settled reports whether a secret is already locked in; during guessing
// rotation handles everything.
func (g *digitGuess) Settled(id string) bool {
	if g.phase == room.PhaseSettingNumbers {
		_, ok := g.secrets[id]
		return ok
	}
	return true
}

func (g *digitGuess) View(viewer room.Seat) map[string]any {
	if g.phase == room.PhaseWaiting {
		return nil
	}
	view := map[string]any{
		"phase":      string(g.phase),
		"my_guesses": g.guesses[viewer.ID],
	}
	if secret, ok := g.secrets[viewer.ID]; ok {
		view["my_number"] = secret
	}
	return view
}

func (g *digitGuess) RemoveSeat(id string) *room.Outcome {
	if g.phase == room.PhaseWaiting || g.phase == room.PhaseFinished {
		return nil
	}
	g.phase = room.PhaseFinished
	for _, s := range g.seats {
		if s.ID != id {
			return winOutcome([]room.Event{event("game_over", map[string]any{
				"winner": s.Name,
				"reason": "opponent_left",
			})}, s, map[string]any{"reason": "opponent_left"})
		}
	}
	return nil
}
