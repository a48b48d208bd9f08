package game

import (
	"encoding/json"

	"gamehub/internal/room"
)

// TriviaQuestion is one multiple-choice question. Hosts may supply their
// own set in the start payload; otherwise the built-in set is used.
type TriviaQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

var defaultQuestions = []TriviaQuestion{
	{
		Question: "Which planet is known as the Red Planet?",
		Options:  []string{"Venus", "Mars", "Jupiter", "Mercury"},
		Answer:   1,
	},
	{
		Question: "What is the largest ocean on Earth?",
		Options:  []string{"Atlantic", "Indian", "Arctic", "Pacific"},
		Answer:   3,
	},
	{
		Question: "How many continents are there?",
		Options:  []string{"5", "6", "7", "8"},
		Answer:   2,
	},
	{
		Question: "Which element has the chemical symbol O?",
		Options:  []string{"Gold", "Oxygen", "Osmium", "Silver"},
		Answer:   1,
	},
	{
		Question: "What year did the first moon landing happen?",
		Options:  []string{"1965", "1969", "1971", "1975"},
		Answer:   1,
	},
}

// trivia runs a fixed question list; everyone answers each question once
// and scores accumulate. Answers resolve when the last player locks in or
// the host calls time.
type trivia struct {
	seats     []room.Seat
	questions []TriviaQuestion
	index     int
	answers   map[string]int
	scores    map[string]int
	phase     room.Phase
}

func newTrivia() *trivia {
	return &trivia{
		answers: make(map[string]int),
		scores:  make(map[string]int),
		phase:   room.PhaseWaiting,
	}
}

func (g *trivia) Config() room.Config {
	return room.Config{
		Type:         room.TypeTrivia,
		MinPlayers:   1,
		MaxPlayers:   8,
		CodeLength:   4,
		CodeAlphabet: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *trivia) Start(seats []room.Seat, payload json.RawMessage) (*room.Outcome, error) {
	g.seats = seats
	for _, s := range seats {
		g.scores[s.ID] = 0
	}

	g.questions = defaultQuestions
	if len(payload) > 0 {
		var p struct {
			Questions []TriviaQuestion `json:"questions"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, room.ErrMalformedPayload
		}
		if len(p.Questions) > 0 {
			for _, q := range p.Questions {
				if len(q.Options) == 0 || q.Answer < 0 || q.Answer >= len(q.Options) {
					return nil, room.ErrMalformedPayload
				}
			}
			g.questions = p.Questions
		}
	}

	g.phase = room.PhasePlaying

	return &room.Outcome{
		Events: []room.Event{event("game_started", map[string]any{
			"total_questions": len(g.questions),
			"question":        g.questionView(),
		})},
		Phase: room.PhasePlaying,
	}, nil
}

func (g *trivia) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	switch act.Kind {
	case "answer":
		return g.answer(actor, act.Payload)
	case "time_up":
		if !actor.Host {
			return nil, room.ErrNotHost
		}
		if g.phase != room.PhasePlaying {
			return nil, room.ErrActionNotInThisPhase
		}
		return g.resolve(), nil
	default:
		return nil, room.ErrUnknownAction
	}
}

func (g *trivia) answer(actor room.Seat, raw json.RawMessage) (*room.Outcome, error) {
	if g.phase != room.PhasePlaying {
		return nil, room.ErrActionNotInThisPhase
	}
	if _, done := g.answers[actor.ID]; done {
		return nil, room.ErrNotYourTurn
	}

	var p struct {
		Index int `json:"index"`
	}
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	q := g.questions[g.index]
	if p.Index < 0 || p.Index >= len(q.Options) {
		return nil, room.ErrInvalidTarget
	}

	g.answers[actor.ID] = p.Index

	answered := event("player_answered", map[string]any{
		"player_name": actor.Name,
		"answered":    len(g.answers),
		"total":       len(g.seats),
	})

	if len(g.answers) >= len(g.seats) {
		out := g.resolve()
		out.Events = append([]room.Event{answered}, out.Events...)
		return out, nil
	}
	return &room.Outcome{Events: []room.Event{answered}}, nil
}

// resolve scores the current question and either advances to the next one
// or finishes the game.
func (g *trivia) resolve() *room.Outcome {
	q := g.questions[g.index]
	for id, idx := range g.answers {
		if idx == q.Answer {
			g.scores[id]++
		}
	}
	g.answers = make(map[string]int)

	result := event("question_result", map[string]any{
		"correct": q.Answer,
		"scores":  g.scoresView(),
	})

	g.index++
	if g.index < len(g.questions) {
		next := event("next_question", map[string]any{
			"question": g.questionView(),
		})
		return &room.Outcome{Events: []room.Event{result, next}}
	}

	g.phase = room.PhaseFinished
	winner, tied := g.topScorer()
	over := event("game_over", map[string]any{
		"scores": g.scoresView(),
		"winner": winner.Name,
		"draw":   tied,
	})
	if tied {
		return drawOutcome([]room.Event{result, over},
			map[string]any{"scores": g.scoresView()})
	}
	return winOutcome([]room.Event{result, over}, winner,
		map[string]any{"scores": g.scoresView()})
}

// questionView hides the answer index from clients.
func (g *trivia) questionView() map[string]any {
	q := g.questions[g.index]
	return map[string]any{
		"number":   g.index + 1,
		"question": q.Question,
		"options":  q.Options,
	}
}

func (g *trivia) scoresView() map[string]int {
	view := make(map[string]int, len(g.seats))
	for _, s := range g.seats {
		view[s.Name] = g.scores[s.ID]
	}
	return view
}

func (g *trivia) topScorer() (room.Seat, bool) {
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

func (g *trivia) Discipline(room.Phase) room.Discipline { return room.DisciplineNone }
func (g *trivia) TurnExempt(string) bool                { return false }
func (g *trivia) Eligible(string) bool                  { return true }
func (g *trivia) Settled(string) bool                   { return true }

func (g *trivia) AdvanceRound() (*room.Outcome, error) { return nil, nil }

func (g *trivia) View(viewer room.Seat) map[string]any {
	if g.phase == room.PhaseWaiting {
		return nil
	}
	view := map[string]any{
		"scores":          g.scoresView(),
		"total_questions": len(g.questions),
	}
	if g.phase == room.PhasePlaying {
		view["question"] = g.questionView()
	}
	return view
}

func (g *trivia) RemoveSeat(id string) *room.Outcome {
	delete(g.answers, id)
	remaining := make([]room.Seat, 0, len(g.seats))
	for _, s := range g.seats {
		if s.ID != id {
			remaining = append(remaining, s)
		}
	}
	g.seats = remaining

	if g.phase != room.PhasePlaying || len(g.seats) == 0 {
		return nil
	}
	if len(g.answers) >= len(g.seats) {
		return g.resolve()
	}
	return nil
}
