package game

import (
	"encoding/json"

	"gamehub/internal/room"
)

const (
	symbolO = "⭕"
	symbolX = "❌"
)

var winningTriples = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// ticTacToe is the head-to-head 3x3 classic. The creator plays circles and
// moves first.
type ticTacToe struct {
	seats   []room.Seat
	board   [9]string
	symbols map[string]string
	playing bool
	moves   int
}

func newTicTacToe() *ticTacToe {
	return &ticTacToe{symbols: make(map[string]string)}
}

func (g *ticTacToe) Config() room.Config {
	return room.Config{
		Type:         room.TypeTicTacToe,
		MinPlayers:   2,
		MaxPlayers:   2,
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *ticTacToe) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	g.seats = seats
	g.symbols[seats[0].ID] = symbolO
	g.symbols[seats[1].ID] = symbolX
	g.playing = true

	return &room.Outcome{
		Events: []room.Event{event("game_started", map[string]any{
			"board": g.boardView(),
			"symbols": map[string]string{
				seats[0].ID: symbolO,
				seats[1].ID: symbolX,
			},
			"current_turn": seats[0].ID,
		})},
		Phase:      room.PhasePlaying,
		NextTurnID: seats[0].ID,
	}, nil
}

func (g *ticTacToe) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	if act.Kind != "move" {
		return nil, room.ErrUnknownAction
	}
	if !g.playing {
		return nil, room.ErrActionNotInThisPhase
	}

	var p struct {
		Position int `json:"position"`
	}
	if err := decode(act.Payload, &p); err != nil {
		return nil, err
	}
	if p.Position < 0 || p.Position > 8 || g.board[p.Position] != "" {
		return nil, room.ErrInvalidTarget
	}

	symbol := g.symbols[actor.ID]
	g.board[p.Position] = symbol
	g.moves++

	moved := event("move_made", map[string]any{
		"position": p.Position,
		"symbol":   symbol,
		"board":    g.boardView(),
	})

	if cells := g.winningCells(symbol); cells != nil {
		g.playing = false
		over := event("game_over", map[string]any{
			"winner":        actor.Name,
			"winning_cells": cells,
		})
		return winOutcome([]room.Event{moved, over}, actor,
			map[string]any{"winning_cells": cells}), nil
	}

	if g.moves == 9 {
		g.playing = false
		over := event("game_over", map[string]any{"draw": true})
		return drawOutcome([]room.Event{moved, over}, nil), nil
	}

	return &room.Outcome{Events: []room.Event{moved}, Advance: true}, nil
}

func (g *ticTacToe) boardView() []string {
	view := make([]string, len(g.board))
	copy(view, g.board[:])
	return view
}

func (g *ticTacToe) winningCells(symbol string) []int {
	for _, t := range winningTriples {
		if g.board[t[0]] == symbol && g.board[t[1]] == symbol && g.board[t[2]] == symbol {
			return t[:]
		}
	}
	return nil
}

func (g *ticTacToe) Discipline(phase room.Phase) room.Discipline {
	if phase == room.PhasePlaying {
		return room.DisciplineRotation
	}
	return room.DisciplineNone
}

func (g *ticTacToe) TurnExempt(string) bool { return false }
func (g *ticTacToe) Eligible(string) bool   { return true }
func (g *ticTacToe) Settled(string) bool    { return true }

func (g *ticTacToe) AdvanceRound() (*room.Outcome, error) { return nil, nil }

func (g *ticTacToe) View(viewer room.Seat) map[string]any {
	if !g.playing && g.moves == 0 {
		return nil
	}
	return map[string]any{
		"board":   g.boardView(),
		"symbols": g.symbols,
	}
}

func (g *ticTacToe) RemoveSeat(id string) *room.Outcome {
	if !g.playing {
		return nil
	}
	g.playing = false
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
