package game

import (
	"encoding/json"

	"gamehub/internal/room"
)

const (
	c4Rows = 6
	c4Cols = 7
)

// connect4 drops discs into a 6x7 grid; four in a row in any direction
// wins. Row 0 is the top of the board.
type connect4 struct {
	seats   []room.Seat
	board   [c4Rows][c4Cols]string
	colors  map[string]string
	playing bool
	pieces  int
}

func newConnect4() *connect4 {
	return &connect4{colors: make(map[string]string)}
}

func (g *connect4) Config() room.Config {
	return room.Config{
		Type:         room.TypeConnect4,
		MinPlayers:   2,
		MaxPlayers:   2,
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *connect4) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	g.seats = seats
	g.colors[seats[0].ID] = "red"
	g.colors[seats[1].ID] = "yellow"
	g.playing = true

	return &room.Outcome{
		Events: []room.Event{event("game_started", map[string]any{
			"board": g.boardView(),
			"colors": map[string]string{
				seats[0].ID: "red",
				seats[1].ID: "yellow",
			},
			"current_turn": seats[0].ID,
		})},
		Phase:      room.PhasePlaying,
		NextTurnID: seats[0].ID,
	}, nil
}

func (g *connect4) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	if act.Kind != "drop" {
		return nil, room.ErrUnknownAction
	}
	if !g.playing {
		return nil, room.ErrActionNotInThisPhase
	}

	var p struct {
		Column int `json:"column"`
	}
	if err := decode(act.Payload, &p); err != nil {
		return nil, err
	}
	if p.Column < 0 || p.Column >= c4Cols || g.board[0][p.Column] != "" {
		return nil, room.ErrInvalidTarget
	}

	row := -1
	for r := c4Rows - 1; r >= 0; r-- {
		if g.board[r][p.Column] == "" {
			row = r
			break
		}
	}

	color := g.colors[actor.ID]
	g.board[row][p.Column] = color
	g.pieces++

	dropped := event("piece_dropped", map[string]any{
		"row":    row,
		"column": p.Column,
		"color":  color,
		"board":  g.boardView(),
	})

	if cells := g.winningRun(row, p.Column, color); cells != nil {
		g.playing = false
		over := event("game_over", map[string]any{
			"winner":        actor.Name,
			"winning_cells": cells,
		})
		return winOutcome([]room.Event{dropped, over}, actor,
			map[string]any{"winning_cells": cells}), nil
	}

	if g.pieces == c4Rows*c4Cols {
		g.playing = false
		over := event("game_over", map[string]any{"draw": true})
		return drawOutcome([]room.Event{dropped, over}, nil), nil
	}

	return &room.Outcome{Events: []room.Event{dropped}, Advance: true}, nil
}

// winningRun scans the four line directions through (row, col) and returns
// the cells of a run of four or more, or nil.
func (g *connect4) winningRun(row, col int, color string) [][2]int {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		cells := [][2]int{{row, col}}
		for _, sign := range []int{1, -1} {
			r, c := row+d[0]*sign, col+d[1]*sign
			for r >= 0 && r < c4Rows && c >= 0 && c < c4Cols && g.board[r][c] == color {
				cells = append(cells, [2]int{r, c})
				r += d[0] * sign
				c += d[1] * sign
			}
		}
		if len(cells) >= 4 {
			return cells
		}
	}
	return nil
}

func (g *connect4) boardView() [][]string {
	view := make([][]string, c4Rows)
	for r := range g.board {
		row := make([]string, c4Cols)
		copy(row, g.board[r][:])
		view[r] = row
	}
	return view
}

func (g *connect4) Discipline(phase room.Phase) room.Discipline {
	if phase == room.PhasePlaying {
		return room.DisciplineRotation
	}
	return room.DisciplineNone
}

func (g *connect4) TurnExempt(string) bool { return false }
func (g *connect4) Eligible(string) bool   { return true }
func (g *connect4) Settled(string) bool    { return true }

func (g *connect4) AdvanceRound() (*room.Outcome, error) { return nil, nil }

func (g *connect4) View(viewer room.Seat) map[string]any {
	if g.pieces == 0 && !g.playing {
		return nil
	}
	return map[string]any{
		"board":  g.boardView(),
		"colors": g.colors,
	}
}

func (g *connect4) RemoveSeat(id string) *room.Outcome {
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
