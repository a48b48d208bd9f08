package game

import (
	"testing"

	"gamehub/internal/room"

	"github.com/stretchr/testify/require"
)

func startC4(t *testing.T) (*connect4, []room.Seat) {
	t.Helper()
	g := newConnect4()
	seats := seatsFor(2)
	out, err := g.Start(seats, nil)
	require.NoError(t, err)
	require.Equal(t, room.PhasePlaying, out.Phase)
	return g, seats
}

func drop(t *testing.T, g *connect4, s room.Seat, col int) *room.Outcome {
	t.Helper()
	out, err := g.Apply(s, action(t, "drop", map[string]int{"column": col}))
	require.NoError(t, err)
	return out
}

func TestConnect4GravityStacksUp(t *testing.T) {
	g, seats := startC4(t)

	drop(t, g, seats[0], 3)
	drop(t, g, seats[1], 3)

	require.Equal(t, "red", g.board[5][3])
	require.Equal(t, "yellow", g.board[4][3])
}

func TestConnect4VerticalWin(t *testing.T) {
	g, seats := startC4(t)

	// Red stacks column 0; yellow wastes moves in column 6.
	drop(t, g, seats[0], 0)
	drop(t, g, seats[1], 6)
	drop(t, g, seats[0], 0)
	drop(t, g, seats[1], 6)
	drop(t, g, seats[0], 0)
	drop(t, g, seats[1], 6)
	out := drop(t, g, seats[0], 0)

	require.NotNil(t, out.Terminal)
	require.Equal(t, "Player1", out.Terminal.WinnerName)

	over := findEvent(out, "game_over")
	require.NotNil(t, over)
	cells := over.Data["winning_cells"].([][2]int)
	require.Len(t, cells, 4)
	rows := map[int]bool{}
	for _, c := range cells {
		require.Equal(t, 0, c[1])
		rows[c[0]] = true
	}
	require.Equal(t, map[int]bool{5: true, 4: true, 3: true, 2: true}, rows)
}

func TestConnect4HorizontalWin(t *testing.T) {
	g, seats := startC4(t)

	drop(t, g, seats[0], 0)
	drop(t, g, seats[1], 0)
	drop(t, g, seats[0], 1)
	drop(t, g, seats[1], 1)
	drop(t, g, seats[0], 2)
	drop(t, g, seats[1], 2)
	out := drop(t, g, seats[0], 3)

	require.NotNil(t, out.Terminal)
	require.False(t, out.Terminal.Draw)
}

func TestConnect4FullColumnRejected(t *testing.T) {
	g, seats := startC4(t)

	for i := 0; i < c4Rows; i++ {
		player := seats[i%2]
		drop(t, g, player, 2)
	}
	_, err := g.Apply(seats[0], action(t, "drop", map[string]int{"column": 2}))
	require.ErrorIs(t, err, room.ErrInvalidTarget)

	_, err = g.Apply(seats[0], action(t, "drop", map[string]int{"column": 7}))
	require.ErrorIs(t, err, room.ErrInvalidTarget)
}
