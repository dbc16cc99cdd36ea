package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, width, height int, mineAt ...int) *GameState {
	t.Helper()
	grid := make([]bool, width*height)
	count := 0
	for _, i := range mineAt {
		grid[i] = true
		count++
	}
	playerGrid := make(Grid, len(grid))
	for i := range playerGrid {
		playerGrid[i] = Unknown
	}
	return &GameState{
		GameParams: GameParams{Width: width, Height: height, MineCount: count},
		Grid:       grid,
		PlayerGrid: playerGrid,
	}
}

func TestNewGame(t *testing.T) {
	params := &GameParams{Width: 9, Height: 9, MineCount: 10, Unique: true}
	r := rand.New(rand.NewPCG(1, 2))
	state, err := NewGame(params, 4, 4, r)
	require.NoError(t, err)

	assert.False(t, state.Dead)
	assert.Equal(t, CellState(0), state.PlayerGrid[4*9+4])

	mines := 0
	for i, mine := range state.Grid {
		if mine {
			mines++
			x, y := i%9, i/9
			assert.True(t, absDiff(x, 4) > 1 || absDiff(y, 4) > 1,
				"mine %d:%d inside the opening", x, y)
		}
	}
	assert.Equal(t, 10, mines)
}

func TestNewGameRejectsBadInput(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	_, err := NewGame(&GameParams{Width: 0, Height: 9, MineCount: 1}, 0, 0, r)
	assert.Error(t, err)

	_, err = NewGame(&GameParams{Width: 9, Height: 9, MineCount: 81}, 0, 0, r)
	assert.Error(t, err)

	_, err = NewGame(&GameParams{Width: 9, Height: 9, MineCount: 10}, 9, 0, r)
	assert.Error(t, err)
}

func TestOpenCell(t *testing.T) {
	t.Run("mine kills", func(t *testing.T) {
		s := newTestState(t, 2, 1, 1)
		assert.Equal(t, -1, s.OpenCell(1, 0))
		assert.True(t, s.Dead)
		assert.Equal(t, ExplodedMine, s.PlayerGrid[1])
		// Only the fatal mine is exposed.
		assert.Equal(t, Unknown, s.PlayerGrid[0])
	})

	t.Run("zero cascade", func(t *testing.T) {
		s := newTestState(t, 3, 3, 0, 2)
		assert.Equal(t, 0, s.OpenCell(1, 2))
		assert.Equal(t, Grid{
			Unknown, Unknown, Unknown,
			1, 2, 1,
			0, 0, 0,
		}, s.PlayerGrid)
		assert.False(t, s.Won)
	})

	t.Run("opening the last safe cell wins", func(t *testing.T) {
		s := newTestState(t, 3, 3, 0)
		s.OpenCell(2, 2)
		assert.True(t, s.Won)
		assert.Equal(t, UnflaggedMine, s.PlayerGrid[0])
	})

	t.Run("numbered cell opens alone", func(t *testing.T) {
		s := newTestState(t, 3, 1, 0)
		assert.Equal(t, 0, s.OpenCell(1, 0))
		assert.Equal(t, CellState(1), s.PlayerGrid[1])
		assert.Equal(t, Unknown, s.PlayerGrid[2])
	})
}

func TestFlagCell(t *testing.T) {
	s := newTestState(t, 2, 1, 1)
	s.FlagCell(1, 0)
	assert.Equal(t, Flagged, s.PlayerGrid[1])
	s.FlagCell(1, 0)
	assert.Equal(t, Unknown, s.PlayerGrid[1])

	// Open cells cannot be flagged.
	s.OpenCell(0, 0)
	s.FlagCell(0, 0)
	assert.Equal(t, CellState(1), s.PlayerGrid[0])
}

func TestChordCell(t *testing.T) {
	t.Run("satisfied number opens the rest", func(t *testing.T) {
		s := newTestState(t, 3, 1, 0)
		s.OpenCell(1, 0)
		s.FlagCell(0, 0)
		s.ChordCell(1, 0)
		assert.Equal(t, CellState(0), s.PlayerGrid[2])
		assert.True(t, s.Won)
	})

	t.Run("unsatisfied number is a no-op", func(t *testing.T) {
		s := newTestState(t, 3, 1, 0)
		s.OpenCell(1, 0)
		s.ChordCell(1, 0)
		assert.Equal(t, Unknown, s.PlayerGrid[2])
	})

	t.Run("wrong flag opens a mine", func(t *testing.T) {
		s := newTestState(t, 3, 1, 2)
		s.OpenCell(1, 0)
		s.FlagCell(0, 0)
		s.ChordCell(1, 0)
		assert.True(t, s.Dead)
		assert.Equal(t, ExplodedMine, s.PlayerGrid[2])
	})
}

func TestForfeit(t *testing.T) {
	s := newTestState(t, 2, 2, 0, 3)
	s.FlagCell(0, 0) // correct
	s.FlagCell(1, 0) // wrong
	s.Forfeit()

	assert.True(t, s.Dead)
	assert.Equal(t, CorrectlyFlagged, s.PlayerGrid[0])
	assert.Equal(t, FalselyFlagged, s.PlayerGrid[1])
	assert.Equal(t, CellState(2), s.PlayerGrid[2])
	assert.Equal(t, UnflaggedMine, s.PlayerGrid[3])
}

func TestGameStateRoundTrip(t *testing.T) {
	params := &GameParams{Width: 9, Height: 9, MineCount: 10, Unique: true}
	r := rand.New(rand.NewPCG(7, 13))
	state, err := NewGame(params, 0, 0, r)
	require.NoError(t, err)
	state.FlagCell(8, 8)

	buf, err := state.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeGameState(buf)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestSeed(t *testing.T) {
	p := GameParams{Width: 30, Height: 16, MineCount: 99, Unique: true}
	assert.Equal(t, "30:16:99:1", p.Seed())

	parsed, err := ParseSeed(p.Seed())
	require.NoError(t, err)
	assert.Equal(t, p, *parsed)

	_, err = ParseSeed("not-a-seed")
	assert.Error(t, err)
	_, err = ParseSeed("9:9:10")
	assert.Error(t, err)
}

func TestHint(t *testing.T) {
	t.Run("mid-game", func(t *testing.T) {
		params := &GameParams{Width: 9, Height: 9, MineCount: 10, Unique: true}
		r := rand.New(rand.NewPCG(1, 2))
		state, err := NewGame(params, 4, 4, r)
		require.NoError(t, err)
		if state.Won {
			t.Skip("degenerate layout: opening won the game")
		}

		hint, err := state.Hint()
		require.NoError(t, err)
		require.NotNil(t, hint)
		assert.Equal(t, 1, state.HintsUsed)

		if hint.Certain {
			i := hint.Y*9 + hint.X
			switch hint.Kind {
			case "mine":
				assert.True(t, state.Grid[i])
			case "safe":
				assert.False(t, state.Grid[i])
			}
		}
	})

	t.Run("finished game", func(t *testing.T) {
		s := newTestState(t, 3, 3, 0)
		s.OpenCell(2, 2)
		require.True(t, s.Won)

		hint, err := s.Hint()
		require.NoError(t, err)
		assert.Nil(t, hint)
		assert.Zero(t, s.HintsUsed)
	})
}
