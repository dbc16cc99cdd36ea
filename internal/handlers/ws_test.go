package handlers

import (
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mines3d/server/internal/mines"
)

func newTestGame(t *testing.T) *mines.GameState {
	t.Helper()
	params := mines.GameParams{Width: 9, Height: 9, MineCount: 10, Unique: true}
	game, err := mines.NewGame(&params, 4, 4, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return game
}

func TestRunCommand(t *testing.T) {
	g := GameHandler{logger: slog.Default()}
	game := newTestGame(t)

	t.Run("ping is a no-op", func(t *testing.T) {
		hint, err := g.runCommand(game, "g")
		require.NoError(t, err)
		assert.Nil(t, hint)
	})

	t.Run("flag toggles a square", func(t *testing.T) {
		_, err := g.runCommand(game, "f 0 0")
		require.NoError(t, err)
		assert.Equal(t, mines.Flagged, game.PlayerGrid[0])

		_, err = g.runCommand(game, "f 0 0")
		require.NoError(t, err)
		assert.Equal(t, mines.Unknown, game.PlayerGrid[0])
	})

	t.Run("hint returns a payload", func(t *testing.T) {
		hint, err := g.runCommand(game, "h")
		require.NoError(t, err)
		require.NotNil(t, hint)
		assert.Equal(t, 1, game.HintsUsed)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, c := range []string{"z", "o 1", "o a b", "o 99 99", "f 1", "h 2"} {
			_, err := g.runCommand(game, c)
			assert.Error(t, err, "command %q", c)
		}
	})

	t.Run("forfeit ends the game", func(t *testing.T) {
		_, err := g.runCommand(game, "r")
		require.NoError(t, err)
		assert.True(t, game.Dead)
	})
}

func TestIterBySep(t *testing.T) {
	var got []string
	for _, piece := range iterBySep("o 1 2\nf 3 4\ng", "\n") {
		got = append(got, piece)
	}
	assert.Equal(t, []string{"o 1 2", "f 3 4", "g"}, got)
}
