package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintCountingSafe(t *testing.T) {
	b := mustBoard(t, 4, 1, 1)
	visible := Grid{Hidden, Hidden, 1, Hidden}
	flags := []bool{false, true, false, false}

	h := GetHint(b, visible, flags)
	require.NotNil(t, h)
	assert.Equal(t, HintSafe, h.Kind)
	assert.Equal(t, 3, h.X)
	assert.Equal(t, 0, h.Y)
	assert.Equal(t, StrategyCounting, h.Strategy)
	assert.True(t, h.Certain)
	assert.Equal(t, []Point{{2, 0}}, h.Constraints)
}

func TestHintCountingMine(t *testing.T) {
	b := mustBoard(t, 3, 1, 2)
	visible := Grid{0, 1, Hidden}

	h := GetHint(b, visible, make([]bool, 3))
	require.NotNil(t, h)
	assert.Equal(t, HintMine, h.Kind)
	assert.Equal(t, 2, h.X)
	assert.Equal(t, StrategyCounting, h.Strategy)
	assert.Equal(t, []Point{{1, 0}}, h.Constraints)
}

func TestHintSubset(t *testing.T) {
	// The 1-2-1 row mid-game: the 1's unknowns are contained in the 2's,
	// so the leftover cell under the far 1 carries the difference.
	b := mustBoard(t, 3, 2, 0, 2)
	visible := Grid{
		Hidden, Hidden, Hidden,
		1, 2, 1,
	}
	flags := make([]bool, 6)

	visibleCopy := append(Grid(nil), visible...)
	flagsCopy := append([]bool(nil), flags...)

	h := GetHint(b, visible, flags)
	require.NotNil(t, h)
	assert.Equal(t, HintMine, h.Kind)
	assert.Equal(t, 2, h.X)
	assert.Equal(t, 0, h.Y)
	assert.Equal(t, StrategySubset, h.Strategy)
	assert.True(t, h.Certain)
	assert.Equal(t, []Point{{0, 1}, {1, 1}}, h.Constraints)
	assert.Nil(t, h.Hypothesis)

	// Hints never touch the caller's grids.
	assert.Equal(t, visibleCopy, visible)
	assert.Equal(t, flagsCopy, flags)
}

func TestHintContradiction(t *testing.T) {
	b, visible, flags := islandState(t)

	h := GetHint(b, visible, flags)
	require.NotNil(t, h)
	assert.Equal(t, HintSafe, h.Kind)
	assert.Equal(t, 0, h.X)
	assert.Equal(t, 1, h.Y)
	assert.Equal(t, StrategyContradiction, h.Strategy)
	assert.True(t, h.Certain)
	require.NotNil(t, h.Hypothesis)
	assert.Equal(t, Point{0, 1}, *h.Hypothesis)
}

func TestHintTank(t *testing.T) {
	b, visible, flags := islandState(t)

	// With propagation cut to one wave the contradiction pass goes blind
	// and enumeration picks up the same cell.
	opts := DefaultOptions()
	opts.ContradictionRounds = 1
	h := GetHintOpts(b, visible, flags, opts)
	require.NotNil(t, h)
	assert.Equal(t, HintSafe, h.Kind)
	assert.Equal(t, 0, h.X)
	assert.Equal(t, 1, h.Y)
	assert.Equal(t, StrategyTank, h.Strategy)
	assert.True(t, h.Certain)
	assert.Equal(t, 2, h.ValidConfigs)
}

func TestHintGlobal(t *testing.T) {
	t.Run("no mines left", func(t *testing.T) {
		b := mustBoard(t, 2, 2)
		h := GetHint(b, hiddenGrid(4), make([]bool, 4))
		require.NotNil(t, h)
		assert.Equal(t, HintSafe, h.Kind)
		assert.Equal(t, StrategyGlobal, h.Strategy)
		assert.Equal(t, Point{0, 0}, Point{h.X, h.Y})
	})

	t.Run("only mines left", func(t *testing.T) {
		b := mustBoard(t, 2, 1, 0, 1)
		h := GetHint(b, hiddenGrid(2), make([]bool, 2))
		require.NotNil(t, h)
		assert.Equal(t, HintMine, h.Kind)
		assert.Equal(t, StrategyGlobal, h.Strategy)
	})
}

func TestHintHeuristicFallback(t *testing.T) {
	// A genuinely ambiguous pair: the best the solver can offer is an
	// explicitly uncertain frontier pick.
	b := mustBoard(t, 3, 2, 0)
	visible := Grid{
		Hidden, 1, 0,
		Hidden, 1, 0,
	}

	h := GetHint(b, visible, make([]bool, 6))
	require.NotNil(t, h)
	assert.False(t, h.Certain)
	assert.Equal(t, StrategyHeuristic, h.Strategy)
	assert.Equal(t, Point{0, 0}, Point{h.X, h.Y})
}

func TestHintNothingToSuggest(t *testing.T) {
	// Won position: the mine flagged, every safe cell open.
	b := mustBoard(t, 2, 1, 1)
	visible := Grid{1, Hidden}
	flags := []bool{false, true}
	assert.Nil(t, GetHint(b, visible, flags))
}

func TestHintInconsistentState(t *testing.T) {
	// The revealed 1 contradicts its two flagged neighbors.
	b := mustBoard(t, 3, 1, 0, 2)
	visible := Grid{Hidden, 1, Hidden}
	flags := []bool{true, false, true}
	assert.Nil(t, GetHint(b, visible, flags))
}

func TestHintRejectsMismatchedGrids(t *testing.T) {
	b := mustBoard(t, 3, 3)
	assert.Nil(t, GetHint(b, hiddenGrid(4), make([]bool, 9)))
	assert.Nil(t, GetHint(b, hiddenGrid(9), make([]bool, 4)))
}

// Certain hints must always match the real board: follow them blindly on
// random boards and verify nothing blows up.
func TestHintSoundness(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 5; round++ {
		mines := make([]bool, 81)
		for _, i := range r.Perm(81)[:10] {
			mines[i] = true
		}
		b, err := NewBoard(9, 9, mines)
		require.NoError(t, err)

		start := -1
		for i := range mines {
			if !mines[i] && b.Adjacent[i] == 0 {
				start = i
				break
			}
		}
		if start < 0 {
			continue
		}

		s := newSimState(b, DefaultOptions())
		s.openAt(start%9, start/9)

		for step := 0; step < 200; step++ {
			h := GetHint(b, s.visible, s.flag)
			if h == nil || !h.Certain {
				break
			}
			i := h.Y*9 + h.X
			switch h.Kind {
			case HintSafe:
				require.False(t, b.Mines[i],
					"round %d: %s hint revealed a mine at %d:%d", round, h.Strategy, h.X, h.Y)
				require.True(t, s.floodReveal(i))
			case HintMine:
				require.True(t, b.Mines[i],
					"round %d: %s hint flagged a safe cell at %d:%d", round, h.Strategy, h.X, h.Y)
				s.flagAt(i)
			}
			require.False(t, s.contradiction)
		}
	}
}
