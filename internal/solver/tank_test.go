package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainState is a mid-game 7x2 position with one mine and a four-cell
// hidden run. The three overlapping constraints admit exactly one mine
// placement, but only joint enumeration can see that.
//
//	0 0 1 1 1 0 0
//	0 0 ? ? ? ? 0     mine under the second ?
func chainState(t *testing.T) (*Board, Grid, []bool) {
	t.Helper()
	b := mustBoard(t, 7, 2, 10)
	visible := Grid{
		0, 0, 1, 1, 1, 0, 0,
		0, 0, Hidden, Hidden, Hidden, Hidden, 0,
	}
	return b, visible, make([]bool, 14)
}

// islandState is a 5x3 position where two revealed numbers sit in a ring of
// flagged mines with four unknown cells between them. Two mine placements
// satisfy the numbers; cell 9 is a mine in both and cell 5 is safe in both.
//
//	F F ? F F
//	? 6 . 7 ?     . = revealed number, F = flagged mine, ? = unknown
//	F F ? F F
func islandState(t *testing.T) (*Board, Grid, []bool) {
	t.Helper()
	b := mustBoard(t, 5, 3, 0, 1, 2, 3, 4, 7, 9, 10, 11, 13, 14)
	visible := hiddenGrid(15)
	visible[6] = 6
	visible[8] = 7
	flags := make([]bool, 15)
	for _, i := range []int{0, 1, 3, 4, 7, 10, 11, 13, 14} {
		flags[i] = true
	}
	return b, visible, flags
}

func TestTankResolvesChain(t *testing.T) {
	b, visible, flags := chainState(t)
	s := simStateFromCaller(b, visible, flags, DefaultOptions())

	require.True(t, s.stepTank())
	assert.False(t, s.contradiction)

	assert.True(t, s.flag[10])
	for _, i := range []int{9, 11, 12} {
		assert.True(t, s.revealed(i), "cell %d", i)
	}

	require.NotNil(t, s.note.mine)
	assert.Equal(t, 10, s.note.mine.cell)
	assert.Equal(t, StrategyTank, s.note.mine.strategy)
	assert.Equal(t, 1, s.note.mine.detail.validConfigs)
}

func TestTankFixesCellsAcrossConfigurations(t *testing.T) {
	b, visible, flags := islandState(t)
	s := simStateFromCaller(b, visible, flags, DefaultOptions())

	require.True(t, s.stepTank())
	assert.False(t, s.contradiction)

	// Mine in both surviving placements.
	assert.True(t, s.flag[9])
	// Safe in both.
	assert.True(t, s.revealed(5))
	assert.Equal(t, CellState(4), s.visible[5])
	// Genuinely ambiguous, left alone.
	assert.False(t, s.flag[2])
	assert.False(t, s.revealed(2))
	assert.False(t, s.flag[12])
	assert.False(t, s.revealed(12))

	require.NotNil(t, s.note.safe)
	assert.Equal(t, 5, s.note.safe.cell)
	assert.Equal(t, 2, s.note.safe.detail.validConfigs)
	require.NotNil(t, s.note.mine)
	assert.Equal(t, 9, s.note.mine.cell)
}

func TestTankAmbiguousPairStalls(t *testing.T) {
	b := mustBoard(t, 3, 2, 0)
	visible := Grid{
		Hidden, 1, 0,
		Hidden, 1, 0,
	}
	s := simStateFromCaller(b, visible, make([]bool, 6), DefaultOptions())

	assert.False(t, s.stepTank())
	assert.False(t, s.contradiction)
	assert.Nil(t, s.note.safe)
	assert.Nil(t, s.note.mine)
	for _, i := range []int{0, 3} {
		assert.False(t, s.flag[i], "cell %d", i)
		assert.False(t, s.revealed(i), "cell %d", i)
	}
}

func TestTankRespectsRegionCap(t *testing.T) {
	b, visible, flags := chainState(t)
	opts := DefaultOptions()
	opts.TankRegionCap = 3 // region has 4 cells
	s := simStateFromCaller(b, visible, flags, opts)

	assert.False(t, s.stepTank())
	assert.False(t, s.flag[10])
}

func TestTankRespectsConfigBudget(t *testing.T) {
	b, visible, flags := chainState(t)

	opts := DefaultOptions()
	opts.TankConfigCap = 15 // region needs 2^4 = 16
	s := simStateFromCaller(b, visible, flags, opts)
	assert.False(t, s.stepTank())

	opts.TankConfigCap = 16
	s = simStateFromCaller(b, visible, flags, opts)
	assert.True(t, s.stepTank())
}

func TestTankInconsistentStateContradicts(t *testing.T) {
	// A revealed 2 whose only unknown neighbor cannot carry two mines.
	b := mustBoard(t, 3, 1, 2)
	visible := Grid{0, 2, Hidden}
	s := simStateFromCaller(b, visible, make([]bool, 3), DefaultOptions())

	assert.False(t, s.stepTank())
	assert.True(t, s.contradiction)
}
