package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContradictionProvesSafe(t *testing.T) {
	b, visible, flags := islandState(t)
	s := simStateFromCaller(b, visible, flags, DefaultOptions())

	// Assuming cell 5 is a mine forces both neighbors of the 6 to be safe,
	// which starves the 7 of mine candidates.
	require.True(t, s.stepContradiction())
	assert.False(t, s.contradiction)
	assert.True(t, s.revealed(5))

	require.NotNil(t, s.note.safe)
	assert.Equal(t, 5, s.note.safe.cell)
	assert.Equal(t, StrategyContradiction, s.note.safe.strategy)
	assert.Equal(t, 5, s.note.safe.detail.hypothesis)
}

func TestHypothesisBothWaysConsistent(t *testing.T) {
	b, visible, flags := islandState(t)
	s := simStateFromCaller(b, visible, flags, DefaultOptions())

	// Cell 2 really is ambiguous: either assumption about it survives
	// propagation.
	assert.False(t, s.hypothesisContradicts(2, true))
	assert.False(t, s.hypothesisContradicts(2, false))
}

func TestContradictionFrontierCap(t *testing.T) {
	b, visible, flags := islandState(t)

	// Cell 5 is the second frontier cell; capping the pass at one
	// hypothesis hides it.
	opts := DefaultOptions()
	opts.ContradictionFrontierCap = 1
	s := simStateFromCaller(b, visible, flags, opts)
	assert.False(t, s.stepContradiction())
	assert.False(t, s.revealed(5))

	opts.ContradictionFrontierCap = 2
	s = simStateFromCaller(b, visible, flags, opts)
	assert.True(t, s.stepContradiction())
	assert.True(t, s.revealed(5))
}

func TestContradictionRoundsCap(t *testing.T) {
	b, visible, flags := islandState(t)

	// The proof for cell 5 needs two propagation waves.
	opts := DefaultOptions()
	opts.ContradictionRounds = 1
	s := simStateFromCaller(b, visible, flags, opts)
	assert.False(t, s.stepContradiction())
}
