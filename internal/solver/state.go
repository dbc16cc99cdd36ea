package solver

import (
	"sort"
	"strconv"
	"strings"
)

// CellState is one entry of the simulation's visible grid.
//
//   - 0 to 8 mean the cell is revealed with that many mined neighbors.
//   - Hidden means nothing is known about the cell.
//   - AssumedSafe is used only inside contradiction-hypothesis overlays and
//     never appears in the real grid.
//
// Flag state is tracked separately; mines are never revealed in simulation.
type CellState int8

const (
	AssumedSafe CellState = -2
	Hidden      CellState = -1
)

func (s CellState) String() string {
	switch {
	case s == AssumedSafe:
		return "_"
	case s == Hidden:
		return " "
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is a visible-state grid in row-major order. It is both the solver's
// working grid and the shape callers hand to GetHint.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			b.WriteString(g[y*width+x].String() + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

/*
 * simState is the mutable working set of one IsSolvable or GetHint call.
 * It is allocated at entry, owned exclusively by that call, and discarded
 * on return. flagCount is maintained incrementally, never re-scanned.
 */
type simState struct {
	board *Board
	nb    *neighborCache
	opts  Options

	visible   Grid
	flag      []bool
	flagCount int

	// dirty holds packed (x<<16)|y keys of cells whose neighborhood has
	// changed since they were last inspected.
	dirty map[int]struct{}

	// contradiction is set when a real (non-hypothesis) deduction violates
	// a constraint; the driver reports the board unsolvable.
	contradiction bool

	note passNote
}

func newSimState(board *Board, opts Options) *simState {
	visible := make(Grid, board.Width*board.Height)
	for i := range visible {
		visible[i] = Hidden
	}
	return &simState{
		board:   board,
		nb:      getNeighborCache(board.Width, board.Height),
		opts:    opts,
		visible: visible,
		flag:    make([]bool, board.Width*board.Height),
		dirty:   make(map[int]struct{}),
	}
}

// simStateFromCaller copies a live player grid so that GetHint can run the
// pipeline without mutating caller state.
func simStateFromCaller(board *Board, visible Grid, flags []bool, opts Options) *simState {
	s := newSimState(board, opts)
	copy(s.visible, visible)
	copy(s.flag, flags)
	for _, f := range flags {
		if f {
			s.flagCount++
		}
	}
	return s
}

func (s *simState) markDirty(i int) {
	x, y := i%s.board.Width, i/s.board.Width
	s.dirty[packXY(x, y)] = struct{}{}
}

// markDirtyAround flags a mutated cell and its whole neighborhood for
// re-inspection.
func (s *simState) markDirtyAround(i int) {
	s.markDirty(i)
	for _, n := range s.nb.neighbors[i] {
		s.markDirty(n)
	}
}

// dirtyKeys drains the dirty set in deterministic order and installs a fresh
// one; mutations made while processing land in the fresh set.
func (s *simState) dirtyKeys() []int {
	keys := make([]int, 0, len(s.dirty))
	for k := range s.dirty {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	s.dirty = make(map[int]struct{})
	return keys
}

func (s *simState) restoreDirty(keys []int) {
	for _, k := range keys {
		s.dirty[k] = struct{}{}
	}
}

func (s *simState) revealed(i int) bool {
	return s.visible[i] >= 0
}

func (s *simState) hiddenUnflagged(i int) bool {
	return s.visible[i] == Hidden && !s.flag[i]
}

func (s *simState) flagAt(i int) {
	if s.flag[i] || s.revealed(i) {
		return
	}
	s.flag[i] = true
	s.flagCount++
	s.markDirtyAround(i)
}

/*
 * floodReveal opens a target cell and cascade-reveals the neighborhood of
 * every zero cell it uncovers. An explicit stack is used instead of
 * recursion; boards may be large. Already-revealed or flagged cells are
 * no-ops. The driver only feeds cells the strategies have proven safe, so
 * hitting a mine here means the input board or caller state is corrupt; the
 * simulation records a contradiction rather than panic.
 */
func (s *simState) floodReveal(i int) bool {
	if !s.hiddenUnflagged(i) {
		return false
	}
	if s.board.Mines[i] {
		s.contradiction = true
		return false
	}
	stack := []int{i}
	opened := false
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !s.hiddenUnflagged(j) {
			continue
		}
		if s.board.Mines[j] {
			s.contradiction = true
			return opened
		}
		s.visible[j] = CellState(s.board.Adjacent[j])
		s.markDirtyAround(j)
		opened = true
		if s.visible[j] == 0 {
			for _, n := range s.nb.neighbors[j] {
				if s.hiddenUnflagged(n) {
					stack = append(stack, n)
				}
			}
		}
	}
	return opened
}

// countNeighbors splits a constraint's neighborhood into flagged count and
// the list of hidden-unflagged cell indices. scratch avoids per-constraint
// allocation on the hot path.
func (s *simState) countNeighbors(i int, scratch []int) (flagged int, hidden []int) {
	hidden = scratch[:0]
	for _, n := range s.nb.neighbors[i] {
		if s.flag[n] {
			flagged++
		} else if s.visible[n] == Hidden {
			hidden = append(hidden, n)
		}
	}
	return flagged, hidden
}

// allSafeRevealed is the solvability verdict: every non-mine cell revealed.
func (s *simState) allSafeRevealed() bool {
	for i, mine := range s.board.Mines {
		if !mine && !s.revealed(i) {
			return false
		}
	}
	return true
}
