package solver

import "log/slog"

/*
 * Solvability driver. Strategies are tried in ascending cost order; the
 * first one to make progress wins and the loop restarts. Cheap local rules
 * resolve the bulk of cells, contradiction and tank are reserved for small
 * tightly constrained regions, and the global count fires near endgame.
 */

// IsSolvable reports whether pure logic, applied to fixpoint from a 3x3
// opening at (startX, startY), reveals every non-mine cell of the board.
// It has no side effects beyond the shared neighbor cache.
func IsSolvable(board *Board, startX, startY int) bool {
	return IsSolvableOpts(board, startX, startY, DefaultOptions())
}

func IsSolvableOpts(board *Board, startX, startY int, opts Options) bool {
	if !board.InBounds(startX, startY) || board.MineAt(startX, startY) {
		Log.Warn("solver called with invalid opening",
			slog.Int("x", startX), slog.Int("y", startY))
		return false
	}

	s := newSimState(board, opts.sanitized())
	s.openAt(startX, startY)

	s.runToFixpoint()

	if s.contradiction {
		Log.Warn("contradiction during real deduction; board corrupt",
			slog.Int("width", board.Width), slog.Int("height", board.Height))
		return false
	}
	return s.allSafeRevealed()
}

// openAt reveals the 3x3 opening block via flood. The generator keeps the
// block mine-free on boards large enough to allow it; on cramped boards a
// mined neighbor simply stays hidden.
func (s *simState) openAt(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if !s.board.InBounds(xx, yy) {
				continue
			}
			i := yy*s.board.Width + xx
			if !s.board.Mines[i] {
				s.floodReveal(i)
			}
		}
	}
}

// runToFixpoint drives the strategy pipeline until nothing makes progress.
// The iteration cap is a safety net against logic bugs, not a tuning knob.
func (s *simState) runToFixpoint() {
	maxIter := 2 * s.board.Width * s.board.Height
	for iter := 0; iter < maxIter; iter++ {
		if s.contradiction {
			return
		}
		if s.stepCounting() {
			continue
		}
		if s.contradiction {
			return
		}
		if s.stepSubset() {
			continue
		}
		if s.contradiction {
			return
		}
		if s.stepContradiction() {
			continue
		}
		if s.contradiction {
			return
		}
		if s.stepTank() {
			continue
		}
		if s.contradiction {
			return
		}
		if s.stepGlobal() {
			continue
		}
		return
	}
}
