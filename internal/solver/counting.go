package solver

/*
 * Strategy 1: counting. Local trivial deductions on dirty constraints.
 * For a revealed value v with F flagged neighbors and hidden set H:
 *
 *   v == F + |H|  =>  every cell in H is a mine
 *   v == F        =>  every cell in H is safe
 *
 * F > v or F + |H| < v on the real grid violates I3 and marks the whole
 * simulation contradictory.
 */
func (s *simState) stepCounting() bool {
	old := s.dirtyKeys()
	progress := false
	var scratch [8]int
	for _, key := range old {
		x, y := unpackXY(key)
		i := y*s.board.Width + x
		v := s.visible[i]
		if v <= 0 {
			continue
		}
		flagged, hidden := s.countNeighbors(i, scratch[:])
		if CellState(flagged) > v || CellState(flagged+len(hidden)) < v {
			s.contradiction = true
			return false
		}
		if len(hidden) == 0 {
			continue
		}
		if v == CellState(flagged+len(hidden)) {
			for _, h := range append([]int(nil), hidden...) {
				s.flagAt(h)
				s.noteMine(h, StrategyCounting, hintDetail{constraints: []int{i}})
			}
			progress = true
		} else if v == CellState(flagged) {
			for _, h := range append([]int(nil), hidden...) {
				if s.floodReveal(h) {
					progress = true
				}
				if s.contradiction {
					return false
				}
				s.noteSafe(h, StrategyCounting, hintDetail{constraints: []int{i}})
			}
		}
	}
	if !progress {
		s.restoreDirty(old)
	}
	return progress
}

/*
 * Strategy 5: global count. Compares the remaining mine budget against the
 * set of hidden-unflagged cells; fires only near endgame.
 */
func (s *simState) stepGlobal() bool {
	var unknown []int
	for i := range s.visible {
		if s.hiddenUnflagged(i) {
			unknown = append(unknown, i)
		}
	}
	remaining := s.board.MineCount - s.flagCount
	if len(unknown) == 0 {
		if remaining != 0 {
			s.contradiction = true
		}
		return false
	}
	if remaining < 0 || remaining > len(unknown) {
		s.contradiction = true
		return false
	}
	switch remaining {
	case len(unknown):
		for _, i := range unknown {
			s.flagAt(i)
			s.noteMine(i, StrategyGlobal, hintDetail{})
		}
		return true
	case 0:
		progress := false
		for _, i := range unknown {
			if s.floodReveal(i) {
				progress = true
			}
			if s.contradiction {
				return false
			}
			s.noteSafe(i, StrategyGlobal, hintDetail{})
		}
		return progress
	}
	return false
}
