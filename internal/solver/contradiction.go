package solver

import "sort"

/*
 * Strategy 3: contradiction. For each frontier cell F, overlay the
 * hypothesis "F is a mine" (and then "F is safe") on top of the real grid
 * and propagate the counting rule among affected constraints. A hypothesis
 * that forces some constraint to violate I3 is impossible, which proves the
 * opposite about F.
 *
 * Overlays are sparse maps, not grid copies; a hypothesis touches only
 * neighbors-of-F and transitively changed cells. Propagation is capped at
 * ContradictionRounds waves and the pass hypothesizes about at most
 * ContradictionFrontierCap frontier cells.
 */

// frontier returns hidden-unflagged cells adjacent to at least one revealed
// number, sorted for deterministic iteration.
func (s *simState) frontier() []int {
	var fr []int
	for i := range s.visible {
		if !s.hiddenUnflagged(i) {
			continue
		}
		for _, n := range s.nb.neighbors[i] {
			if s.visible[n] > 0 {
				fr = append(fr, i)
				break
			}
		}
	}
	sort.Ints(fr)
	return fr
}

func (s *simState) stepContradiction() bool {
	fr := s.frontier()
	if len(fr) > s.opts.ContradictionFrontierCap {
		fr = fr[:s.opts.ContradictionFrontierCap]
	}
	for _, f := range fr {
		if s.hypothesisContradicts(f, true) {
			// F cannot be a mine.
			detail := hintDetail{hypothesis: f}
			s.noteSafe(f, StrategyContradiction, detail)
			if s.floodReveal(f) && !s.contradiction {
				return true
			}
			if s.contradiction {
				return false
			}
		}
		if s.hypothesisContradicts(f, false) {
			// F cannot be safe.
			s.flagAt(f)
			s.noteMine(f, StrategyContradiction, hintDetail{hypothesis: f})
			return true
		}
	}
	return false
}

// hypothesisContradicts simulates assuming cell f is a mine (or safe) and
// reports whether the assumption forces a constraint violation.
func (s *simState) hypothesisContradicts(f int, assumeMine bool) bool {
	overlayFlag := map[int]bool{}
	overlaySafe := map[int]bool{}
	if assumeMine {
		overlayFlag[f] = true
	} else {
		// Assumed safe: the value is unknown but the cell no longer
		// carries a mine for its neighbors' counts.
		overlaySafe[f] = true
	}

	wave := s.constraintsAround(f, nil)
	for round := 0; round < s.opts.ContradictionRounds && len(wave) > 0; round++ {
		next := map[int]struct{}{}
		for _, c := range wave {
			v := int(s.visible[c])
			flagged := 0
			var hidden []int
			for _, n := range s.nb.neighbors[c] {
				switch {
				case s.flag[n] || overlayFlag[n]:
					flagged++
				case s.visible[n] == Hidden && !overlaySafe[n]:
					hidden = append(hidden, n)
				}
			}
			if flagged > v || flagged+len(hidden) < v {
				return true
			}
			if len(hidden) == 0 {
				continue
			}
			switch {
			case flagged == v:
				for _, h := range hidden {
					overlaySafe[h] = true
					for _, cc := range s.constraintsAround(h, nil) {
						next[cc] = struct{}{}
					}
				}
			case flagged+len(hidden) == v:
				for _, h := range hidden {
					overlayFlag[h] = true
					for _, cc := range s.constraintsAround(h, nil) {
						next[cc] = struct{}{}
					}
				}
			}
		}
		wave = wave[:0]
		for c := range next {
			wave = append(wave, c)
		}
		sort.Ints(wave)
	}
	return false
}

// constraintsAround lists the revealed number cells neighboring i.
func (s *simState) constraintsAround(i int, buf []int) []int {
	buf = buf[:0]
	for _, n := range s.nb.neighbors[i] {
		if s.visible[n] > 0 {
			buf = append(buf, n)
		}
	}
	return buf
}
