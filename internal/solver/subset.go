package solver

import "sort"

/*
 * Strategy 2: subset. If constraint A's hidden set is strictly contained in
 * constraint B's, the difference D = H_B \ H_A carries exactly
 * r_B - r_A mines (r = value minus flagged neighbors):
 *
 *   r_B - r_A == 0    =>  every cell in D is safe
 *   r_B - r_A == |D|  =>  every cell in D is a mine
 *
 * Two constraints can only share hidden cells when they are within Chebyshev
 * distance 2 of each other, which keeps the candidate scan local. The pass
 * stops at the first progress-making pair.
 */

type constraint struct {
	cell     int   // board index of the revealed number
	residual int   // value - flagged neighbors
	hidden   []int // hidden-unflagged neighbor indices, sorted
}

func (s *simState) constraintAt(i int, scratch []int) (constraint, bool) {
	v := s.visible[i]
	if v <= 0 {
		return constraint{}, false
	}
	flagged, hidden := s.countNeighbors(i, scratch)
	if len(hidden) == 0 {
		return constraint{}, false
	}
	c := constraint{
		cell:     i,
		residual: int(v) - flagged,
		hidden:   append([]int(nil), hidden...),
	}
	sort.Ints(c.hidden)
	return c, true
}

// subsetOf reports whether a is contained in b; both are sorted.
func subsetOf(a, b []int) bool {
	j := 0
	for _, v := range a {
		for j < len(b) && b[j] < v {
			j++
		}
		if j >= len(b) || b[j] != v {
			return false
		}
		j++
	}
	return true
}

func difference(b, a []int) []int {
	d := make([]int, 0, len(b)-len(a))
	j := 0
	for _, v := range b {
		for j < len(a) && a[j] < v {
			j++
		}
		if j < len(a) && a[j] == v {
			continue
		}
		d = append(d, v)
	}
	return d
}

// subsetCandidates gathers revealed number cells that are dirty or adjacent
// to a dirty cell, in deterministic order.
func (s *simState) subsetCandidates(dirtyKeys []int) []int {
	seen := make(map[int]struct{})
	var cells []int
	consider := func(i int) {
		if _, dup := seen[i]; dup || s.visible[i] <= 0 {
			return
		}
		seen[i] = struct{}{}
		cells = append(cells, i)
	}
	for _, key := range dirtyKeys {
		x, y := unpackXY(key)
		i := y*s.board.Width + x
		consider(i)
		for _, n := range s.nb.neighbors[i] {
			consider(n)
		}
	}
	sort.Ints(cells)
	return cells
}

func (s *simState) stepSubset() bool {
	old := s.dirtyKeys()
	s.restoreDirty(old) // subset consumes nothing unless it progresses
	var scratch [8]int

	for _, i := range s.subsetCandidates(old) {
		a, ok := s.constraintAt(i, scratch[:])
		if !ok {
			continue
		}
		x, y := i%s.board.Width, i/s.board.Width
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				xx, yy := x+dx, y+dy
				if !s.board.InBounds(xx, yy) {
					continue
				}
				var bscratch [8]int
				b, ok := s.constraintAt(yy*s.board.Width+xx, bscratch[:])
				if !ok || len(a.hidden) >= len(b.hidden) {
					continue
				}
				if !subsetOf(a.hidden, b.hidden) {
					continue
				}
				diff := difference(b.hidden, a.hidden)
				delta := b.residual - a.residual
				if delta < 0 || delta > len(diff) {
					s.contradiction = true
					return false
				}
				detail := hintDetail{constraints: []int{a.cell, b.cell}}
				switch delta {
				case 0:
					progress := false
					for _, d := range diff {
						if s.floodReveal(d) {
							progress = true
						}
						if s.contradiction {
							return false
						}
						s.noteSafe(d, StrategySubset, detail)
					}
					if progress {
						return true
					}
				case len(diff):
					for _, d := range diff {
						s.flagAt(d)
						s.noteMine(d, StrategySubset, detail)
					}
					return true
				}
			}
		}
	}
	return false
}
