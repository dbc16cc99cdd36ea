package solver

import (
	"math/bits"
	"sort"
)

/*
 * Strategy 4: tank enumeration. The frontier is partitioned into connected
 * regions (two frontier cells are connected when they share a constraint)
 * and every mine placement over a small region is enumerated with an integer
 * bitmask. Cells set in every valid placement are definite mines; cells set
 * in none are definite safes.
 *
 * Cost is bounded three ways: regions larger than TankRegionCap are skipped,
 * the total number of enumerated configurations per pass is budgeted by
 * TankConfigCap, and placements exceeding the remaining global mine count
 * are pruned outright.
 */

type tankConstraint struct {
	residual int    // value - flagged neighbors
	mask     uint32 // region-local members of the constraint's hidden set
	outside  int    // hidden neighbors outside the region, absorb leftovers
}

type tankRegion struct {
	cells       []int // board indices, region-local order
	constraints []tankConstraint
}

func (s *simState) stepTank() bool {
	regions := s.tankRegions()
	sort.Slice(regions, func(i, j int) bool {
		if len(regions[i].cells) != len(regions[j].cells) {
			return len(regions[i].cells) < len(regions[j].cells)
		}
		return regions[i].cells[0] < regions[j].cells[0]
	})

	budget := s.opts.TankConfigCap
	minesLeft := s.board.MineCount - s.flagCount
	progress := false

	for _, reg := range regions {
		size := len(reg.cells)
		if size > s.opts.TankRegionCap {
			continue
		}
		configs := 1 << size
		if configs > budget {
			continue
		}
		budget -= configs

		var (
			andMask    = uint32(1<<size) - 1
			orMask     uint32
			validCount int
		)
		for mask := uint32(0); mask < uint32(configs); mask++ {
			if bits.OnesCount32(mask) > minesLeft {
				continue
			}
			ok := true
			for _, c := range reg.constraints {
				m := bits.OnesCount32(mask & c.mask)
				if c.residual-m < 0 || c.residual-m > c.outside {
					ok = false
					break
				}
			}
			if ok {
				validCount++
				andMask &= mask
				orMask |= mask
			}
		}

		if validCount == 0 {
			// No placement satisfies the region's constraints: the real
			// grid state is already inconsistent.
			s.contradiction = true
			return false
		}

		detail := hintDetail{validConfigs: validCount}
		for bit, cell := range reg.cells {
			switch {
			case andMask&(1<<bit) != 0:
				s.flagAt(cell)
				s.noteMine(cell, StrategyTank, detail)
				minesLeft--
				progress = true
			case orMask&(1<<bit) == 0:
				if s.floodReveal(cell) {
					progress = true
				}
				if s.contradiction {
					return false
				}
				s.noteSafe(cell, StrategyTank, detail)
			}
		}
	}
	return progress
}

// tankRegions groups the frontier into connected regions via BFS over the
// "shares a constraint" relation and collects each region's constraints.
func (s *simState) tankRegions() []tankRegion {
	fr := s.frontier()
	inFrontier := make(map[int]bool, len(fr))
	for _, i := range fr {
		inFrontier[i] = true
	}

	// constraint cell -> its frontier neighbors
	byConstraint := map[int][]int{}
	var cbuf [8]int
	for _, i := range fr {
		for _, c := range s.constraintsAround(i, cbuf[:]) {
			byConstraint[c] = append(byConstraint[c], i)
		}
	}

	visited := make(map[int]bool, len(fr))
	var regions []tankRegion
	for _, seed := range fr {
		if visited[seed] {
			continue
		}
		var cells []int
		queue := []int{seed}
		visited[seed] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			cells = append(cells, cur)
			for _, c := range s.constraintsAround(cur, cbuf[:]) {
				for _, other := range byConstraint[c] {
					if !visited[other] {
						visited[other] = true
						queue = append(queue, other)
					}
				}
			}
		}
		sort.Ints(cells)
		regions = append(regions, s.buildRegion(cells))
	}
	return regions
}

func (s *simState) buildRegion(cells []int) tankRegion {
	local := make(map[int]int, len(cells))
	for bit, cell := range cells {
		local[cell] = bit
	}

	seen := map[int]bool{}
	reg := tankRegion{cells: cells}
	var cbuf, scratch [8]int
	for _, cell := range cells {
		for _, c := range s.constraintsAround(cell, cbuf[:]) {
			if seen[c] {
				continue
			}
			seen[c] = true
			flagged, hidden := s.countNeighbors(c, scratch[:])
			tc := tankConstraint{residual: int(s.visible[c]) - flagged}
			for _, h := range hidden {
				if bit, ok := local[h]; ok {
					tc.mask |= 1 << bit
				} else {
					tc.outside++
				}
			}
			reg.constraints = append(reg.constraints, tc)
		}
	}
	return reg
}
