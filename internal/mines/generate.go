package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/mines3d/server/internal/solver"
)

// maxGenerateAttempts bounds rejection sampling for solvable grids. Standard
// densities certify within a handful of attempts; pathological parameter
// combinations fail loudly instead of spinning forever.
const maxGenerateAttempts = 10000

/*
 * newSolvableGrid places mines uniformly at random, keeping the 3x3 block
 * around the starting square clear, and - when Unique is requested -
 * rejects any layout the deductive solver cannot finish without guessing.
 */
func (p GameParams) newSolvableGrid(startX, startY int, r *rand.Rand) ([]bool, error) {
	width, height, mineCount, unique := p.Unpack()

	/*
	 * Candidate mine locations: everything outside the opening block.
	 * On boards too cramped to exclude the whole block the restriction
	 * shrinks to the starting square itself.
	 */
	candidates := make([]int, 0, width*height)
	for y := range height {
		for x := range width {
			if absDiff(startY, y) > 1 || absDiff(startX, x) > 1 {
				candidates = append(candidates, y*width+x)
			}
		}
	}
	if len(candidates) < mineCount {
		candidates = candidates[:0]
		for y := range height {
			for x := range width {
				if x != startX || y != startY {
					candidates = append(candidates, y*width+x)
				}
			}
		}
		if len(candidates) < mineCount {
			return nil, fmt.Errorf(
				"%d mines do not fit a %dx%d field with a safe opening",
				mineCount, width, height,
			)
		}
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		grid := make([]bool, width*height)
		k := len(candidates)
		picked := append([]int(nil), candidates...)
		for range mineCount {
			i := r.IntN(k)
			grid[picked[i]] = true
			k--
			picked[i] = picked[k]
		}

		if !unique {
			return grid, nil
		}

		board, err := solver.NewBoard(width, height, grid)
		if err != nil {
			return nil, err
		}
		if solver.IsSolvable(board, startX, startY) {
			if attempt > 1 {
				Log.Debug("generated solvable grid",
					"params", p.Seed(), "attempts", attempt)
			}
			return grid, nil
		}
	}

	return nil, fmt.Errorf(
		"could not generate a solvable %dx%d field with %d mines in %d attempts",
		width, height, mineCount, maxGenerateAttempts,
	)
}
