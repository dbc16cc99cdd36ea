package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborCache(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1}, {1, 5}, {2, 3}, {9, 9}, {16, 16}, {30, 16},
	}
	for _, size := range sizes {
		nc := buildNeighborCache(size.w, size.h)
		require.Len(t, nc.neighbors, size.w*size.h)
		for y := range size.h {
			for x := range size.w {
				var want []int
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						xx, yy := x+dx, y+dy
						if 0 <= xx && xx < size.w && 0 <= yy && yy < size.h {
							want = append(want, yy*size.w+xx)
						}
					}
				}
				got := nc.neighbors[y*size.w+x]
				assert.Equal(t, want, got, "%dx%d cell %d:%d", size.w, size.h, x, y)
			}
		}
	}
}

func TestNeighborCacheCornerCounts(t *testing.T) {
	nc := buildNeighborCache(9, 9)
	assert.Len(t, nc.neighbors[0], 3)      // corner
	assert.Len(t, nc.neighbors[4], 5)      // top edge
	assert.Len(t, nc.neighbors[4*9+4], 8)  // interior
	assert.Len(t, nc.neighbors[8*9+8], 3)  // far corner
}

// Consecutive solves on same-sized boards must share one cache build. Not
// parallel: the build counter is process-global.
func TestNeighborCacheReuse(t *testing.T) {
	b1 := mustBoard(t, 16, 16, 0, 37, 100)
	b2 := mustBoard(t, 16, 16, 5, 42, 200)

	IsSolvable(b1, 8, 8)
	builds := NeighborCacheBuilds()

	IsSolvable(b2, 8, 8)
	IsSolvable(b1, 10, 10)
	assert.Equal(t, builds, NeighborCacheBuilds())

	// A different geometry forces exactly one rebuild.
	b3 := mustBoard(t, 9, 9, 0)
	IsSolvable(b3, 4, 4)
	assert.Equal(t, builds+1, NeighborCacheBuilds())
}
