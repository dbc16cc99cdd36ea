package solver

import "sync"

/*
 * Precomputed 8-neighborhoods. Neighbor lookups happen on every strategy's
 * hot path, so they must not bounds-check or allocate. The cache is
 * process-global and keyed by board dimensions; it is rebuilt lazily when a
 * board of a different size shows up, which in practice happens once per
 * game-parameter change.
 */

type neighborCache struct {
	width, height int
	neighbors     [][]int // cell index -> neighbor cell indices (3-8 entries)
}

var (
	cacheMu     sync.Mutex
	cache       *neighborCache
	cacheBuilds int // test instrumentation
)

func getNeighborCache(width, height int) *neighborCache {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cache != nil && cache.width == width && cache.height == height {
		return cache
	}
	cache = buildNeighborCache(width, height)
	cacheBuilds++
	return cache
}

func buildNeighborCache(width, height int) *neighborCache {
	nc := &neighborCache{
		width:     width,
		height:    height,
		neighbors: make([][]int, width*height),
	}
	backing := make([]int, 0, width*height*8)
	for y := range height {
		for x := range width {
			start := len(backing)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					xx, yy := x+dx, y+dy
					if 0 <= xx && xx < width && 0 <= yy && yy < height {
						backing = append(backing, yy*width+xx)
					}
				}
			}
			nc.neighbors[y*width+x] = backing[start:len(backing):len(backing)]
		}
	}
	return nc
}

// NeighborCacheBuilds reports how many times the process-global cache has
// been (re)built. Exposed for tests only.
func NeighborCacheBuilds() int {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	return cacheBuilds
}
