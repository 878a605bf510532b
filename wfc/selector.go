package wfc

import "math"

// Rand is the random source used for tie-breaks and tile picks
// *math/rand.Rand satisfies it
type Rand interface {
	Intn(n int) int
}

// SelectNext returns a minimum-entropy uncollapsed cell, chosen uniformly among exact ties
// ok is false once every cell is collapsed
func SelectNext(g *Grid, rng Rand) (p Point, ok bool) {
	minEntropy := math.MaxFloat64
	var candidates []Point

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := &g.cells[y*g.width+x]
			if c.Collapsed {
				continue
			}
			if c.Entropy < minEntropy {
				minEntropy = c.Entropy
				candidates = append(candidates[:0], Point{x, y})
			} else if c.Entropy == minEntropy {
				candidates = append(candidates, Point{x, y})
			}
		}
	}

	if len(candidates) == 0 {
		return Point{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
