package wfc

import "fmt"

// Collapse commits the cell at p to a tile drawn uniformly from its domain
func Collapse(g *Grid, p Point, rng Rand) (Tile, error) {
	if !g.InBounds(p.X, p.Y) {
		return Blank, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}
	c := g.at(p)
	if c.Collapsed {
		return Blank, fmt.Errorf("%w: (%d,%d)", ErrAlreadyCollapsed, p.X, p.Y)
	}
	if c.Domain.IsEmpty() {
		return Blank, fmt.Errorf("%w: (%d,%d)", ErrContradiction, p.X, p.Y)
	}

	t := c.Domain.Nth(rng.Intn(c.Domain.Len()))
	c.Domain = NewTileSet(t)
	c.Collapsed = true
	c.Entropy = 1.0
	return t, nil
}
