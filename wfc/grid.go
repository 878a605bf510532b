package wfc

import (
	"fmt"
	"io"
	"strconv"
)

// PropagatedSingletonEntropy marks a cell narrowed to one tile by propagation,
// keeping it distinguishable from a collapsed cell (entropy 1)
const PropagatedSingletonEntropy = 1.1

// Cell is the per-position collapse state
type Cell struct {
	Domain    TileSet
	Collapsed bool
	Entropy   float64
}

var freshCell = Cell{Domain: FullSet, Collapsed: false, Entropy: TileCount}

// Grid is a width x height matrix of cells, stored row-major
type Grid struct {
	width, height int
	cells         []Cell
}

// NewGrid allocates a grid in the reset state
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	g.Reset()
	return g, nil
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }

// Reset returns every cell to the fully unconstrained state
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = freshCell
	}
}

// InBounds reports whether (x, y) lies in [0,width) x [0,height)
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns a copy of the cell at (x, y)
func (g *Grid) Cell(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.cells[y*g.width+x], nil
}

// at returns the mutable cell; out-of-range access is a programming error
func (g *Grid) at(p Point) *Cell {
	if !g.InBounds(p.X, p.Y) {
		panic(fmt.Sprintf("%v: (%d,%d) in %dx%d", ErrOutOfBounds, p.X, p.Y, g.width, g.height))
	}
	return &g.cells[p.Y*g.width+p.X]
}

// AllCollapsed reports whether the selector has nothing left to pick
func (g *Grid) AllCollapsed() bool {
	for i := range g.cells {
		if !g.cells[i].Collapsed {
			return false
		}
	}
	return true
}

// CollapsedCount returns the number of collapsed cells
func (g *Grid) CollapsedCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Collapsed {
			n++
		}
	}
	return n
}

// IsFresh reports whether every cell is in the reset state
func (g *Grid) IsFresh() bool {
	for i := range g.cells {
		if g.cells[i] != freshCell {
			return false
		}
	}
	return true
}

// Entropies returns the entropy matrix indexed [y][x]
func (g *Grid) Entropies() [][]float64 {
	out := make([][]float64, g.height)
	for y := range out {
		out[y] = make([]float64, g.width)
		for x := range out[y] {
			out[y][x] = g.cells[y*g.width+x].Entropy
		}
	}
	return out
}

// WriteEntropies writes one line per grid row, values space-separated
func (g *Grid) WriteEntropies(w io.Writer) error {
	buf := make([]byte, 0, g.width*4)
	for y := 0; y < g.height; y++ {
		buf = buf[:0]
		for x := 0; x < g.width; x++ {
			if x > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, g.cells[y*g.width+x].Entropy, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// NewOutput allocates a [height][width] output grid filled with Blank
func NewOutput(width, height int) [][]Tile {
	out := make([][]Tile, height)
	for y := range out {
		out[y] = make([]Tile, width)
	}
	return out
}

// ClearOutput overwrites every entry with Blank
func ClearOutput(out [][]Tile) {
	for y := range out {
		for x := range out[y] {
			out[y][x] = Blank
		}
	}
}
