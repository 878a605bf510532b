// Package stream broadcasts collapse progress to websocket clients as JSON frames.
package stream

import (
	"github.com/lixenwraith/wavetrack/level"
	"github.com/lixenwraith/wavetrack/wfc"
)

// Frame is a snapshot of the driver after one step
type Frame struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Tiles     []string    `json:"tiles"`     // glyph rows, '.' for uncollapsed or blank
	Domains   [][]int     `json:"domains"`   // remaining option count per cell
	Entropies [][]float64 `json:"entropies"` // row-major, as PrintEntropies
	State     string      `json:"state"`
	Outcome   string      `json:"outcome"`
	Last      wfc.Point   `json:"last"`
	Stats     wfc.Stats   `json:"stats"`
}

// NewFrame captures d and out after a step that produced outcome
func NewFrame(d *wfc.Driver, out [][]wfc.Tile, outcome wfc.Outcome) Frame {
	g := d.Grid()
	domains := make([][]int, g.Height())
	for y := range domains {
		domains[y] = make([]int, g.Width())
		for x := range domains[y] {
			c, _ := g.Cell(x, y)
			domains[y][x] = c.Domain.Len()
		}
	}

	return Frame{
		Width:     g.Width(),
		Height:    g.Height(),
		Tiles:     level.Format(out),
		Domains:   domains,
		Entropies: g.Entropies(),
		State:     d.State().String(),
		Outcome:   outcome.String(),
		Last:      d.LastCell(),
		Stats:     d.Stats(),
	}
}
