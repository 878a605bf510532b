// Package render draws collapse state onto a tcell screen.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wavetrack/wfc"
)

// CellWidth is the number of columns per grid cell, keeping cells roughly square
const CellWidth = 2

var tileRunes = [wfc.TileCount]rune{'·', '↑', '←', '→', '↓'}

var (
	trackColor     = tcell.NewRGBColor(230, 200, 80)
	blankColor     = tcell.NewRGBColor(70, 70, 70)
	highlightColor = tcell.NewRGBColor(255, 80, 80)
	forcedColor    = tcell.NewRGBColor(120, 160, 220)
)

// TileRune returns the screen glyph for a placed tile
func TileRune(t wfc.Tile) rune {
	if t.Valid() {
		return tileRunes[t]
	}
	return '?'
}

// TileStyle returns the style for a placed tile
func TileStyle(t wfc.Tile) tcell.Style {
	if t == wfc.Blank {
		return tcell.StyleDefault.Foreground(blankColor)
	}
	return tcell.StyleDefault.Foreground(trackColor).Bold(true)
}

// EntropyColor maps an uncollapsed domain size to a gray level, more options brighter
func EntropyColor(domainSize int) tcell.Color {
	if domainSize <= 0 {
		return tcell.ColorRed
	}
	v := 60 + int32(domainSize-1)*160/int32(wfc.TileCount-1)
	if v > 220 {
		v = 220
	}
	return tcell.NewRGBColor(v, v, v)
}

// View positions the grid on screen
type View struct {
	OriginX, OriginY int
	Highlight        wfc.Point // last collapsed cell; (-1,-1) for none
}

// DrawGrid draws placed tiles from out and domain sizes for uncollapsed cells of g
func (v View) DrawGrid(s tcell.Screen, out [][]wfc.Tile, g *wfc.Grid) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c, _ := g.Cell(x, y)
			sx, sy := v.OriginX+x*CellWidth, v.OriginY+y

			var r rune
			var style tcell.Style
			switch {
			case c.Collapsed:
				r = TileRune(out[y][x])
				style = TileStyle(out[y][x])
				if v.Highlight == (wfc.Point{X: x, Y: y}) {
					style = style.Foreground(highlightColor)
				}
			case c.Domain.Len() == 1:
				// Forced by propagation, waiting for selection
				r = TileRune(c.Domain.Nth(0))
				style = tcell.StyleDefault.Foreground(forcedColor).Dim(true)
			default:
				r = rune('0' + c.Domain.Len())
				style = tcell.StyleDefault.Foreground(EntropyColor(c.Domain.Len()))
			}
			s.SetContent(sx, sy, r, nil, style)
			s.SetContent(sx+1, sy, ' ', nil, tcell.StyleDefault)
		}
	}
}

// DrawTiles draws a finished output grid without collapse state
func (v View) DrawTiles(s tcell.Screen, out [][]wfc.Tile) {
	for y, row := range out {
		for x, t := range row {
			sx, sy := v.OriginX+x*CellWidth, v.OriginY+y
			s.SetContent(sx, sy, TileRune(t), nil, TileStyle(t))
			s.SetContent(sx+1, sy, ' ', nil, tcell.StyleDefault)
		}
	}
}

// DrawText writes a single line, clipped at the screen edge
func DrawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// Status summarizes driver progress for a status line
func Status(d *wfc.Driver, paused bool) string {
	st := d.Stats()
	g := d.Grid()
	line := fmt.Sprintf("%s mode=%s collapsed=%d/%d runs=%d contradictions=%d",
		d.State(), d.Mode(), g.CollapsedCount(), g.Width()*g.Height(), st.CompletedRuns, st.Contradictions)
	if paused {
		line += "  [PAUSED]"
	}
	return line
}
