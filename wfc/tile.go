package wfc

import (
	"math/bits"
	"strings"
)

// Tile is one track piece placed in a grid cell
type Tile uint8

const (
	Blank Tile = iota
	Up
	Left
	Right
	Down
)

// TileCount is the size of the tile enumeration
const TileCount = 5

var tileNames = [TileCount]string{"blank", "up", "left", "right", "down"}

// Level-file glyphs, indexed by Tile
var tileGlyphs = [TileCount]rune{'.', '^', '<', '>', 'v'}

func (t Tile) String() string {
	if int(t) < TileCount {
		return tileNames[t]
	}
	return "unknown"
}

// Glyph returns the level-file character for the tile
func (t Tile) Glyph() rune {
	if int(t) < TileCount {
		return tileGlyphs[t]
	}
	return '?'
}

// Valid reports whether t is a member of the enumeration
func (t Tile) Valid() bool {
	return int(t) < TileCount
}

// ParseTile resolves a tile name (case-insensitive)
func ParseTile(name string) (Tile, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range tileNames {
		if n == name {
			return Tile(i), true
		}
	}
	return Blank, false
}

// TileFromGlyph resolves a level-file character
func TileFromGlyph(r rune) (Tile, bool) {
	for i, g := range tileGlyphs {
		if g == r {
			return Tile(i), true
		}
	}
	return Blank, false
}

// AllTiles returns every tile in enumeration order
func AllTiles() []Tile {
	return []Tile{Blank, Up, Left, Right, Down}
}

// Direction is one of the four grid adjacency axes
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// DirectionCount is the number of adjacency axes
const DirectionCount = 4

var directionNames = [DirectionCount]string{"north", "east", "south", "west"}

// Unit offsets, y grows downward
var directionOffsets = [DirectionCount]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (d Direction) String() string {
	if d < DirectionCount {
		return directionNames[d]
	}
	return "unknown"
}

// Opposite returns the reverse axis
func (d Direction) Opposite() Direction { return (d + 2) & 3 }

// Offset returns the coordinate delta of the neighbor in direction d
func (d Direction) Offset() (dx, dy int) {
	o := directionOffsets[d&3]
	return o.X, o.Y
}

// ParseDirection resolves a direction name (case-insensitive)
func ParseDirection(name string) (Direction, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return North, false
}

// AllDirections returns the four axes in North, East, South, West order
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Point is a grid coordinate
type Point struct {
	X, Y int
}

// Neighbor returns the adjacent coordinate in direction d, unchecked
func (p Point) Neighbor(d Direction) Point {
	dx, dy := d.Offset()
	return Point{p.X + dx, p.Y + dy}
}

// TileSet is a bitset over the tile enumeration, bit t set when Tile(t) is a member
type TileSet uint8

// FullSet contains every tile
const FullSet TileSet = 1<<TileCount - 1

// NewTileSet builds a set from the given tiles
func NewTileSet(tiles ...Tile) TileSet {
	var s TileSet
	for _, t := range tiles {
		s = s.With(t)
	}
	return s
}

// With returns s plus t
func (s TileSet) With(t Tile) TileSet { return s | 1<<t }

// Has reports membership
func (s TileSet) Has(t Tile) bool { return s&(1<<t) != 0 }

// Len returns the number of member tiles
func (s TileSet) Len() int { return bits.OnesCount8(uint8(s)) }

// IsEmpty reports whether no tile remains
func (s TileSet) IsEmpty() bool { return s == 0 }

// Intersect returns tiles present in both sets
func (s TileSet) Intersect(o TileSet) TileSet { return s & o }

// Union returns tiles present in either set
func (s TileSet) Union(o TileSet) TileSet { return s | o }

// Tiles returns members in ascending tile order
func (s TileSet) Tiles() []Tile {
	out := make([]Tile, 0, s.Len())
	m := uint8(s)
	for m != 0 {
		b := bits.TrailingZeros8(m)
		m &^= 1 << b
		out = append(out, Tile(b))
	}
	return out
}

// Nth returns the i-th member in ascending tile order; i must be in [0, Len())
func (s TileSet) Nth(i int) Tile {
	m := uint8(s)
	for m != 0 {
		b := bits.TrailingZeros8(m)
		if i == 0 {
			return Tile(b)
		}
		i--
		m &^= 1 << b
	}
	panic("wfc: TileSet.Nth index out of range")
}

func (s TileSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, t := range s.Tiles() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
