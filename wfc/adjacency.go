package wfc

import "fmt"

// Rule states which tiles may sit in Direction of a cell holding Tile
type Rule struct {
	Tile      Tile
	Direction Direction
	Allowed   TileSet
}

// Model is the static compatibility table, indexed [tile][direction]
type Model struct {
	allowed [TileCount][DirectionCount]TileSet
}

// NewModel builds a model from explicit rules
// Pairs not named by any rule allow nothing
func NewModel(rules []Rule) (*Model, error) {
	m := &Model{}
	var seen [TileCount][DirectionCount]bool
	for _, r := range rules {
		if !r.Tile.Valid() || r.Direction >= DirectionCount {
			return nil, fmt.Errorf("%w: %d/%d", ErrUnknownTile, r.Tile, r.Direction)
		}
		if seen[r.Tile][r.Direction] {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateRule, r.Tile, r.Direction)
		}
		seen[r.Tile][r.Direction] = true
		m.allowed[r.Tile][r.Direction] = r.Allowed & FullSet
	}
	return m, nil
}

// TrackModel returns the hand-authored table for track pieces
func TrackModel() *Model {
	m, _ := NewModel([]Rule{
		{Blank, North, NewTileSet(Up, Blank)},
		{Blank, East, NewTileSet(Right, Blank)},
		{Blank, South, NewTileSet(Down, Blank)},
		{Blank, West, NewTileSet(Left, Blank)},

		{Down, North, NewTileSet(Blank, Up)},
		{Down, East, NewTileSet(Down, Left, Up)},
		{Down, South, NewTileSet(Left, Right, Up)},
		{Down, West, NewTileSet(Down, Right, Up)},

		{Left, North, NewTileSet(Down, Left, Right)},
		{Left, East, NewTileSet(Blank, Right)},
		{Left, South, NewTileSet(Left, Right, Up)},
		{Left, West, NewTileSet(Down, Right, Up)},

		{Right, North, NewTileSet(Down, Left, Right)},
		{Right, East, NewTileSet(Down, Left, Up)},
		{Right, South, NewTileSet(Left, Right, Up)},
		{Right, West, NewTileSet(Blank, Left)},

		{Up, North, NewTileSet(Down, Left, Right)},
		{Up, East, NewTileSet(Down, Left, Up)},
		{Up, South, NewTileSet(Blank, Down)},
		{Up, West, NewTileSet(Down, Right, Up)},
	})
	return m
}

// Allowed returns the tiles permitted as the neighbor in dir of a cell holding t
func (m *Model) Allowed(t Tile, dir Direction) TileSet {
	return m.allowed[t][dir]
}

// AllowedBy returns the union of Allowed over every tile in domain
func (m *Model) AllowedBy(domain TileSet, dir Direction) TileSet {
	var out TileSet
	for _, t := range domain.Tiles() {
		out |= m.allowed[t][dir]
	}
	return out
}

// Compatible reports whether b may sit in direction dir of a
func (m *Model) Compatible(a Tile, dir Direction, b Tile) bool {
	return m.allowed[a][dir].Has(b)
}

// Rules returns the table as a rule list in tile, direction order
func (m *Model) Rules() []Rule {
	rules := make([]Rule, 0, TileCount*DirectionCount)
	for _, t := range AllTiles() {
		for _, d := range AllDirections() {
			rules = append(rules, Rule{t, d, m.allowed[t][d]})
		}
	}
	return rules
}

// Validate checks that every permitted pair is permitted from both sides
func (m *Model) Validate() error {
	for _, a := range AllTiles() {
		for _, d := range AllDirections() {
			for _, b := range m.allowed[a][d].Tiles() {
				if !m.allowed[b][d.Opposite()].Has(a) {
					return fmt.Errorf("%w: %s allows %s to the %s, %s does not allow %s to the %s",
						ErrAsymmetricRule, a, b, d, b, a, d.Opposite())
				}
			}
		}
	}
	return nil
}
