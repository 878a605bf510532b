package wfc

// Violation is an adjacent pair of placed tiles the model forbids
type Violation struct {
	A, B      Point
	Direction Direction // B lies in Direction of A
	TileA     Tile
	TileB     Tile
}

// Violations checks every horizontally and vertically adjacent pair of out in both directions
func Violations(out [][]Tile, m *Model) []Violation {
	var vs []Violation
	for y := range out {
		for x := range out[y] {
			a := Point{x, y}
			for _, dir := range []Direction{East, South} {
				b := a.Neighbor(dir)
				if b.Y >= len(out) || b.X >= len(out[b.Y]) {
					continue
				}
				ta, tb := out[a.Y][a.X], out[b.Y][b.X]
				if !m.Compatible(ta, dir, tb) || !m.Compatible(tb, dir.Opposite(), ta) {
					vs = append(vs, Violation{A: a, B: b, Direction: dir, TileA: ta, TileB: tb})
				}
			}
		}
	}
	return vs
}
