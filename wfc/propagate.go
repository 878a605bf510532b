package wfc

// Propagate tightens neighbor domains breadth-first, starting at origin
// Returns true on contradiction; the grid is then invalid and must be reset
//
// Each popped cell constrains its uncollapsed neighbors by the union of what its own
// domain allows; a neighbor that loses tiles is queued to constrain its own neighbors.
// This is an outward pass, not full arc-consistency: a cell is never re-checked
// against a neighbor narrowed after it was processed unless that neighbor is queued.
func Propagate(g *Grid, m *Model, origin Point) bool {
	q := make([]Point, 0, 64)
	q = append(q, origin)
	head := 0

	for head < len(q) {
		cur := q[head]
		head++

		domain := g.at(cur).Domain

		for _, dir := range AllDirections() {
			np := cur.Neighbor(dir)
			if !g.InBounds(np.X, np.Y) {
				continue
			}
			n := g.at(np)
			if n.Collapsed {
				continue
			}

			next := n.Domain.Intersect(m.AllowedBy(domain, dir))
			if next == n.Domain {
				continue
			}
			if next.IsEmpty() {
				return true
			}

			n.Domain = next
			n.Entropy = float64(next.Len())
			if next.Len() == 1 {
				n.Entropy = PropagatedSingletonEntropy
			}
			q = append(q, np)
		}
	}
	return false
}
