// Package clip splits minimum-image-reduced segments at the facets of the
// periodic cell. A segment leaving the box is peeled at each facet crossing:
// the in-box part is emitted, the walk teleports through periodicity to the
// opposite face and continues with the remainder. Every emitted piece keeps
// the index of the segment it derives from, so per-segment properties can be
// replicated onto the pieces.
package clip

import (
	"github.com/kpotier/dislgen/pkg/cell"
	"github.com/kpotier/dislgen/pkg/network"
)

const eps = 1e-10

// Segment is an in-box Cartesian sub-segment tagged with the index of the
// segment it was clipped from.
type Segment struct {
	R1, R2 cell.Vec
	Seg    int
}

// outside reports whether any fractional coordinate of p lies outside
// [-eps, 1+eps].
func outside(c cell.Cell, p cell.Vec) bool {
	s := c.Fractional(p)
	for k := 0; k < 3; k++ {
		if s[k] < -eps || s[k] > 1.0+eps {
			return true
		}
	}
	return false
}

// facetIntersection finds the first facet crossed by the segment (r1, r2) in
// fractional space. It returns the Cartesian crossing point and the facet
// index (axis + 3 for the s=1 face), or facet -1 when no forward crossing
// with t < 1 exists. Candidates with t < eps are behind (or at) the start and
// are discarded.
func facetIntersection(c cell.Cell, r1, r2 cell.Vec) (cell.Vec, int) {
	s1 := c.Fractional(r1)
	s2 := c.Fractional(r2)
	t := s2.Sub(s1)

	var cand [6]float64
	for k := 0; k < 3; k++ {
		cand[k] = -s1[k] / (t[k] + eps)
		cand[k+3] = -(s1[k] - 1.0) / (t[k] + eps)
	}
	facet := -1
	best := 1.0
	for f := 0; f < 6; f++ {
		v := cand[f]
		if v < eps {
			v = 1.0
		}
		if v < best {
			best = v
			facet = f
		}
	}
	if facet < 0 {
		return r2, -1
	}
	return c.Cartesian(s1.Add(t.Scale(best))), facet
}

// Wrap reduces every segment of the network to its minimum image and clips it
// into in-box pieces. It fails with network.ErrNodeIndex when a segment
// references a node out of range.
func Wrap(n *network.Net) ([]Segment, error) {
	c := n.Cell
	h := c.H()
	center := c.Center()

	var out []Segment
	for i, s := range n.Segs {
		if s.N1 < 0 || s.N1 >= len(n.Nodes) || s.N2 < 0 || s.N2 >= len(n.Nodes) {
			return nil, network.ErrNodeIndex
		}
		r1 := c.ClosestImage(center, n.Nodes[s.N1].Pos)
		r2 := c.ClosestImage(r1, n.Nodes[s.N2].Pos)
		for outside(c, r2) {
			pos, facet := facetIntersection(c, r1, r2)
			if facet < 0 {
				break
			}
			out = append(out, Segment{R1: r1, R2: pos, Seg: i})
			// Teleport through the crossed facet: +h row for the s=0 face,
			// -h row for the s=1 face, backed off by 2*eps to stay inside.
			sign := 1.0
			if facet >= 3 {
				sign = -1.0
			}
			r1 = pos.Add(h.Row(facet % 3).Scale(sign * (1.0 - 2.0*eps)))
			r2 = c.ClosestImage(r1, n.Nodes[s.N2].Pos)
		}
		out = append(out, Segment{R1: r1, R2: r2, Seg: i})
	}
	return out, nil
}
