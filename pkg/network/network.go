// Package network stores a dislocation network: a list of nodes and a list of
// segments inside a periodic cell. The generation routines only append to the
// node and segment slices; the container wraps them once generation is done
// and offers a few linear-algebra reductions (segment lengths, density, net
// Burgers charge) over minimum-image-reduced segment vectors.
package network

import (
	"errors"
	"fmt"

	"github.com/kpotier/dislgen/pkg/cell"
	"github.com/kpotier/dislgen/pkg/util"
)

// ErrNodeIndex is returned when a segment references a node index out of
// range. This is a caller bug, not a recoverable condition.
var ErrNodeIndex = errors.New("network: segment node index out of range")

// Node constraint tags.
const (
	Unconstrained = 0
	Pinned        = 7
)

// Node is a position and a constraint tag.
type Node struct {
	Pos        cell.Vec
	Constraint int
}

// Seg joins two nodes (by index into the node list) and carries the Burgers
// vector and the habit plane normal of the dislocation.
type Seg struct {
	N1, N2 int
	Burg   cell.Vec
	Plane  cell.Vec
}

// Net is a dislocation network. The node and segment slices are owned by the
// caller that built them; Net only reads them.
type Net struct {
	Cell  cell.Cell
	Nodes []Node
	Segs  []Seg
}

// New wraps a cell and the node/segment lists into a network.
func New(c cell.Cell, nodes []Node, segs []Seg) *Net {
	return &Net{Cell: c, Nodes: nodes, Segs: segs}
}

// endpoints returns the minimum-image-reduced endpoints of segment i: r1 is
// the image of the first node nearest to the cell center, r2 the image of the
// second node nearest to r1.
func (n *Net) endpoints(i int) (r1, r2 cell.Vec, err error) {
	s := n.Segs[i]
	if s.N1 < 0 || s.N1 >= len(n.Nodes) || s.N2 < 0 || s.N2 >= len(n.Nodes) {
		return r1, r2, fmt.Errorf("%w: segment %d (%d, %d) with %d nodes",
			ErrNodeIndex, i, s.N1, s.N2, len(n.Nodes))
	}
	r1 = n.Cell.ClosestImage(n.Cell.Center(), n.Nodes[s.N1].Pos)
	r2 = n.Cell.ClosestImage(r1, n.Nodes[s.N2].Pos)
	return r1, r2, nil
}

// SegmentLengths returns the minimum-image length of every segment.
func (n *Net) SegmentLengths() ([]float64, error) {
	lengths := make([]float64, len(n.Segs))
	for i := range n.Segs {
		r1, r2, err := n.endpoints(i)
		if err != nil {
			return nil, err
		}
		lengths[i] = r2.Sub(r1).Norm()
	}
	return lengths, nil
}

// Density returns the dislocation density of the network, total length over
// volume scaled by the squared Burgers vector magnitude.
func (n *Net) Density(burgmag float64) (float64, error) {
	lengths, err := n.SegmentLengths()
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, l := range lengths {
		sum += l
	}
	return sum / n.Cell.Volume() / util.Pow(burgmag, 2), nil
}

// Charge returns the net Nye tensor of the network,
// alpha[j][k] = sum_i b_i[j]*t_i[k] with t the minimum-image segment vector.
func (n *Net) Charge() (cell.Mat3, error) {
	var alpha cell.Mat3
	for i := range n.Segs {
		r1, r2, err := n.endpoints(i)
		if err != nil {
			return alpha, err
		}
		t := r2.Sub(r1)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				alpha[j][k] += n.Segs[i].Burg[j] * t[k]
			}
		}
	}
	return alpha, nil
}
