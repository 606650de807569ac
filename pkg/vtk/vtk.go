// Package vtk writes a dislocation network as a legacy ASCII VTK
// unstructured grid: the cell box as one hexahedron plus one line cell per
// segment, with the Burgers vectors, plane normals and optional per-segment
// scalar properties attached as cell data. When periodic wrapping is enabled
// the segments are clipped at the cell facets first and the properties are
// replicated onto the clipped pieces.
package vtk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/kpotier/dislgen/pkg/cell"
	"github.com/kpotier/dislgen/pkg/clip"
	"github.com/kpotier/dislgen/pkg/network"
)

// ErrPropLength is returned when a property slice does not have one value per
// segment of the network.
var ErrPropLength = errors.New("vtk: property length must equal the number of segments")

// Write writes the network to w. props maps property names to per-segment
// scalar values; pbcWrap selects facet clipping.
func Write(w io.Writer, n *network.Net, props map[string][]float64, pbcWrap bool) error {
	for k, v := range props {
		if len(v) != len(n.Segs) {
			return fmt.Errorf("%w: %s has %d values for %d segments",
				ErrPropLength, k, len(v), len(n.Segs))
		}
	}

	var pieces []clip.Segment
	if pbcWrap {
		var err error
		pieces, err = clip.Wrap(n)
		if err != nil {
			return err
		}
	} else {
		center := n.Cell.Center()
		for i, s := range n.Segs {
			if s.N1 < 0 || s.N1 >= len(n.Nodes) || s.N2 < 0 || s.N2 >= len(n.Nodes) {
				return network.ErrNodeIndex
			}
			r1 := n.Cell.ClosestImage(center, n.Nodes[s.N1].Pos)
			r2 := n.Cell.ClosestImage(r1, n.Nodes[s.N2].Pos)
			pieces = append(pieces, clip.Segment{R1: r1, R2: r2, Seg: i})
		}
	}
	nsegs := len(pieces)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# vtk DataFile Version 3.0")
	fmt.Fprintln(bw, "Configuration exported from dislgen")
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET UNSTRUCTURED_GRID")

	// Box corners, then the two endpoints of every piece.
	h := n.Cell.H()
	o := n.Cell.Origin()
	corners := []cell.Vec{
		o,
		o.Add(h.Row(0)),
		o.Add(h.Row(1)),
		o.Add(h.Row(2)),
		o.Add(h.Row(0)).Add(h.Row(1)),
		o.Add(h.Row(0)).Add(h.Row(2)),
		o.Add(h.Row(1)).Add(h.Row(2)),
		o.Add(h.Row(0)).Add(h.Row(1)).Add(h.Row(2)),
	}
	fmt.Fprintf(bw, "POINTS %d FLOAT\n", len(corners)+2*nsegs)
	for _, p := range corners {
		fmt.Fprintf(bw, "%f %f %f\n", p[0], p[1], p[2])
	}
	for _, p := range pieces {
		fmt.Fprintf(bw, "%f %f %f\n", p.R1[0], p.R1[1], p.R1[2])
		fmt.Fprintf(bw, "%f %f %f\n", p.R2[0], p.R2[1], p.R2[2])
	}

	fmt.Fprintf(bw, "CELLS %d %d\n", 1+nsegs, 9+3*nsegs)
	fmt.Fprintln(bw, "8 0 1 4 2 3 5 7 6")
	for i := 0; i < nsegs; i++ {
		fmt.Fprintf(bw, "2 %d %d\n", 8+2*i, 8+2*i+1)
	}

	fmt.Fprintf(bw, "CELL_TYPES %d\n", 1+nsegs)
	fmt.Fprintln(bw, "12")
	for i := 0; i < nsegs; i++ {
		fmt.Fprintln(bw, "4")
	}

	// Cell data: a zero row stands in for the box cell.
	fmt.Fprintf(bw, "CELL_DATA %d\n", 1+nsegs)

	fmt.Fprintln(bw, "VECTORS Burgers FLOAT")
	fmt.Fprintf(bw, "%f %f %f\n", 0.0, 0.0, 0.0)
	for _, p := range pieces {
		b := n.Segs[p.Seg].Burg
		fmt.Fprintf(bw, "%f %f %f\n", b[0], b[1], b[2])
	}

	fmt.Fprintln(bw, "VECTORS Planes FLOAT")
	fmt.Fprintf(bw, "%f %f %f\n", 0.0, 0.0, 0.0)
	for _, p := range pieces {
		pl := n.Segs[p.Seg].Plane
		fmt.Fprintf(bw, "%f %f %f\n", pl[0], pl[1], pl[2])
	}

	names := make([]string, 0, len(props))
	for k := range props {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(bw, "SCALARS %s FLOAT 1\n", k)
		fmt.Fprintln(bw, "LOOKUP_TABLE default")
		fmt.Fprintf(bw, "%f\n", 0.0)
		for _, p := range pieces {
			fmt.Fprintf(bw, "%f\n", props[k][p.Seg])
		}
	}

	return bw.Flush()
}
