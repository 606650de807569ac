// Package line builds straight dislocation lines inside a periodic cell. An
// "infinite" line is marched along its direction until it meets a periodic
// image of its own starting point; the closed polyline is then discretized
// into nodes and segments. The same closure search backs the trial mode used
// by the character-angle calibration.
package line

import (
	"log"
	"math"

	"github.com/kpotier/dislgen/pkg/cell"
	"github.com/kpotier/dislgen/pkg/network"
)

const (
	// maxSteps bounds the closure march so that directions that never meet a
	// periodic image terminate.
	maxSteps = 1000

	// stepFrac scales the shortest cell dimension into a discretization step.
	stepFrac = 0.15

	// orthoTol is the |b.n| threshold above which a slip system is reported
	// as non-orthogonal.
	orthoTol = 1e-5
)

// Params describes the dislocation line to build.
type Params struct {
	Burg   cell.Vec    // Burgers vector
	Plane  cell.Vec    // habit plane normal (normalized internally)
	Theta  float64     // character angle in degrees, used when Dir is nil
	Dir    *cell.Vec   // explicit line direction, overrides Theta
	MaxSeg float64     // maximum discretization length, ignored when <= 0
	Log    *log.Logger // receives geometry warnings, may be nil
}

func (p Params) warnf(format string, args ...interface{}) {
	if p.Log != nil {
		p.Log.Printf(format, args...)
	}
}

// direction resolves the unit line direction: either the explicit Dir, or
// cos(theta)*b + sin(theta)*e with e = plane x b. It also reports the
// orthogonality diagnostic.
func (p Params) direction() cell.Vec {
	plane := p.Plane.Normalize()
	if math.Abs(p.Burg.Dot(plane)) >= orthoTol {
		p.warnf("Warning: Burgers vector and plane normal are not orthogonal")
	}

	if p.Dir != nil {
		return p.Dir.Normalize()
	}
	b := p.Burg.Normalize()
	e := plane.Cross(b).Normalize()
	rad := p.Theta * math.Pi / 180.0
	return b.Scale(math.Cos(rad)).Add(e.Scale(math.Sin(rad)))
}

// step returns the discretization length: stepFrac times the shortest cell
// dimension, clamped by MaxSeg when one is supplied.
func (p Params) step(c cell.Cell) float64 {
	s := stepFrac * c.MinRowNorm()
	if p.MaxSeg > 0 && p.MaxSeg < s {
		s = p.MaxSeg
	}
	return s
}

// closure marches from origin along ldir in increments of step until the
// minimum image of the current point falls back within one step of the
// origin. It returns the periodic image of the origin next to the final
// point, the number of steps taken, and whether closure was found within
// maxSteps.
func closure(c cell.Cell, origin, ldir cell.Vec, step float64) (cell.Vec, int, bool) {
	p := origin
	originpbc := origin
	meet := false
	n := 0
	for !meet && n < maxSteps {
		p = p.Add(ldir.Scale(step))
		pp := c.ClosestImage(origin, p)
		if n > 0 && pp.Sub(origin).Norm() < step {
			originpbc = c.ClosestImage(p, origin)
			meet = true
		}
		n++
	}
	if n == maxSteps {
		return originpbc, n, false
	}
	return originpbc, n, true
}

// TrialLength returns the periodic closure length of the line described by p
// starting at origin, or -1 when the line does not close within the step
// bound. No nodes or segments are created.
func TrialLength(c cell.Cell, p Params, origin cell.Vec) float64 {
	ldir := p.direction()
	originpbc, _, ok := closure(c, origin, ldir, p.step(c))
	if !ok {
		return -1.0
	}
	return originpbc.Sub(origin).Norm()
}

// InsertInfiniteLine appends a periodically closed dislocation line to the
// node and segment lists and returns them. The polyline is a cycle: the last
// segment wraps back to the first node, and every segment carries the
// normalized plane normal. When the closure search exceeds its step bound a
// warning is logged and the lists are returned unchanged.
func InsertInfiniteLine(c cell.Cell, nodes []network.Node, segs []network.Seg,
	p Params, origin cell.Vec) ([]network.Node, []network.Seg) {
	ldir := p.direction()
	originpbc, numnodes, ok := closure(c, origin, ldir, p.step(c))
	if !ok {
		p.warnf("Warning: infinite line is too long, aborting")
		return nodes, segs
	}

	istart := len(nodes)
	plane := p.Plane.Normalize()
	span := originpbc.Sub(origin)
	for i := 0; i < numnodes; i++ {
		pos := origin.Add(span.Scale(float64(i) / float64(numnodes)))
		nodes = append(nodes, network.Node{Pos: pos, Constraint: network.Unconstrained})
	}
	for i := 0; i < numnodes; i++ {
		segs = append(segs, network.Seg{
			N1:    istart + i,
			N2:    istart + (i+1)%numnodes,
			Burg:  p.Burg,
			Plane: plane,
		})
	}
	return nodes, segs
}

// InsertFrankReadSrc appends a finite Frank-Read source of the given length
// centered at center: numnodes evenly spaced nodes with pinned endpoints,
// joined by numnodes-1 open segments. numnodes defaults to 10 when < 2.
func InsertFrankReadSrc(c cell.Cell, nodes []network.Node, segs []network.Seg,
	p Params, length float64, center cell.Vec, numnodes int) ([]network.Node, []network.Seg) {
	if numnodes < 2 {
		numnodes = 10
	}
	ldir := p.direction()

	istart := len(nodes)
	plane := p.Plane.Normalize()
	start := center.Sub(ldir.Scale(0.5 * length))
	for i := 0; i < numnodes; i++ {
		pos := start.Add(ldir.Scale(float64(i) * length / float64(numnodes-1)))
		constraint := network.Unconstrained
		if i == 0 || i == numnodes-1 {
			constraint = network.Pinned
		}
		nodes = append(nodes, network.Node{Pos: pos, Constraint: constraint})
	}
	for i := 0; i < numnodes-1; i++ {
		segs = append(segs, network.Seg{
			N1:    istart + i,
			N2:    istart + i + 1,
			Burg:  p.Burg,
			Plane: plane,
		})
	}
	return nodes, segs
}
