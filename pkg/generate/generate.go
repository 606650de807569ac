// Package generate builds configurations made of straight, infinite periodic
// dislocation lines. Lines are placed by cycling through the slip systems of
// the crystal, with the in-plane sign alternating every full cycle so that
// consecutive cycles form dipole pairs; a balanced (neutral Burgers charge)
// configuration therefore needs a number of lines that is a multiple of twice
// the number of slip systems.
package generate

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/kpotier/dislgen/pkg/cell"
	"github.com/kpotier/dislgen/pkg/crystal"
	"github.com/kpotier/dislgen/pkg/line"
	"github.com/kpotier/dislgen/pkg/network"
)

// Options are the optional knobs of LineConfig.
type Options struct {
	// Theta lists admissible character angles in degrees; each line draws one
	// at random. When empty, the angles are calibrated so that the
	// dislocation density is roughly equal between all slip systems.
	Theta []float64

	// MaxSeg caps the discretization length of the lines, ignored when <= 0.
	MaxSeg float64

	// Seed makes the generation reproducible when > 0; otherwise the
	// generator is seeded from the clock.
	Seed int64

	// Log receives geometry warnings and per-line reports, may be nil.
	Log *log.Logger
}

// LineConfig generates num lines of the given crystal structure inside a
// fully periodic cubic cell of side lbox and returns the resulting network.
func LineConfig(crystalName string, lbox float64, num int, opts Options) (*network.Net, error) {
	systems, err := crystal.Systems(crystalName)
	if err != nil {
		return nil, err
	}
	nsys := len(systems)
	c := cell.NewCubic(lbox)

	// One row of candidate angles per slip system: either the calibrated
	// single angle, or the caller-provided list shared by every system.
	thetaSys := make([][]float64, nsys)
	if len(opts.Theta) == 0 {
		angles, err := line.CalibrateAngles(c, systems, opts.MaxSeg, lbox, opts.Log)
		if err != nil {
			return nil, err
		}
		for isys := range systems {
			thetaSys[isys] = []float64{angles[isys]}
		}
	} else {
		for isys := range systems {
			thetaSys[isys] = opts.Theta
		}
	}

	seed := opts.Seed
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Draw every start position first, then every angle index, so that a
	// given seed always yields the same configuration.
	pos := make([]cell.Vec, num)
	for i := range pos {
		pos[i] = c.Cartesian(cell.Vec{rng.Float64(), rng.Float64(), rng.Float64()})
	}
	ithe := make([]int, num)
	for i := range ithe {
		ithe[i] = rng.Intn(len(thetaSys[0]))
	}

	var nodes []network.Node
	var segs []network.Seg
	for i := 0; i < num; i++ {
		isys := i % nsys
		sys := systems[isys]

		// Alternate the line sign every nsys lines to create dipoles; the
		// second line of a pair reuses the angle drawn for the first.
		idip := (i / nsys) % 2
		lsign := float64(1 - 2*idip)

		edir := sys.Plane.Cross(sys.Burg).Normalize()
		theta := thetaSys[isys][ithe[i-idip*nsys]]
		rad := theta * math.Pi / 180.0
		ldir := sys.Burg.Scale(math.Cos(rad)).Add(edir.Scale(math.Sin(rad))).Scale(lsign)

		nodes, segs = line.InsertInfiniteLine(c, nodes, segs, line.Params{
			Burg:   sys.Burg,
			Plane:  sys.Plane,
			Dir:    &ldir,
			MaxSeg: opts.MaxSeg,
			Log:    opts.Log,
		}, pos[i])

		if opts.Log != nil {
			opts.Log.Printf(" insert dislocation: b = %.3f %.3f %.3f, n = %.3f %.3f %.3f, theta = %.1f deg",
				sys.Burg[0], sys.Burg[1], sys.Burg[2],
				sys.Plane[0], sys.Plane[1], sys.Plane[2], theta)
		}
	}

	return network.New(c, nodes, segs), nil
}
