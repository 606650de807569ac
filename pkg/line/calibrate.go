package line

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/kpotier/dislgen/pkg/cell"
	"github.com/kpotier/dislgen/pkg/crystal"
)

// ErrNoValidLine is returned when the character-angle calibration cannot find
// an appropriate line to insert: either a slip system has no closing
// candidate, or the best achievable closure length exceeds ten times the
// nominal box size.
var ErrNoValidLine = errors.New("line: cannot find appropriate line to insert")

// NTheta is the number of candidate character angles sampled between 0 and 90
// degrees during calibration.
const NTheta = 19

// CandidateAngles returns the NTheta equally spaced angles from 0 to 90
// degrees.
func CandidateAngles() []float64 {
	thetas := make([]float64, NTheta)
	for t := 0; t < NTheta; t++ {
		thetas[t] = 90.0 / float64(NTheta-1) * float64(t)
	}
	return thetas
}

// LengthTable records, per slip system, the trial closure length achieved at
// each candidate angle (-1 where the line did not close).
func LengthTable(c cell.Cell, systems []crystal.System, maxSeg float64, logger *log.Logger) [][]float64 {
	thetas := CandidateAngles()
	center := c.Center()
	table := make([][]float64, len(systems))
	for isys, sys := range systems {
		table[isys] = make([]float64, NTheta)
		for t := 0; t < NTheta; t++ {
			table[isys][t] = TrialLength(c, Params{
				Burg:   sys.Burg,
				Plane:  sys.Plane,
				Theta:  thetas[t],
				MaxSeg: maxSeg,
				Log:    logger,
			}, center)
		}
	}
	return table
}

// SelectAngles applies the calibration rule to a precomputed length table: per
// system, the minimum valid length is taken; the maximum of those minima over
// all systems becomes the target; each system then picks the angle whose raw
// recorded length is nearest that target. Invalid (negative) entries never
// win. The target length is also checked against the 10*lbox heuristic bound.
func SelectAngles(table [][]float64, thetas []float64, lbox float64) ([]float64, error) {
	maxlength := -1.0
	for isys, row := range table {
		minlength := -1.0
		for _, l := range row {
			if l >= 0 && (minlength < 0 || l < minlength) {
				minlength = l
			}
		}
		if minlength < 0 {
			return nil, fmt.Errorf("%w: slip system %d has no closing angle",
				ErrNoValidLine, isys)
		}
		if minlength > maxlength {
			maxlength = minlength
		}
	}
	if maxlength > 10*lbox {
		return nil, fmt.Errorf("%w: best closure length %g exceeds 10*lbox = %g",
			ErrNoValidLine, maxlength, 10*lbox)
	}

	out := make([]float64, len(table))
	for isys, row := range table {
		best := -1
		bestDiff := math.Inf(1)
		for t, l := range row {
			if l < 0 {
				continue
			}
			if diff := math.Abs(l - maxlength); diff < bestDiff {
				bestDiff = diff
				best = t
			}
		}
		out[isys] = thetas[best]
	}
	return out, nil
}

// CalibrateAngles chooses one character angle per slip system such that the
// periodic closure lengths, and hence the density contributions, are as equal
// as possible across systems. Trials start from the cell center.
func CalibrateAngles(c cell.Cell, systems []crystal.System, maxSeg, lbox float64, logger *log.Logger) ([]float64, error) {
	table := LengthTable(c, systems, maxSeg, logger)
	return SelectAngles(table, CandidateAngles(), lbox)
}
