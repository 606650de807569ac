// Package cell represents the parallelepiped simulation domain and its
// periodicity. Points are mapped between Cartesian and fractional coordinates
// with the row-vector convention: the rows of the basis matrix are the lattice
// vectors, and a fractional point s maps to origin + s*h.
package cell

import (
	"errors"
	"math"
)

// ErrSingularCell is returned when the basis matrix has a zero determinant.
var ErrSingularCell = errors.New("cell: singular basis matrix")

// Cell is an immutable periodic simulation cell. It must be built through New
// or NewCubic so that the inverse basis is available.
type Cell struct {
	h        Mat3
	hinv     Mat3
	origin   Vec
	periodic [3]bool
}

// New returns a cell with the given basis (lattice vectors as rows), origin
// and per-axis periodicity flags. It returns ErrSingularCell when h cannot be
// inverted.
func New(h Mat3, origin Vec, periodic [3]bool) (Cell, error) {
	hinv, ok := h.Inv()
	if !ok {
		return Cell{}, ErrSingularCell
	}
	return Cell{h: h, hinv: hinv, origin: origin, periodic: periodic}, nil
}

// NewCubic returns a fully periodic cubic cell of side l with its origin at
// zero.
func NewCubic(l float64) Cell {
	c, _ := New(Mat3{{l, 0, 0}, {0, l, 0}, {0, 0, l}}, Vec{}, [3]bool{true, true, true})
	return c
}

// H returns the basis matrix.
func (c Cell) H() Mat3 { return c.h }

// Origin returns the cell origin.
func (c Cell) Origin() Vec { return c.origin }

// Periodic returns the per-axis periodicity flags.
func (c Cell) Periodic() [3]bool { return c.periodic }

// Center returns origin + 0.5*(h0+h1+h2).
func (c Cell) Center() Vec {
	return c.origin.Add(c.h.Row(0).Add(c.h.Row(1)).Add(c.h.Row(2)).Scale(0.5))
}

// Volume returns the absolute determinant of the basis.
func (c Cell) Volume() float64 {
	return math.Abs(c.h.Det())
}

// MinRowNorm returns the norm of the shortest lattice vector.
func (c Cell) MinRowNorm() float64 {
	min := c.h.Row(0).Norm()
	for i := 1; i < 3; i++ {
		if n := c.h.Row(i).Norm(); n < min {
			min = n
		}
	}
	return min
}

// Fractional maps a Cartesian point into fractional coordinates,
// (p-origin)*h^-1.
func (c Cell) Fractional(p Vec) Vec {
	return c.hinv.MulVecRow(p.Sub(c.origin))
}

// Cartesian maps a fractional point back to Cartesian, origin + s*h.
func (c Cell) Cartesian(s Vec) Vec {
	return c.origin.Add(c.h.MulVecRow(s))
}

// ClosestImage returns the periodic image of p that is nearest to ref. The
// fractional offset from ref is reduced into [-0.5, 0.5) on each periodic
// axis; non-periodic axes are left untouched.
func (c Cell) ClosestImage(ref, p Vec) Vec {
	s := c.hinv.MulVecRow(p.Sub(ref))
	for k := 0; k < 3; k++ {
		if c.periodic[k] {
			s[k] -= math.Floor(s[k] + 0.5)
		}
	}
	return ref.Add(c.h.MulVecRow(s))
}
