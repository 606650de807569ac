// Package crystal holds the slip-system tables of the supported crystal
// structures: the 12 <111>{110} systems of BCC and the 12 <110>{111} systems
// of FCC.
package crystal

import (
	"errors"
	"fmt"

	"github.com/kpotier/dislgen/pkg/cell"
)

// ErrUnknown is returned when a crystal structure identifier is not in the
// tables.
var ErrUnknown = errors.New("crystal: unknown crystal type")

// System is a slip system: a Burgers vector and its habit plane normal, both
// unit vectors.
type System struct {
	Burg  cell.Vec
	Plane cell.Vec
}

var bcc = []System{
	{cell.Vec{-1, 1, 1}, cell.Vec{0, -1, 1}},
	{cell.Vec{1, 1, 1}, cell.Vec{0, -1, 1}},
	{cell.Vec{-1, -1, 1}, cell.Vec{0, 1, 1}},
	{cell.Vec{1, -1, 1}, cell.Vec{0, 1, 1}},
	{cell.Vec{-1, 1, 1}, cell.Vec{1, 0, 1}},
	{cell.Vec{1, 1, 1}, cell.Vec{-1, 0, 1}},
	{cell.Vec{-1, -1, 1}, cell.Vec{1, 0, 1}},
	{cell.Vec{1, -1, 1}, cell.Vec{-1, 0, 1}},
	{cell.Vec{-1, 1, 1}, cell.Vec{1, 1, 0}},
	{cell.Vec{1, 1, 1}, cell.Vec{-1, 1, 0}},
	{cell.Vec{-1, -1, 1}, cell.Vec{-1, 1, 0}},
	{cell.Vec{1, -1, 1}, cell.Vec{1, 1, 0}},
}

var fcc = []System{
	{cell.Vec{0, 1, -1}, cell.Vec{1, 1, 1}},
	{cell.Vec{1, 0, -1}, cell.Vec{1, 1, 1}},
	{cell.Vec{1, -1, 0}, cell.Vec{1, 1, 1}},
	{cell.Vec{0, 1, -1}, cell.Vec{-1, 1, 1}},
	{cell.Vec{1, 0, 1}, cell.Vec{-1, 1, 1}},
	{cell.Vec{1, 1, 0}, cell.Vec{-1, 1, 1}},
	{cell.Vec{0, 1, 1}, cell.Vec{1, -1, 1}},
	{cell.Vec{1, 0, -1}, cell.Vec{1, -1, 1}},
	{cell.Vec{1, 1, 0}, cell.Vec{1, -1, 1}},
	{cell.Vec{0, 1, 1}, cell.Vec{1, 1, -1}},
	{cell.Vec{1, 0, 1}, cell.Vec{1, 1, -1}},
	{cell.Vec{1, -1, 0}, cell.Vec{1, 1, -1}},
}

// Systems returns the normalized slip systems of the given crystal structure.
// Accepted identifiers are "BCC", "bcc", "FCC" and "fcc"; anything else
// returns ErrUnknown.
func Systems(name string) ([]System, error) {
	var table []System
	switch name {
	case "BCC", "bcc":
		table = bcc
	case "FCC", "fcc":
		table = fcc
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}

	out := make([]System, len(table))
	for i, s := range table {
		out[i] = System{Burg: s.Burg.Normalize(), Plane: s.Plane.Normalize()}
	}
	return out, nil
}
