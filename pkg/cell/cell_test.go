package cell_test

import (
	"math"
	"testing"

	"github.com/kpotier/dislgen/pkg/cell"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Singular verifies that a basis with a zero determinant is rejected.
func TestNew_Singular(t *testing.T) {
	h := cell.Mat3{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}}
	_, err := cell.New(h, cell.Vec{}, [3]bool{true, true, true})
	assert.ErrorIs(t, err, cell.ErrSingularCell)
}

// TestCenterVolume checks Center and Volume on a cube and on a sheared cell.
func TestCenterVolume(t *testing.T) {
	c := cell.NewCubic(10)
	assert.Equal(t, cell.Vec{5, 5, 5}, c.Center())
	assert.InDelta(t, 1000.0, c.Volume(), 1e-12)

	h := cell.Mat3{{4, 0, 0}, {1, 3, 0}, {0, 0, 2}}
	sheared, err := cell.New(h, cell.Vec{1, 1, 1}, [3]bool{true, true, true})
	require.NoError(t, err)
	assert.InDelta(t, 24.0, sheared.Volume(), 1e-12)
	assert.InDelta(t, 1+2.5, sheared.Center()[0], 1e-12)
}

// TestClosestImage_SelfIdentity: the nearest image of a point to itself is the
// point itself.
func TestClosestImage_SelfIdentity(t *testing.T) {
	c := cell.NewCubic(7)
	pts := []cell.Vec{{0, 0, 0}, {3.5, 3.5, 3.5}, {-1, 12, 6.9}}
	for _, p := range pts {
		got := c.ClosestImage(p, p)
		for k := 0; k < 3; k++ {
			assert.InDelta(t, p[k], got[k], 1e-12)
		}
	}
}

// TestClosestImage_Minimum: the reduced image is at least as close to the
// reference as every lattice translate of the input in a small neighborhood.
func TestClosestImage_Minimum(t *testing.T) {
	h := cell.Mat3{{5, 0, 0}, {1, 4, 0}, {0, 1, 6}}
	c, err := cell.New(h, cell.Vec{}, [3]bool{true, true, true})
	require.NoError(t, err)

	ref := cell.Vec{0.3, 1.2, -0.7}
	p := cell.Vec{7.9, -3.4, 11.2}
	img := c.ClosestImage(ref, p)
	best := img.Sub(ref).Norm()

	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			for k := -2; k <= 2; k++ {
				tr := p.Add(h.Row(0).Scale(float64(i))).
					Add(h.Row(1).Scale(float64(j))).
					Add(h.Row(2).Scale(float64(k)))
				assert.LessOrEqual(t, best, tr.Sub(ref).Norm()+1e-12)
			}
		}
	}
}

// TestClosestImage_HalfCellTie: an offset of exactly half a cell reduces to
// the -0.5 side, both for positive and negative offsets.
func TestClosestImage_HalfCellTie(t *testing.T) {
	c := cell.NewCubic(10)
	img := c.ClosestImage(cell.Vec{}, cell.Vec{5, 0, 0})
	assert.Equal(t, cell.Vec{-5, 0, 0}, img)

	img = c.ClosestImage(cell.Vec{}, cell.Vec{-5, 0, 0})
	assert.Equal(t, cell.Vec{-5, 0, 0}, img)
}

// TestClosestImage_NonPeriodicAxis: axes flagged non-periodic are never
// wrapped.
func TestClosestImage_NonPeriodicAxis(t *testing.T) {
	c, err := cell.New(cell.Mat3{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}},
		cell.Vec{}, [3]bool{true, true, false})
	require.NoError(t, err)

	ref := cell.Vec{0, 0, 0}
	p := cell.Vec{3.9, 0, 3.9}
	img := c.ClosestImage(ref, p)
	assert.InDelta(t, -0.1, img[0], 1e-12)
	assert.InDelta(t, 3.9, img[2], 1e-12)
}

// TestFractionalRoundTrip checks Cartesian(Fractional(p)) == p.
func TestFractionalRoundTrip(t *testing.T) {
	h := cell.Mat3{{3, 1, 0}, {0, 2, 1}, {1, 0, 5}}
	c, err := cell.New(h, cell.Vec{-1, 2, 0.5}, [3]bool{true, true, true})
	require.NoError(t, err)

	p := cell.Vec{1.7, -2.3, 4.1}
	got := c.Cartesian(c.Fractional(p))
	for k := 0; k < 3; k++ {
		assert.InDelta(t, p[k], got[k], 1e-12)
	}
}

// TestVecHelpers covers the Vec primitives used everywhere else.
func TestVecHelpers(t *testing.T) {
	a := cell.Vec{1, 2, 2}
	assert.InDelta(t, 3.0, a.Norm(), 1e-12)
	assert.InDelta(t, 1.0, a.Normalize().Norm(), 1e-12)
	assert.Equal(t, cell.Vec{}, cell.Vec{}.Normalize())

	x := cell.Vec{1, 0, 0}
	y := cell.Vec{0, 1, 0}
	assert.Equal(t, cell.Vec{0, 0, 1}, x.Cross(y))
	assert.InDelta(t, 0.0, x.Dot(y), 1e-12)

	assert.Equal(t, cell.Vec{2, 4, 4}, a.Scale(2))
	assert.Equal(t, cell.Vec{0, 2, 2}, a.Sub(x))
}

// TestMinRowNorm picks the shortest lattice vector.
func TestMinRowNorm(t *testing.T) {
	h := cell.Mat3{{10, 0, 0}, {0, 3, 0}, {0, 0, 7}}
	c, err := cell.New(h, cell.Vec{}, [3]bool{true, true, true})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, c.MinRowNorm(), 1e-12)
}

// TestMat3Inv multiplies a matrix by its inverse through MulVecRow.
func TestMat3Inv(t *testing.T) {
	m := cell.Mat3{{2, 1, 0}, {0, 3, 1}, {1, 0, 4}}
	inv, ok := m.Inv()
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		e := cell.Vec{}
		e[i] = 1
		got := inv.MulVecRow(m.MulVecRow(e))
		for k := 0; k < 3; k++ {
			assert.InDelta(t, e[k], got[k], 1e-12)
		}
	}
	assert.False(t, math.IsNaN(m.Det()))
}
