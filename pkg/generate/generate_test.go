package generate_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kpotier/dislgen/pkg/crystal"
	"github.com/kpotier/dislgen/pkg/generate"
	"github.com/kpotier/dislgen/pkg/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLineConfig_UnknownCrystal fails before any work is done.
func TestLineConfig_UnknownCrystal(t *testing.T) {
	net, err := generate.LineConfig("HCP", 10, 24, generate.Options{Seed: 1})
	assert.ErrorIs(t, err, crystal.ErrUnknown)
	assert.Nil(t, net)
}

// TestLineConfig_ExplicitTheta places 24 FCC lines (two full cycles, so every
// system gets a dipole pair) with a fixed character angle.
func TestLineConfig_ExplicitTheta(t *testing.T) {
	net, err := generate.LineConfig("FCC", 10, 24, generate.Options{
		Theta: []float64{0},
		Seed:  7,
	})
	require.NoError(t, err)
	require.NotEmpty(t, net.Nodes)
	require.NotEmpty(t, net.Segs)
	assert.Equal(t, len(net.Nodes), len(net.Segs)) // every line is a cycle

	// Dipole pairing cancels the net Burgers charge.
	alpha, err := net.Charge()
	require.NoError(t, err)
	for j := 0; j < 3; j++ {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, 0.0, alpha[j][k], 1e-8)
		}
	}

	// Every segment carries a normalized Burgers vector from the FCC table.
	for _, s := range net.Segs {
		assert.InDelta(t, 1.0, s.Burg.Norm(), 1e-12)
		assert.InDelta(t, 1.0, s.Plane.Norm(), 1e-12)
		assert.Less(t, math.Abs(s.Burg.Dot(s.Plane)), 1e-12)
	}
}

// TestLineConfig_Calibrated runs the full character-angle calibration on the
// BCC table.
func TestLineConfig_Calibrated(t *testing.T) {
	net, err := generate.LineConfig("BCC", 10, 24, generate.Options{Seed: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, net.Segs)

	rho, err := net.Density(1.0)
	require.NoError(t, err)
	assert.Greater(t, rho, 0.0)
}

// TestLineConfig_Reproducible: the same seed yields the same network, a
// different seed a different one.
func TestLineConfig_Reproducible(t *testing.T) {
	opts := generate.Options{Theta: []float64{0, 45, 90}, Seed: 11}
	a, err := generate.LineConfig("FCC", 10, 6, opts)
	require.NoError(t, err)
	b, err := generate.LineConfig("FCC", 10, 6, opts)
	require.NoError(t, err)
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Segs, b.Segs)

	opts.Seed = 12
	c, err := generate.LineConfig("FCC", 10, 6, opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Nodes, c.Nodes)
}

// TestCalculation drives the generate calculation from a TOML file and
// round-trips the emitted data file.
func TestCalculation(t *testing.T) {
	dir := t.TempDir()
	sumPath := filepath.Join(dir, "out.txt")
	dataPath := filepath.Join(dir, "net.dat")
	vtkPath := filepath.Join(dir, "net.vtk")
	cfgPath := filepath.Join(dir, "generate.toml")

	cfg := `[generate]
file_out = "` + sumPath + `"
file_out_data = "` + dataPath + `"
file_out_vtk = "` + vtkPath + `"
crystal = "FCC"
lbox = 10.0
num_lines = 24
theta = [0.0]
seed = 5
burgmag = 0.25
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	g, err := generate.New(cfgPath)
	require.NoError(t, err)
	require.NoError(t, g.Start())

	sum, err := os.ReadFile(sumPath)
	require.NoError(t, err)
	assert.Contains(t, string(sum), "density:")
	assert.Contains(t, string(sum), "charge:")

	f, err := os.Open(dataPath)
	require.NoError(t, err)
	defer f.Close()
	net, err := network.ReadData(f)
	require.NoError(t, err)
	assert.NotEmpty(t, net.Segs)

	vtkOut, err := os.ReadFile(vtkPath)
	require.NoError(t, err)
	assert.Contains(t, string(vtkOut), "# vtk DataFile Version 3.0")
}

// TestNew_Validation rejects broken configurations.
func TestNew_Validation(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		cfg  string
	}{
		{"NoFileOut", "[generate]\ncrystal = \"BCC\"\nlbox = 10.0\nnum_lines = 2\n"},
		{"BadLbox", "[generate]\nfile_out = \"o\"\ncrystal = \"BCC\"\nlbox = 0.0\nnum_lines = 2\n"},
		{"BadNumLines", "[generate]\nfile_out = \"o\"\ncrystal = \"BCC\"\nlbox = 10.0\nnum_lines = 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(dir, tc.name+".toml")
			require.NoError(t, os.WriteFile(p, []byte(tc.cfg), 0o644))
			_, err := generate.New(p)
			assert.Error(t, err)
		})
	}
}
