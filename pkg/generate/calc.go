package generate

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/kpotier/dislgen/pkg/network"
	"github.com/kpotier/dislgen/pkg/util"
	"github.com/kpotier/dislgen/pkg/vtk"

	"github.com/pelletier/go-toml"
)

// Type is the type of calculation.
var Type = "generate"

// Generate is a structure containing the parameters that can be parsed from
// a TOML configuration file. This structure can be instanced through the New
// method. Lbox and NumLines must be greater than zero.
type Generate struct {
	FileOut     string `toml:"generate.file_out"`
	FileOutData string `toml:"generate.file_out_data"`
	FileOutVTK  string `toml:"generate.file_out_vtk"`

	Crystal  string    `toml:"generate.crystal"`
	Lbox     float64   `toml:"generate.lbox"`
	NumLines int       `toml:"generate.num_lines"`
	Theta    []float64 `toml:"generate.theta"`
	MaxSeg   float64   `toml:"generate.maxseg"`
	Seed     int64     `toml:"generate.seed"`

	// Burgmag is the Burgers vector magnitude used by the density summary.
	Burgmag float64 `toml:"generate.burgmag"`

	log *log.Logger
}

// New returns an instance of the Generate structure. It reads and parses
// the configuration file given in argument. The file must be a TOML file.
func New(path string) (*Generate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var g Generate
	dec := toml.NewDecoder(f)
	err = dec.Decode(&g)
	if err != nil {
		return nil, err
	}

	if g.FileOut == "" {
		return nil, errors.New("file_out must be set")
	}
	if g.Lbox <= 0 {
		return nil, errors.New("lbox must be greater than 0")
	}
	if g.NumLines <= 0 {
		return nil, errors.New("num_lines must be greater than 0")
	}
	if g.Burgmag <= 0 {
		g.Burgmag = 1.0
	}

	return &g, nil
}

// SetLog replaces the logger that receives the geometry warnings and per-line
// reports. The default logger writes to the standard output.
func (g *Generate) SetLog(l *log.Logger) {
	g.log = l
}

// Start performs the calculation. It is a thread blocking method. This
// calculation only uses one thread.
func (g *Generate) Start() error {
	if g.log == nil {
		g.log = log.New(os.Stdout, "", log.LstdFlags)
	}

	net, err := LineConfig(g.Crystal, g.Lbox, g.NumLines, Options{
		Theta:  g.Theta,
		MaxSeg: g.MaxSeg,
		Seed:   g.Seed,
		Log:    g.log,
	})
	if err != nil {
		return fmt.Errorf("LineConfig: %w", err)
	}

	if err := g.summary(net); err != nil {
		return fmt.Errorf("summary: %w", err)
	}

	if g.FileOutData != "" {
		f, err := os.Create(g.FileOutData)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := net.WriteData(f); err != nil {
			return fmt.Errorf("WriteData: %w", err)
		}
	}

	if g.FileOutVTK != "" {
		f, err := os.Create(g.FileOutVTK)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := vtk.Write(f, net, nil, true); err != nil {
			return fmt.Errorf("vtk.Write: %w", err)
		}
	}

	return nil
}

// summary writes the dated parameter header followed by the size, density and
// net charge of the generated network.
func (g *Generate) summary(net *network.Net) error {
	out, err := util.Write(g.FileOut, g)
	if err != nil {
		return err
	}
	defer out.Close()

	lengths, err := net.SegmentLengths()
	if err != nil {
		return err
	}
	var total float64
	for _, l := range lengths {
		total += l
	}
	rho, err := net.Density(g.Burgmag)
	if err != nil {
		return err
	}
	alpha, err := net.Charge()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "segments: %d\n", len(lengths))
	fmt.Fprintf(out, "total length: %g\n", total)
	fmt.Fprintf(out, "density: %g\n", rho)
	fmt.Fprintln(out, "charge:")
	for j := 0; j < 3; j++ {
		fmt.Fprintf(out, "%g %g %g\n", alpha[j][0], alpha[j][1], alpha[j][2])
	}
	return nil
}
