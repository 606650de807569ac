package vtk

import (
	"fmt"
	"os"

	"github.com/kpotier/dislgen/pkg/network"

	"github.com/pelletier/go-toml"
)

// Type is the type of calculation.
var Type = "vtk"

// VTK is a structure containing the parameters that can be parsed from a TOML
// configuration file. This structure can be instanced through the New method.
// It reads a network in the native data format and writes it as a VTK file.
type VTK struct {
	FileIn  string `toml:"vtk.file_in"`
	FileOut string `toml:"vtk.file_out"`

	// NoWrap disables facet clipping; segments are written as plain
	// minimum-image pairs.
	NoWrap bool `toml:"vtk.no_wrap"`

	// LengthProp attaches the unclipped segment lengths as a "length" scalar
	// property, replicated onto the clipped pieces.
	LengthProp bool `toml:"vtk.length_prop"`
}

// New returns an instance of the VTK structure. It reads and parses the
// configuration file given in argument. The file must be a TOML file.
func New(path string) (*VTK, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var v VTK
	dec := toml.NewDecoder(f)
	err = dec.Decode(&v)
	if err != nil {
		return nil, err
	}

	if v.FileIn == "" || v.FileOut == "" {
		return nil, fmt.Errorf("file_in and file_out must be set")
	}

	return &v, nil
}

// Start performs the calculation. It is a thread blocking method. This
// calculation only uses one thread.
func (v *VTK) Start() error {
	f, err := os.Open(v.FileIn)
	if err != nil {
		return err
	}
	defer f.Close()

	net, err := network.ReadData(f)
	if err != nil {
		return fmt.Errorf("ReadData: %w", err)
	}

	var props map[string][]float64
	if v.LengthProp {
		lengths, err := net.SegmentLengths()
		if err != nil {
			return fmt.Errorf("SegmentLengths: %w", err)
		}
		props = map[string][]float64{"length": lengths}
	}

	out, err := os.Create(v.FileOut)
	if err != nil {
		return err
	}
	defer out.Close()

	err = Write(out, net, props, !v.NoWrap)
	if err != nil {
		return fmt.Errorf("Write: %w", err)
	}

	return nil
}
