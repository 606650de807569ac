package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpotier/dislgen/pkg/generate"
	"github.com/kpotier/dislgen/pkg/network"
	"github.com/kpotier/dislgen/pkg/vtk"
)

func generateCmd() *cobra.Command {
	var (
		crystalName string
		lbox        float64
		numLines    int
		theta       []float64
		maxSeg      float64
		seed        int64
		burgmag     float64
		outData     string
		outVTK      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a configuration of periodic dislocation lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := generate.LineConfig(crystalName, lbox, numLines, generate.Options{
				Theta:  theta,
				MaxSeg: maxSeg,
				Seed:   seed,
				Log:    logger,
			})
			if err != nil {
				return fmt.Errorf("LineConfig: %w", err)
			}

			rho, err := net.Density(burgmag)
			if err != nil {
				return fmt.Errorf("Density: %w", err)
			}
			fmt.Printf("nodes: %d, segments: %d, density: %g\n",
				len(net.Nodes), len(net.Segs), rho)

			if outData != "" {
				if err := writeData(net, outData); err != nil {
					return err
				}
			}
			if outVTK != "" {
				f, err := os.Create(outVTK)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := vtk.Write(f, net, nil, true); err != nil {
					return fmt.Errorf("vtk.Write: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&crystalName, "crystal", "BCC", "crystal structure (BCC or FCC)")
	cmd.Flags().Float64Var(&lbox, "lbox", 100, "box size")
	cmd.Flags().IntVar(&numLines, "num-lines", 24, "number of dislocation lines")
	cmd.Flags().Float64SliceVar(&theta, "theta", nil, "character angles in degrees (default: calibrated)")
	cmd.Flags().Float64Var(&maxSeg, "maxseg", -1, "maximum discretization length")
	cmd.Flags().Int64Var(&seed, "seed", -1, "random seed (>0 for reproducible runs)")
	cmd.Flags().Float64Var(&burgmag, "burgmag", 1, "Burgers vector magnitude for the density report")
	cmd.Flags().StringVar(&outData, "out-data", "", "write the network in the native data format")
	cmd.Flags().StringVar(&outVTK, "out-vtk", "", "write the network as a VTK file")

	return cmd
}

func writeData(net *network.Net, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := net.WriteData(f); err != nil {
		return fmt.Errorf("WriteData: %w", err)
	}
	return nil
}
