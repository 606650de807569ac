package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpotier/dislgen/pkg/cfg"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <config.toml>",
		Short: "Dispatch the calculations listed in a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cfg.New(args[0])
			if err != nil {
				return fmt.Errorf("New: %w", err)
			}
			c.Start(logger)
			return nil
		},
	}
	return cmd
}
