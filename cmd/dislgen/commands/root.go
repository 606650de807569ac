package commands

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var logger = log.New(os.Stdout, "", log.LstdFlags)

func Execute() error {
	root := &cobra.Command{
		Use:   "dislgen",
		Short: "Generate and export periodic dislocation line configurations",
	}
	root.AddCommand(runCmd(), generateCmd())
	return root.Execute()
}
