package main

import (
	"os"

	"github.com/kpotier/dislgen/cmd/dislgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
