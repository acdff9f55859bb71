package main

import (
	"os"

	"github.com/lzhao/talos/cmd/talos/commands"
)

// main is the entry point for the talos CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
