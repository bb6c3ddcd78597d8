package main

import (
	"os"

	"github.com/ArchonAI/archon-cli/cmd"
)

func main() {
	// See cmd/root.go for Execute()
	if err := cmd.Execute(); err != nil {
		os.Exit(-1)
	}
}
