// Package main provides the entry point for the vibe-search CLI.
package main

import (
	"os"

	"github.com/vhybzOS/vibe-search/cmd/vibesearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
