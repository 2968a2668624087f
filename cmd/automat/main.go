// Package main is the entry point for the automat CLI/TUI.
package main

import (
	"os"

	"github.com/automat-io/automat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
