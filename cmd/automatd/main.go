// Package main is the entry point for the automatd daemon.
package main

import (
	"os"

	"github.com/automat-io/automat/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
