// Package main is the entry point for the gamescout server.
package main

import (
	"os"

	"github.com/gamescout/gamescout/cmd/gamescout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
