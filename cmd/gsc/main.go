// Package main is the entry point for the gsc CLI.
package main

import "github.com/gamescout/gamescout/cmd/gsc/cmd"

func main() {
	cmd.Execute()
}
