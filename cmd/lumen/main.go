// ABOUTME: Entry point for the lumen CLI binary
// ABOUTME: Stamps build info into the command tree and runs it
package main

import (
	"fmt"
	"os"

	"github.com/lumen-social/lumen/cmd/lumen/commands"
)

// set by goreleaser at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Execute()
}
