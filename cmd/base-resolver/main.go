// Package main provides the CLI entrypoint for base-resolver.
//
// base-resolver assigns provenance descriptors to the fields of derived
// definitions:
//   - validate checks the structure of definition bundles
//   - resolve aligns every definition with its ancestor chain
//   - import copies YAML bundles into a SQLite database
package main

import (
	"os"

	"github.com/fatih/color"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
