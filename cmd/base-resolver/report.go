package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"base-resolver/internal/diagnostic"
	"base-resolver/internal/provenance"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen, color.Bold)
	titleColor   = color.New(color.FgCyan, color.Bold)
)

// printDiagnostics writes one line per finding, errors first. Infos are
// only shown when verbose is set.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, verbose bool) {
	for _, d := range diags.Errors {
		errorColor.Fprint(w, "error   ")
		fmt.Fprintln(w, d.String())
	}

	for _, d := range diags.Warnings {
		warningColor.Fprint(w, "warning ")
		fmt.Fprintln(w, d.String())
	}

	if !verbose {
		return
	}

	for _, d := range diags.Infos {
		infoColor.Fprint(w, "info    ")
		fmt.Fprintln(w, d.String())
	}
}

// printInvalidAncestors lists ancestor ids a tolerant run had to skip.
func printInvalidAncestors(w io.Writer, reg *provenance.InvalidAncestors) {
	if reg.Len() == 0 {
		return
	}

	titleColor.Fprintf(w, "Unusable ancestors (%d):\n", reg.Len())

	for _, id := range reg.IDs() {
		status, _ := reg.Status(id)
		fmt.Fprintf(w, "  %s: %s\n", id, status)
	}
}
