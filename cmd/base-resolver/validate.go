package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"base-resolver/internal/diagnostic"
	"base-resolver/internal/schema"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Check the structure of definitions",
		Long: `Validate checks every definition for structural problems: root field
placement, malformed or duplicate paths, missing parents, and bounds where
min exceeds max. Ancestor ids are not resolved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := a.loadRepository(cmd, args)
			if err != nil {
				return err
			}

			var all diagnostic.Diagnostics
			for _, def := range mem.All() {
				all.Merge(*schema.Validate(def))
			}

			out := cmd.OutOrStdout()
			printDiagnostics(out, &all, true)

			if err := all.Error(); err != nil {
				return fmt.Errorf("%d invalid definition(s): %w", countDefinitions(all.Errors), err)
			}

			successColor.Fprintf(out, "%d definition(s) valid\n", mem.Len())

			return nil
		},
	}
}

func countDefinitions(diags []diagnostic.Diagnostic) int {
	ids := make(map[string]struct{})
	for _, d := range diags {
		ids[d.Definition] = struct{}{}
	}

	return len(ids)
}
