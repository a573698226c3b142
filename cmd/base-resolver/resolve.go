package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"base-resolver/internal/config"
	"base-resolver/internal/match"
	"base-resolver/internal/provenance"
	"base-resolver/internal/repository"
	"base-resolver/internal/schema"
)

type resolveOptions struct {
	output  string
	save    bool
	dump    bool
	verbose bool
	only    []string
}

func newResolveCommand(a *app) *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve [paths...]",
		Short: "Assign provenance descriptors to every field",
		Long: `Resolve aligns each definition with its ancestor chain and records, on
every field, the ancestor declaration it derives from.

Definitions come from the given YAML paths, or from --db, or from the
configured source. Results are written as YAML with --output, or back to
the database with --save.`,
		Example: `  base-resolver resolve defs/ -o resolved.yaml
  base-resolver resolve --db defs.db --normalize --save
  base-resolver resolve defs/ --tolerate-missing --only us-core-patient`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runResolve(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.Bool("normalize", false, "point descriptors at the original declaring ancestor")
	flags.Bool("tolerate-missing", false, "record missing ancestors instead of failing")
	flags.Int("max-depth", provenance.DefaultSettings().MaxDepth, "maximum ancestor chain length (0 = unlimited)")
	flags.StringSlice("choice-type", nil, "extra type names recognized in renamed choice fields")
	flags.StringVarP(&opts.output, "output", "o", "", "write resolved definitions as YAML to this file (- for stdout)")
	flags.BoolVar(&opts.save, "save", false, "write descriptors back to the --db database")
	flags.BoolVar(&opts.dump, "dump", false, "dump resolved definitions in Go syntax")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "also report fields without provenance")
	flags.StringSliceVar(&opts.only, "only", nil, "resolve only these definition ids (and their ancestors)")

	mustBind(a.v, config.KeyNormalize, flags.Lookup("normalize"))
	mustBind(a.v, config.KeyTolerateMissingAncestor, flags.Lookup("tolerate-missing"))
	mustBind(a.v, config.KeyMaxDepth, flags.Lookup("max-depth"))
	mustBind(a.v, config.KeyChoiceTypes, flags.Lookup("choice-type"))

	return cmd
}

func (a *app) runResolve(cmd *cobra.Command, args []string, opts resolveOptions) error {
	if opts.save && (a.cfg.Source.Database == "" || len(args) > 0) {
		return errors.New("--save needs definitions read from --db")
	}

	mem, err := a.loadRepository(cmd, args)
	if err != nil {
		return err
	}

	r := provenance.NewResolver(mem, a.cfg.Resolver.Settings(),
		provenance.WithLogger(a.logger),
		provenance.WithMatcher(match.NewMatcher(a.cfg.Resolver.ChoiceTypes...)),
	)

	resolveErr := r.ResolveAll(opts.only...)

	out, report := cmd.OutOrStdout(), cmd.OutOrStdout()
	if opts.output == "-" {
		report = cmd.ErrOrStderr()
	}

	printDiagnostics(report, r.Diagnostics(), opts.verbose)
	printInvalidAncestors(report, r.InvalidAncestors())

	if opts.dump {
		dumpConfig := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dumpConfig.Fdump(report, mem.Bundle())
	}

	// partial results are still written so they can be inspected
	if err := writeOutput(out, opts.output, mem.Bundle()); err != nil {
		return err
	}

	if opts.save {
		if err := a.save(cmd, mem); err != nil {
			return err
		}
	}

	if resolveErr != nil {
		return resolveErr
	}

	a.logger.Debug("resolved definitions", zap.Int("count", mem.Len()))

	successColor.Fprintf(report, "Resolved %d definition(s)\n", mem.Len())

	return nil
}

func writeOutput(stdout io.Writer, output string, b *schema.Bundle) error {
	switch output {
	case "":
		return nil
	case "-":
		data, err := schema.Marshal(b)
		if err != nil {
			return err
		}

		_, err = stdout.Write(data)

		return err
	default:
		if err := schema.WriteFile(b, output); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}

		return nil
	}
}

func (a *app) save(cmd *cobra.Command, mem *repository.Memory) error {
	db, err := openDB(a.cfg.Source.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.NewSQLStore(db).SaveProvenance(cmd.Context(), mem.All()); err != nil {
		return err
	}

	a.logger.Info("saved provenance", zap.String("database", a.cfg.Source.Database))

	return nil
}
