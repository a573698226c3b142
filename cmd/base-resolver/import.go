package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"base-resolver/internal/repository"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import paths...",
		Short: "Copy YAML definitions into a SQLite database",
		Long: `Import loads YAML bundles and stores their definitions in the database
given by --db (or source.database), creating the tables when needed.
Existing definitions with the same id are replaced.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Source.Database == "" {
				return errors.New("import needs a database: pass --db or set source.database")
			}

			mem, err := repository.LoadPaths(args...)
			if err != nil {
				return err
			}

			db, err := openDB(a.cfg.Source.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			store := repository.NewSQLStore(db)
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			if err := store.Import(cmd.Context(), mem.All()); err != nil {
				return err
			}

			a.logger.Info("imported definitions",
				zap.Int("count", mem.Len()),
				zap.String("database", a.cfg.Source.Database))
			successColor.Fprintf(cmd.OutOrStdout(), "Imported %d definition(s) into %s\n", mem.Len(), a.cfg.Source.Database)

			return nil
		},
	}
}
