package main

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"base-resolver/internal/config"
	"base-resolver/internal/logging"
	"base-resolver/internal/repository"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "base-resolver",
		Short: "Resolve field provenance along definition inheritance chains",
		Long: `base-resolver records, for every field of a derived definition, which
ancestor in its inheritance chain declared the field and with which
cardinality.

Definitions are read from YAML bundles or from a SQLite database.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./base-resolver.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Bool("log-dev", false, "human-readable development logging")
	flags.String("db", "", "SQLite database holding definitions")

	mustBind(a.v, config.KeyLogLevel, flags.Lookup("log-level"))
	mustBind(a.v, config.KeyLogDevelopment, flags.Lookup("log-dev"))
	mustBind(a.v, config.KeySourceDatabase, flags.Lookup("db"))

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newValidateCommand(a))
	rootCmd.AddCommand(newResolveCommand(a))
	rootCmd.AddCommand(newImportCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// loadRepository reads definitions from args, falling back to the
// configured database and then the configured paths.
func (a *app) loadRepository(cmd *cobra.Command, args []string) (*repository.Memory, error) {
	if len(args) > 0 {
		return repository.LoadPaths(args...)
	}

	if a.cfg.Source.Database != "" {
		db, err := openDB(a.cfg.Source.Database)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		return repository.NewSQLStore(db).Load(cmd.Context())
	}

	if len(a.cfg.Source.Paths) > 0 {
		return repository.LoadPaths(a.cfg.Source.Paths...)
	}

	return nil, errors.New("no definitions given: pass paths, --db, or set source.paths")
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	return db, nil
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}
