package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StephenDWright/TeacherApps1/config"
	"github.com/StephenDWright/TeacherApps1/scale"
	"github.com/StephenDWright/TeacherApps1/store/sqlite"
)

type globalOptions struct {
	configPath string
	dbPath     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "scalectl",
		Short:        "Educator salary scale and pension tools",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database with imported scales (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newStepCmd(opts),
		newPensionCmd(opts),
		newImportCmd(opts),
		newShowCmd(opts),
	)
	return cmd
}

// load returns the effective config and a logger for it.
func (o *globalOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.dbPath != "" {
		cfg.Tables.Database = o.dbPath
	}
	logger, err := config.NewLogger(cfg.Logging, o.logLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openTables loads both editions from the configured source.
func (o *globalOptions) openTables(ctx context.Context) (*scale.Tables, *zap.Logger, error) {
	cfg, logger, err := o.load()
	if err != nil {
		return nil, nil, err
	}
	info := cfg.EditionInfo()

	if cfg.Tables.Database == "" {
		tables, err := scale.LoadTables(ctx, scale.FileSource{
			CurrentPath:  cfg.Tables.Current,
			PreviousPath: cfg.Tables.Previous,
		})
		if err != nil {
			return nil, nil, err
		}
		tables.Info = info
		return tables, logger, nil
	}

	store, err := sqlite.New(cfg.Tables.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open scale database: %w", err)
	}
	defer store.Close()

	tables, err := scale.LoadTables(ctx, store)
	if err != nil {
		return nil, nil, err
	}
	stored, err := store.Info(ctx)
	if err != nil {
		return nil, nil, err
	}
	for e, si := range stored {
		if si.Name != "" {
			info[e] = si
		}
	}
	tables.Info = info
	return tables, logger, nil
}
