package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StephenDWright/TeacherApps1/scale"
	"github.com/StephenDWright/TeacherApps1/store/sqlite"
)

type importOutput struct {
	Database string            `json:"database"`
	Editions []importedEdition `json:"editions"`
}

type importedEdition struct {
	Edition string `json:"edition"`
	Name    string `json:"name"`
	Grades  int    `json:"grades"`
}

func newImportCmd(opts *globalOptions) *cobra.Command {
	var (
		currentPath  string
		previousPath string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import JSON salary scales into the SQLite database",
		Long: "Reads both editions from JSON files (defaults from the config file) and\n" +
			"replaces them in the database given by --db or tables.database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Tables.Database == "" {
				return fmt.Errorf("no database: pass --db or set tables.database")
			}
			if currentPath == "" {
				currentPath = cfg.Tables.Current
			}
			if previousPath == "" {
				previousPath = cfg.Tables.Previous
			}

			ctx := cmd.Context()
			tables, err := scale.LoadTables(ctx, scale.FileSource{CurrentPath: currentPath, PreviousPath: previousPath})
			if err != nil {
				return err
			}

			store, err := sqlite.New(cfg.Tables.Database)
			if err != nil {
				return fmt.Errorf("failed to open scale database: %w", err)
			}
			defer store.Close()

			info := cfg.EditionInfo()
			out := importOutput{Database: cfg.Tables.Database}
			for _, e := range []scale.Edition{scale.EditionCurrent, scale.EditionPrevious} {
				t := tables.Edition(e)
				if err := store.SaveTable(ctx, e, info[e], t); err != nil {
					return err
				}
				logger.Info("Imported salary scale",
					zap.String("op", "import"),
					zap.String("edition", string(e)),
					zap.Int("grades", len(t.Grades())),
				)
				out.Editions = append(out.Editions, importedEdition{Edition: string(e), Name: info[e].Name, Grades: len(t.Grades())})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&currentPath, "current", "", "JSON file with the current scale (default from config)")
	cmd.Flags().StringVar(&previousPath, "previous", "", "JSON file with the previous scale (default from config)")
	return cmd
}
