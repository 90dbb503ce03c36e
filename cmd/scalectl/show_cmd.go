package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/StephenDWright/TeacherApps1/scale"
	"github.com/StephenDWright/TeacherApps1/store/sqlite"
)

type showOutput struct {
	Edition string                                `json:"edition"`
	Name    string                                `json:"name"`
	Note    string                                `json:"note,omitempty"`
	Scale   map[string]map[string]decimal.Decimal `json:"scale"`
}

type editionListing struct {
	Edition    string `json:"edition"`
	Name       string `json:"name"`
	Note       string `json:"note,omitempty"`
	ImportedAt string `json:"imported_at"`
	Amounts    int    `json:"amounts"`
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	var (
		edition string
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a salary scale edition, or list imported editions with --list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listEditions(cmd, opts)
			}

			e, err := scale.ParseEdition(edition)
			if err != nil {
				return err
			}
			tables, logger, err := opts.openTables(cmd.Context())
			if err != nil {
				return err
			}
			defer logger.Sync()

			info := tables.Describe(e)
			return writeJSON(cmd.OutOrStdout(), showOutput{
				Edition: string(e),
				Name:    info.Name,
				Note:    info.Note,
				Scale:   tables.Edition(e).ToLabels(),
			})
		},
	}

	cmd.Flags().StringVar(&edition, "edition", string(scale.EditionCurrent), "Edition to print: current or previous")
	cmd.Flags().BoolVar(&list, "list", false, "List editions imported into the database")
	return cmd
}

func listEditions(cmd *cobra.Command, opts *globalOptions) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if cfg.Tables.Database == "" {
		return fmt.Errorf("no database: pass --db or set tables.database")
	}

	store, err := sqlite.New(cfg.Tables.Database)
	if err != nil {
		return fmt.Errorf("failed to open scale database: %w", err)
	}
	defer store.Close()

	records, err := store.Editions(cmd.Context())
	if err != nil {
		return err
	}
	out := make([]editionListing, len(records))
	for i, r := range records {
		out[i] = editionListing{
			Edition:    string(r.Edition),
			Name:       r.Name,
			Note:       r.Note,
			ImportedAt: r.ImportedAt.UTC().Format(time.RFC3339),
			Amounts:    r.Amounts,
		}
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
