package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/internal/iodb"
	"github.com/hoopsync/hsdb/internal/iomerge"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/spf13/cobra"
)

// getMergeCmd returns the merge command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMergeCmd() *cobra.Command {
	var sourceNames []string

	mergeCmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge source records into unified games",
		Long: `Merge combines the records of all sources into one row per game.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Loads every record from every enabled source snapshot
  3. Groups records by identity key (teams, date, season)
  4. Resolves field conflicts with trust-based policies
  5. Writes one merged row per game to the database

Records from the same game collapse into a single row even when the
sources disagree on team spelling or date formatting.
Native source identifiers never take part in grouping.

Examples:
  hsdb merge
  hsdb merge --sources nba_stats,bigdataball`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMerge(cmd, sourceNames)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	mergeCmd.Flags().StringSliceVar(
		&sourceNames, "sources", []string{},
		"source names to merge (empty = all enabled)",
	)

	return mergeCmd
}

func runMerge(_ *cobra.Command, sourceNames []string) error {
	ctx := context.Background()

	if len(sourceNames) > 0 {
		cfg.Update([]config.Option{
			config.OptReconcileSources(sourceNames),
		})
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	mrg := iomerge.New(cfg, op)

	if _, err := mrg.Merge(ctx); err != nil {
		return err
	}

	gn.Info("Merged games are stored in the database.")

	return nil
}
