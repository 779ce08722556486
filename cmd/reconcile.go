package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/internal/iodb"
	"github.com/hoopsync/hsdb/internal/ioreconcile"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/spf13/cobra"
)

// getReconcileCmd returns the reconcile command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getReconcileCmd() *cobra.Command {
	var (
		season      string
		sourceNames []string
		mappingFile string
		jobsNumber  int
	)

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Cross-check game data across sources",
		Long: `Reconcile cross-checks every mapped game across its sources.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Reads sources.yaml to discover source snapshots
  3. Loads the entity-mapping artifact and caches it in the database
  4. Fetches each game from every source that covers it
  5. Detects field-level discrepancies (scores, event counts, dates)
  6. Classifies severity and recommends a resolution per discrepancy
  7. Computes a quality score for every game
  8. Reports coverage and discrepancy statistics

Detected discrepancies and quality scores are written to the
database; nothing in the source snapshots is modified.

Examples:
  # Reconcile all seasons from all enabled sources
  hsdb reconcile

  # One season only
  hsdb reconcile --season 2023-24
  hsdb reconcile -s 2023-24

  # A subset of sources
  hsdb reconcile --sources nba_stats,kaggle

  # Explicit mapping artifact
  hsdb reconcile -m /data/mapping.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReconcile(
				cmd, season, sourceNames, mappingFile, jobsNumber,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	reconcileCmd.Flags().StringVarP(
		&season, "season", "s", "",
		"restrict the run to one season (empty = all)",
	)
	reconcileCmd.Flags().StringSliceVar(
		&sourceNames, "sources", []string{},
		"source names to reconcile (empty = all enabled)",
	)
	reconcileCmd.Flags().StringVarP(
		&mappingFile, "mapping-file", "m", "",
		"path to the entity-mapping artifact",
	)
	reconcileCmd.Flags().IntVarP(
		&jobsNumber, "jobs", "j", 0,
		"number of concurrent workers (0 = use config)",
	)

	return reconcileCmd
}

func runReconcile(
	cmd *cobra.Command,
	season string,
	sourceNames []string,
	mappingFile string,
	jobsNumber int,
) error {
	ctx := context.Background()

	var runOpts []config.Option
	if season != "" {
		runOpts = append(runOpts, config.OptReconcileSeason(season))
	}
	if len(sourceNames) > 0 {
		runOpts = append(runOpts, config.OptReconcileSources(sourceNames))
	}
	if mappingFile != "" {
		runOpts = append(runOpts,
			config.OptReconcileMappingFile(mappingFile))
	}
	if cmd.Flags().Changed("jobs") {
		runOpts = append(runOpts, config.OptJobsNumber(jobsNumber))
	}
	cfg.Update(runOpts)

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	rec, err := ioreconcile.New(cfg, op)
	if err != nil {
		return err
	}

	summary, err := rec.Reconcile(ctx)
	if err != nil {
		return err
	}

	gn.Info("Reconciliation run <em>%s</em> is complete.", summary.RunID)
	gn.Info("Run 'hsdb export' to write the training dataset.")

	return nil
}
