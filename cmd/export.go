package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/internal/iodb"
	"github.com/hoopsync/hsdb/internal/ioexport"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getExportCmd() *cobra.Command {
	var outputDir string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export quality snapshot and training dataset",
		Long: `Export writes the reconciliation results to files.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Reads the quality scores and coverage records
  3. Writes a JSON snapshot with per-game quality metadata
  4. Writes a CSV dataset with training weights

The snapshot carries quality-tier and source-coverage histograms
in its metadata. Training weights are rounded to four decimal
places in both files.

Examples:
  hsdb export
  hsdb export --output-dir /data/exports
  hsdb export -o /data/exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(cmd, outputDir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	exportCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"directory for export files (empty = default cache dir)",
	)

	return exportCmd
}

func runExport(_ *cobra.Command, outputDir string) error {
	ctx := context.Background()

	if outputDir != "" {
		cfg.Update([]config.Option{
			config.OptReconcileOutputDir(outputDir),
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

	exp := ioexport.New(cfg, op)

	summary, err := exp.Export(ctx)
	if err != nil {
		return err
	}

	gn.Info("Snapshot: <em>%s</em>", summary.SnapshotPath)
	gn.Info("Dataset:  <em>%s</em>", summary.DatasetPath)

	return nil
}
