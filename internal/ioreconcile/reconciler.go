// Package ioreconcile implements the Reconciler interface: one run of
// coverage tracking, discrepancy detection, severity classification,
// resolution and quality scoring over all mapped games.
// This is an impure I/O package.
package ioreconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/hoopsync/hsdb/internal/ioadapter"
	"github.com/hoopsync/hsdb/internal/iodb"
	"github.com/hoopsync/hsdb/internal/iosources"
	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/coverage"
	"github.com/hoopsync/hsdb/pkg/db"
	"github.com/hoopsync/hsdb/pkg/hsdb"
	"github.com/hoopsync/hsdb/pkg/mapping"
	"github.com/hoopsync/hsdb/pkg/quality"
	"github.com/hoopsync/hsdb/pkg/resolve"
	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/hoopsync/hsdb/pkg/severity"
	"golang.org/x/sync/errgroup"
)

// reconciler implements the hsdb.Reconciler interface.
type reconciler struct {
	cfg      *config.Config
	operator db.Operator
	store    db.Store

	fields     []compare.Field
	classifier *severity.Classifier
	scorer     *quality.Scorer
	ranking    *resolve.Ranking
}

// New creates a Reconciler. Threshold and quality settings are
// validated here so a misconfigured run aborts before any writes.
func New(cfg *config.Config, op db.Operator) (hsdb.Reconciler, error) {
	fields := compare.DefaultFields()

	classifier, err := severity.New(cfg.Thresholds, fields)
	if err != nil {
		return nil, err
	}
	scorer, err := quality.New(cfg.Quality)
	if err != nil {
		return nil, err
	}

	r := &reconciler{
		cfg:        cfg,
		operator:   op,
		fields:     fields,
		classifier: classifier,
		scorer:     scorer,
		ranking:    resolve.NewRanking(cfg.Trust.Ranking),
	}
	if pool := op.Pool(); pool != nil {
		r.store = iodb.NewPgxStore(pool, cfg)
	}
	return r, nil
}

// Reconcile processes every mapped game and returns the run summary.
func (r *reconciler) Reconcile(ctx context.Context) (*hsdb.RunSummary, error) {
	if r.store == nil {
		return nil, NotConnectedError()
	}

	start := time.Now()
	runID := uuid.NewString()
	slog.Info("Starting reconciliation run",
		"run_id", runID, "season", r.cfg.Reconcile.Season)

	mapper, err := iosources.LoadMapping(r.cfg)
	if err != nil {
		return nil, err
	}

	fetchers, err := r.openAdapters()
	if err != nil {
		return nil, err
	}
	defer closeFetchers(fetchers)

	if err = r.persistMapping(ctx, mapper); err != nil {
		return nil, err
	}

	entities := mapper.Entities()
	if season := r.cfg.Reconcile.Season; season != "" {
		entities = mapper.EntitiesForSeason(season)
	}

	summary := newSummary(runID, r.cfg.Reconcile.Season)
	if len(entities) == 0 {
		gn.Warn("No games matched the run parameters")
		summary.Duration = time.Since(start)
		return summary, nil
	}

	msg := fmt.Sprintf("Reconciling %s games across %d sources",
		humanize.Comma(int64(len(entities))), len(fetchers))
	gn.Info(msg)

	prior := r.priorTiers(ctx)

	if err = r.processEntities(
		ctx, runID, entities, fetchers, prior, summary,
	); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	r.report(summary)
	return summary, nil
}

// openAdapters opens a snapshot adapter per enabled source. A source
// that fails to open is logged and skipped; the run aborts only when
// every source failed.
func (r *reconciler) openAdapters() ([]fetcher, error) {
	sourcesConfig, err := iosources.New(r.cfg).Load()
	if err != nil {
		return nil, err
	}
	selected, err := sourcesConfig.Filter(r.cfg.Reconcile.Sources)
	if err != nil {
		return nil, err
	}

	var fetchers []fetcher
	var failures int
	for _, src := range selected {
		a, err := ioadapter.Open(src)
		if err != nil {
			failures++
			gn.PrintErrorMessage(err)
			slog.Error("Source unavailable, skipping",
				"source", src.Name, "error", err)
			continue
		}
		fetchers = append(fetchers, a)
	}

	if len(fetchers) == 0 {
		return nil, AllSourcesFailedError(failures)
	}
	return fetchers, nil
}

func closeFetchers(fetchers []fetcher) {
	for _, f := range fetchers {
		if c, ok := f.(interface{ Close() error }); ok {
			c.Close()
		}
	}
}

// persistMapping caches the mapping artifact rows in the store.
func (r *reconciler) persistMapping(
	ctx context.Context,
	mapper *mapping.Mapper,
) error {
	now := time.Now()
	var rows []schema.EntityMappingRow
	for _, ent := range mapper.Entities() {
		for src, native := range ent.Sources {
			rows = append(rows, schema.EntityMappingRow{
				GameID:     ent.ID,
				SourceName: src,
				NativeID:   native,
				CreatedAt:  now,
			})
		}
	}
	return r.store.ReplaceEntityMappings(ctx, rows)
}

// priorTiers reads the stored uncertainty tier per game so the run
// can report tier transitions. A read failure degrades to "no prior
// tiers" instead of aborting the run.
func (r *reconciler) priorTiers(ctx context.Context) map[string]string {
	rows, err := r.store.QualityRows(ctx)
	if err != nil {
		slog.Warn("Cannot read prior quality tiers", "error", err)
		return map[string]string{}
	}
	res := make(map[string]string, len(rows))
	for _, row := range rows {
		res[row.GameID] = row.Uncertainty
	}
	return res
}

// processEntities runs the per-game pipeline over a worker pool and
// folds the results into the summary.
func (r *reconciler) processEntities(
	ctx context.Context,
	runID string,
	entities []mapping.Entity,
	fetchers []fetcher,
	prior map[string]string,
	summary *hsdb.RunSummary,
) error {
	tracker := coverage.NewTracker(r.ranking)

	bar := pb.Full.Start(len(entities))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	chIn := make(chan mapping.Entity)
	chOut := make(chan entityResult)

	g, gctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range r.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for ent := range chIn {
				select {
				case <-gctx.Done():
					return CancelledError(gctx.Err())
				default:
				}

				res := r.processEntity(gctx, runID, ent, fetchers, tracker)
				res.prevTier = prior[ent.ID]
				bar.Increment()

				select {
				case chOut <- res:
				case <-gctx.Done():
					return CancelledError(gctx.Err())
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		for res := range chOut {
			foldResult(summary, res)
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	for _, ent := range entities {
		select {
		case chIn <- ent:
		case <-gctx.Done():
			close(chIn)
			return CancelledError(gctx.Err())
		}
	}
	close(chIn)

	return g.Wait()
}

// report logs and prints the run summary.
func (r *reconciler) report(s *hsdb.RunSummary) {
	slog.Info("Reconciliation run finished",
		"run_id", s.RunID,
		"entities", s.EntitiesProcessed,
		"fully_reconciled", s.FullyReconciled,
		"partial", s.Partial,
		"failed", s.Failed,
		"single_source", s.SingleSource,
		"by_severity", s.DiscrepanciesBySeverity,
		"quality_tiers", s.QualityTiers,
		"tier_transitions", s.TierTransitions,
		"duration", s.Duration)

	msg := fmt.Sprintf(
		"Reconciled %s games in %s: %d full, %d partial, %d failed",
		humanize.Comma(int64(s.EntitiesProcessed)),
		gnfmt.TimeString(s.Duration.Seconds()),
		s.FullyReconciled, s.Partial, s.Failed)
	gn.Message(msg)
}
