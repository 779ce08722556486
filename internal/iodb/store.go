package iodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/db"
	"github.com/hoopsync/hsdb/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxParams is the PostgreSQL limit on parameters per statement.
const maxParams = 65535

// PgxStore implements the db.Store persistence contract with batched
// idempotent upserts and bounded retry on transient failures.
type PgxStore struct {
	pool      *pgxpool.Pool
	batchSize int
	retry     config.RetryConfig
}

// NewPgxStore creates a store over an established pool.
func NewPgxStore(pool *pgxpool.Pool, cfg *config.Config) db.Store {
	return &PgxStore{
		pool:      pool,
		batchSize: cfg.Database.BatchSize,
		retry:     cfg.Retry,
	}
}

// rowsPerBatch caps the configured batch size so a statement never
// exceeds the parameter limit for the given column count.
func rowsPerBatch(batchSize, cols int) int {
	limit := maxParams / cols
	if batchSize < 1 {
		return limit
	}
	if batchSize < limit {
		return batchSize
	}
	return limit
}

// buildUpsert produces a multi-row INSERT ... ON CONFLICT DO UPDATE
// statement. conflictCols name the unique key; every other column is
// overwritten from the excluded row.
func buildUpsert(table string, cols, conflictCols []string, rows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ",
		table, strings.Join(cols, ", "))

	param := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := range cols {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", param)
			param++
		}
		sb.WriteString(")")
	}

	fmt.Fprintf(&sb, " ON CONFLICT (%s) DO UPDATE SET ",
		strings.Join(conflictCols, ", "))

	conflict := make(map[string]bool, len(conflictCols))
	for _, c := range conflictCols {
		conflict[c] = true
	}
	var updates []string
	for _, c := range cols {
		if !conflict[c] {
			updates = append(updates,
				fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}
	sb.WriteString(strings.Join(updates, ", "))

	return sb.String()
}

// withRetry runs op with bounded exponential backoff. Only the last
// error is reported when all attempts fail.
func (s *PgxStore) withRetry(ctx context.Context, op func() error) error {
	attempts := s.retry.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := time.Duration(s.retry.BackoffMillis) * time.Millisecond

	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return RetryExhaustedError(attempts, err)
}

// upsertBatched flattens rows into parameter batches and executes the
// upsert per batch under retry.
func (s *PgxStore) upsertBatched(
	ctx context.Context,
	table string,
	cols, conflictCols []string,
	rowCount int,
	args func(i int) []any,
) error {
	perBatch := rowsPerBatch(s.batchSize, len(cols))

	for start := 0; start < rowCount; start += perBatch {
		end := start + perBatch
		if end > rowCount {
			end = rowCount
		}
		sql := buildUpsert(table, cols, conflictCols, end-start)

		params := make([]any, 0, (end-start)*len(cols))
		for i := start; i < end; i++ {
			params = append(params, args(i)...)
		}

		err := s.withRetry(ctx, func() error {
			_, err := s.pool.Exec(ctx, sql, params...)
			return err
		})
		if err != nil {
			return UpsertError(table, err)
		}
	}
	return nil
}

var coverageCols = []string{
	"game_id", "season", "sources_present", "event_counts",
	"total_sources", "has_discrepancies", "quality_score",
	"primary_source", "backup_sources", "updated_at",
}

// UpsertCoverage writes coverage rows, one per game.
func (s *PgxStore) UpsertCoverage(
	ctx context.Context,
	recs []schema.CoverageRecord,
) error {
	return s.upsertBatched(ctx, "coverage_records", coverageCols,
		[]string{"game_id"}, len(recs), func(i int) []any {
			r := recs[i]
			return []any{
				r.GameID, r.Season, r.SourcesPresent, r.EventCounts,
				r.TotalSources, r.HasDiscrepancies, r.QualityScore,
				r.PrimarySource, r.BackupSources, r.UpdatedAt,
			}
		})
}

var discrepancyCols = []string{
	"id", "game_id", "field_name", "category", "source_values",
	"difference", "percent_difference", "severity",
	"recommended_source", "recommended_value", "policy",
	"resolution_status", "created_at",
}

// UpsertDiscrepancies writes discrepancy rows keyed by
// (game_id, field_name).
func (s *PgxStore) UpsertDiscrepancies(
	ctx context.Context,
	recs []schema.DiscrepancyRecord,
) error {
	return s.upsertBatched(ctx, "discrepancies", discrepancyCols,
		[]string{"game_id", "field_name"}, len(recs), func(i int) []any {
			r := recs[i]
			return []any{
				r.ID, r.GameID, r.FieldName, r.Category,
				r.SourceValues, r.Difference, r.PercentDifference,
				r.Severity, r.RecommendedSource, r.RecommendedValue,
				r.Policy, r.ResolutionStatus, r.CreatedAt,
			}
		})
}

var qualityCols = []string{
	"game_id", "run_id", "quality_score", "uncertainty",
	"event_count_issue", "coordinate_issue", "score_issue",
	"timing_issue", "training_eligible", "training_weight",
	"source_count", "notes", "updated_at",
}

// UpsertQualityScores writes quality rows, one per game.
func (s *PgxStore) UpsertQualityScores(
	ctx context.Context,
	recs []schema.QualityScoreRecord,
) error {
	return s.upsertBatched(ctx, "quality_scores", qualityCols,
		[]string{"game_id"}, len(recs), func(i int) []any {
			r := recs[i]
			return []any{
				r.GameID, r.RunID, r.QualityScore, r.Uncertainty,
				r.EventCountIssue, r.CoordinateIssue, r.ScoreIssue,
				r.TimingIssue, r.TrainingEligible, r.TrainingWeight,
				r.SourceCount, r.Notes, r.UpdatedAt,
			}
		})
}

var mappingCols = []string{
	"game_id", "source_name", "native_id", "created_at",
}

// ReplaceEntityMappings replaces the persisted mapping cache with the
// rows of the current artifact. Runs in one transaction so readers
// never observe a partial cache.
func (s *PgxStore) ReplaceEntityMappings(
	ctx context.Context,
	rows []schema.EntityMappingRow,
) error {
	return s.withRetry(ctx, func() error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err = tx.Exec(ctx, "DELETE FROM entity_mappings"); err != nil {
			return err
		}

		perBatch := rowsPerBatch(s.batchSize, len(mappingCols))
		for start := 0; start < len(rows); start += perBatch {
			end := start + perBatch
			if end > len(rows) {
				end = len(rows)
			}
			sql := buildUpsert("entity_mappings", mappingCols,
				[]string{"game_id", "source_name"}, end-start)
			params := make([]any, 0, (end-start)*len(mappingCols))
			for _, r := range rows[start:end] {
				params = append(params,
					r.GameID, r.SourceName, r.NativeID, r.CreatedAt)
			}
			if _, err = tx.Exec(ctx, sql, params...); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
}

var mergedCols = []string{
	"id", "season", "game_date", "home_team", "away_team",
	"home_score", "away_score", "event_count", "sources_merged",
	"merge_timestamp",
}

// UpsertMergedGames writes merged games keyed by identity key.
func (s *PgxStore) UpsertMergedGames(
	ctx context.Context,
	recs []schema.MergedGame,
) error {
	return s.upsertBatched(ctx, "merged_games", mergedCols,
		[]string{"id"}, len(recs), func(i int) []any {
			r := recs[i]
			return []any{
				r.ID, r.Season, r.GameDate, r.HomeTeam, r.AwayTeam,
				r.HomeScore, r.AwayScore, r.EventCount,
				r.SourcesMerged, r.MergeTimestamp,
			}
		})
}

// MultiSourceGameIDs returns the ids of games covered by at least two
// sources.
func (s *PgxStore) MultiSourceGameIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT game_id
		FROM coverage_records
		WHERE total_sources >= 2
		ORDER BY game_id
	`

	var ids []string
	err := s.withRetry(ctx, func() error {
		rows, err := s.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		ids = ids[:0]
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, ScanError("coverage_records", err)
	}
	return ids, nil
}

// CoverageRows returns all coverage rows ordered by game id.
func (s *PgxStore) CoverageRows(
	ctx context.Context,
) ([]schema.CoverageRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM coverage_records ORDER BY game_id",
		strings.Join(coverageCols, ", "))

	var recs []schema.CoverageRecord
	err := s.withRetry(ctx, func() error {
		rows, err := s.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		recs = recs[:0]
		for rows.Next() {
			var r schema.CoverageRecord
			err = rows.Scan(
				&r.GameID, &r.Season, &r.SourcesPresent,
				&r.EventCounts, &r.TotalSources, &r.HasDiscrepancies,
				&r.QualityScore, &r.PrimarySource, &r.BackupSources,
				&r.UpdatedAt,
			)
			if err != nil {
				return err
			}
			recs = append(recs, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, ScanError("coverage_records", err)
	}
	return recs, nil
}

// QualityRows returns all quality rows ordered by game id.
func (s *PgxStore) QualityRows(
	ctx context.Context,
) ([]schema.QualityScoreRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM quality_scores ORDER BY game_id",
		strings.Join(qualityCols, ", "))

	var recs []schema.QualityScoreRecord
	err := s.withRetry(ctx, func() error {
		rows, err := s.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		recs = recs[:0]
		for rows.Next() {
			var r schema.QualityScoreRecord
			err = rows.Scan(
				&r.GameID, &r.RunID, &r.QualityScore, &r.Uncertainty,
				&r.EventCountIssue, &r.CoordinateIssue, &r.ScoreIssue,
				&r.TimingIssue, &r.TrainingEligible, &r.TrainingWeight,
				&r.SourceCount, &r.Notes, &r.UpdatedAt,
			)
			if err != nil {
				return err
			}
			recs = append(recs, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, ScanError("quality_scores", err)
	}
	return recs, nil
}

// DiscrepancyRows returns all discrepancy rows for one game.
func (s *PgxStore) DiscrepancyRows(
	ctx context.Context,
	gameID string,
) ([]schema.DiscrepancyRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM discrepancies WHERE game_id = $1 ORDER BY field_name",
		strings.Join(discrepancyCols, ", "))

	var recs []schema.DiscrepancyRecord
	err := s.withRetry(ctx, func() error {
		rows, err := s.pool.Query(ctx, query, gameID)
		if err != nil {
			return err
		}
		defer rows.Close()

		recs = recs[:0]
		for rows.Next() {
			var r schema.DiscrepancyRecord
			err = rows.Scan(
				&r.ID, &r.GameID, &r.FieldName, &r.Category,
				&r.SourceValues, &r.Difference, &r.PercentDifference,
				&r.Severity, &r.RecommendedSource, &r.RecommendedValue,
				&r.Policy, &r.ResolutionStatus, &r.CreatedAt,
			)
			if err != nil {
				return err
			}
			recs = append(recs, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, ScanError("discrepancies", err)
	}
	return recs, nil
}
