// Package ioadapter reads per-provider SQLite snapshots. Each source
// in sources.yaml names a snapshot file produced by that provider's
// scraper; the adapter exposes its rows as sources.Record values.
// This is an impure I/O package.
package ioadapter

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoopsync/hsdb/pkg/sources"
	_ "modernc.org/sqlite" // SQLite driver
)

// Adapter reads one source snapshot. Safe for concurrent reads; the
// underlying driver serializes access.
type Adapter struct {
	source string
	db     *sql.DB
}

// Open validates the snapshot path and opens the database. The
// snapshot must contain a `games` table; an optional `game_extras`
// key-value table supplies provider-specific fields.
func Open(src sources.SourceConfig) (*Adapter, error) {
	path, err := expandHome(src.Snapshot)
	if err != nil {
		return nil, SnapshotMissingError(src.Name, src.Snapshot, err)
	}
	if _, err = os.Stat(path); err != nil {
		return nil, SnapshotMissingError(src.Name, path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, SnapshotOpenError(src.Name, path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, SnapshotOpenError(src.Name, path, err)
	}

	return &Adapter{source: src.Name, db: db}, nil
}

// expandHome resolves a leading ~/ against the user's home directory,
// so the shipped sources.yaml defaults work as written.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand ~: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// Close releases the snapshot handle.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Source returns the source name the adapter reads for.
func (a *Adapter) Source() string {
	return a.source
}

const recordQuery = `
SELECT native_id, game_date, season, home_team, away_team,
       home_score, away_score, event_count
FROM games
`

// FetchRecord returns the record for one native id. The second return
// value is false when the snapshot has no such game. Absent fields
// come back null, never error.
func (a *Adapter) FetchRecord(
	ctx context.Context,
	nativeID string,
) (*sources.Record, bool, error) {
	row := a.db.QueryRowContext(ctx,
		recordQuery+"WHERE native_id = ?", nativeID)

	rec, err := a.scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, SnapshotReadError(a.source, err)
	}

	if err = a.loadExtras(ctx, rec); err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// AllRecords returns every record of the snapshot. Used by coverage
// scans and by the merge pass.
func (a *Adapter) AllRecords(ctx context.Context) ([]*sources.Record, error) {
	rows, err := a.db.QueryContext(ctx, recordQuery+"ORDER BY native_id")
	if err != nil {
		return nil, SnapshotReadError(a.source, err)
	}
	defer rows.Close()

	var recs []*sources.Record
	for rows.Next() {
		rec, err := a.scanRecord(rows.Scan)
		if err != nil {
			return nil, SnapshotReadError(a.source, err)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, SnapshotReadError(a.source, err)
	}

	for _, rec := range recs {
		if err = a.loadExtras(ctx, rec); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// scanRecord maps one games row to a Record, converting SQL nulls to
// absent fields.
func (a *Adapter) scanRecord(scan func(...any) error) (*sources.Record, error) {
	var (
		nativeID  string
		gameDate  sql.NullString
		season    sql.NullString
		homeTeam  sql.NullString
		awayTeam  sql.NullString
		homeScore sql.NullInt64
		awayScore sql.NullInt64
		events    sql.NullInt64
	)

	err := scan(&nativeID, &gameDate, &season, &homeTeam, &awayTeam,
		&homeScore, &awayScore, &events)
	if err != nil {
		return nil, err
	}

	rec := &sources.Record{
		Source:   a.source,
		NativeID: nativeID,
		GameDate: gameDate.String,
		Season:   season.String,
		HomeTeam: homeTeam.String,
		AwayTeam: awayTeam.String,
	}
	if homeScore.Valid {
		rec.HomeScore = sources.Int(int(homeScore.Int64))
	}
	if awayScore.Valid {
		rec.AwayScore = sources.Int(int(awayScore.Int64))
	}
	if events.Valid {
		rec.EventCount = sources.Int(int(events.Int64))
	}
	return rec, nil
}

// loadExtras populates the record's extras bag from the optional
// game_extras table. A snapshot without the table yields an empty
// bag.
func (a *Adapter) loadExtras(ctx context.Context, rec *sources.Record) error {
	ok, err := a.hasExtrasTable(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	rows, err := a.db.QueryContext(ctx,
		"SELECT name, value FROM game_extras WHERE native_id = ?",
		rec.NativeID)
	if err != nil {
		return SnapshotReadError(a.source, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err = rows.Scan(&name, &value); err != nil {
			return SnapshotReadError(a.source, err)
		}
		if rec.Extras == nil {
			rec.Extras = make(map[string]string)
		}
		rec.Extras[name] = value
	}
	return rows.Err()
}

// hasExtrasTable checks for the optional game_extras table once.
func (a *Adapter) hasExtrasTable(ctx context.Context) (bool, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `
		SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = 'game_extras'
	`).Scan(&n)
	if err != nil {
		return false, SnapshotReadError(a.source, err)
	}
	return n > 0, nil
}
