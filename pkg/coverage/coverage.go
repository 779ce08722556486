// Package coverage tracks which sources supplied data for each
// canonical game within a reconciliation run. A tracker is built up by
// presence registrations during the source scan and then queried for
// per-game summaries.
package coverage

import (
	"sort"
	"sync"

	"github.com/hoopsync/hsdb/pkg/resolve"
)

// Summary describes one game's source coverage after the scan is
// complete.
type Summary struct {
	// GameID is the canonical game identifier.
	GameID string

	// Sources maps source name to presence.
	Sources map[string]bool

	// EventCounts maps source name to the item count registered for
	// that source, when one was registered.
	EventCounts map[string]int

	// TotalSources is the number of sources that supplied the game.
	TotalSources int

	// SingleSource is true when fewer than two sources supplied the
	// game. Such games skip discrepancy detection but are still
	// quality-scored.
	SingleSource bool

	// PrimarySource is the most trusted present source.
	PrimarySource string

	// BackupSources are the remaining present sources in trust order.
	BackupSources []string
}

type presence struct {
	count    int
	hasCount bool
}

// Tracker accumulates per-game presence registrations. Safe for
// concurrent use.
type Tracker struct {
	mu      sync.Mutex
	ranking *resolve.Ranking
	games   map[string]map[string]presence
}

// NewTracker creates a Tracker that orders primary and backup sources
// by the given trust ranking.
func NewTracker(ranking *resolve.Ranking) *Tracker {
	return &Tracker{
		ranking: ranking,
		games:   make(map[string]map[string]presence),
	}
}

// RegisterPresence records that a source supplied a game. Repeated
// registrations with equal arguments are idempotent; a differing
// count for the same (game, source) pair overwrites the earlier one.
// A negative count registers presence without a count.
func (t *Tracker) RegisterPresence(gameID, source string, itemCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bySource, ok := t.games[gameID]
	if !ok {
		bySource = make(map[string]presence)
		t.games[gameID] = bySource
	}
	if itemCount < 0 {
		if _, ok := bySource[source]; !ok {
			bySource[source] = presence{}
		}
		return
	}
	bySource[source] = presence{count: itemCount, hasCount: true}
}

// Summarize returns the coverage summary for one game. The second
// return value is false when the game was never registered.
func (t *Tracker) Summarize(gameID string) (Summary, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bySource, ok := t.games[gameID]
	if !ok {
		return Summary{}, false
	}

	s := Summary{
		GameID:      gameID,
		Sources:     make(map[string]bool, len(bySource)),
		EventCounts: make(map[string]int),
	}
	var present []string
	for src, p := range bySource {
		s.Sources[src] = true
		if p.hasCount {
			s.EventCounts[src] = p.count
		}
		present = append(present, src)
	}
	s.TotalSources = len(present)
	s.SingleSource = s.TotalSources < 2

	sort.Slice(present, func(i, j int) bool {
		return t.ranking.MoreTrusted(present[i], present[j])
	})
	if len(present) > 0 {
		s.PrimarySource = present[0]
		s.BackupSources = present[1:]
	}
	return s, true
}

// GameIDs returns all registered game ids in sorted order.
func (t *Tracker) GameIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.games))
	for id := range t.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of games with at least one registration.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.games)
}
