// Package mapping provides the bidirectional lookup between each
// provider's native game identifier and the canonical game identifier.
//
// The mapping is an externally supplied artifact built by an upstream
// matching job; this package only loads and serves it. It is loaded
// once per run and is read-only afterwards, so a Mapper may be shared
// across workers without locking. Any structural defect in the
// artifact is fatal: reconciliation must not start from an ambiguous
// identity base.
package mapping

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// Entity is one canonical game as declared by the artifact.
type Entity struct {
	// ID is the canonical game identifier, stable across runs.
	ID string `yaml:"id"`

	// Date is the game date, "2006-01-02".
	Date string `yaml:"date,omitempty"`

	// Season is the season label, e.g. "2023-24".
	Season string `yaml:"season,omitempty"`

	// Sources maps provider name to the provider's native id.
	// A canonical game has at most one native id per provider.
	Sources map[string]string `yaml:"sources"`
}

// Artifact is the on-disk shape of the mapping file.
type Artifact struct {
	Games []Entity `yaml:"games"`
}

// Mapper provides O(1) lookups in both directions.
type Mapper struct {
	entities []Entity
	// byNative: source -> native id -> canonical id
	byNative map[string]map[string]string
	// byCanonical: canonical id -> source -> native id
	byCanonical map[string]map[string]string
}

// Parse builds a Mapper from artifact bytes. It fails on malformed
// YAML, games without id or sources, a canonical id declared twice, a
// (game, source) pair bound twice, and a native id mapped to two
// different canonical ids within one source.
func Parse(data []byte) (*Mapper, error) {
	var art Artifact
	if err := yaml.Unmarshal(data, &art); err != nil {
		return nil, MalformedError(err)
	}
	if len(art.Games) == 0 {
		return nil, EmptyError()
	}

	m := &Mapper{
		entities:    make([]Entity, 0, len(art.Games)),
		byNative:    make(map[string]map[string]string),
		byCanonical: make(map[string]map[string]string, len(art.Games)),
	}

	for i, g := range art.Games {
		if g.ID == "" {
			return nil, MissingIDError(i)
		}
		if len(g.Sources) == 0 {
			return nil, NoSourcesError(g.ID)
		}
		if _, ok := m.byCanonical[g.ID]; ok {
			return nil, DuplicateGameError(g.ID)
		}

		natives := make(map[string]string, len(g.Sources))
		for src, nativeID := range g.Sources {
			if nativeID == "" {
				return nil, EmptyNativeIDError(g.ID, src)
			}
			srcMap, ok := m.byNative[src]
			if !ok {
				srcMap = make(map[string]string)
				m.byNative[src] = srcMap
			}
			if prev, ok := srcMap[nativeID]; ok && prev != g.ID {
				return nil, DuplicateNativeIDError(src, nativeID, prev, g.ID)
			}
			srcMap[nativeID] = g.ID
			natives[src] = nativeID
		}
		m.byCanonical[g.ID] = natives
		m.entities = append(m.entities, g)
	}

	// Deterministic iteration order for reruns.
	sort.Slice(m.entities, func(i, j int) bool {
		return m.entities[i].ID < m.entities[j].ID
	})

	return m, nil
}

// Canonical returns the canonical id for a provider's native id.
func (m *Mapper) Canonical(source, nativeID string) (string, bool) {
	id, ok := m.byNative[source][nativeID]
	return id, ok
}

// Native returns the provider's native id for a canonical game.
func (m *Mapper) Native(gameID, source string) (string, bool) {
	id, ok := m.byCanonical[gameID][source]
	return id, ok
}

// Entities returns all games sorted by canonical id.
func (m *Mapper) Entities() []Entity {
	return m.entities
}

// EntitiesForSeason returns games of one season, sorted by canonical
// id. Empty season selects all.
func (m *Mapper) EntitiesForSeason(season string) []Entity {
	if season == "" {
		return m.entities
	}
	var res []Entity
	for _, e := range m.entities {
		if e.Season == season {
			res = append(res, e)
		}
	}
	return res
}

// Len returns the number of canonical games in the mapping.
func (m *Mapper) Len() int {
	return len(m.entities)
}
