// Package sources provides the registry of upstream data providers and
// the unified view of their per-game records.
//
// The main entry point is the sources.yaml file which users provide to
// declare the fixed, enumerable set of providers and where each
// provider's snapshot lives. Each provider is an independent upstream
// process with its own identifiers and coverage; the reconciliation
// core only ever reads their records.
package sources

import (
	"gopkg.in/yaml.v3"
)

// SourcesConfig represents the complete sources.yaml configuration file.
type SourcesConfig struct {
	// Sources is the list of providers to reconcile.
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig represents configuration for a single provider.
type SourceConfig struct {
	// Name is the provider identifier used throughout the system
	// (coverage flags, trust ranking, discrepancy values). Required,
	// unique.
	Name string `yaml:"name"`

	// Title is a human-readable provider description.
	Title string `yaml:"title,omitempty"`

	// Snapshot is the path to the provider's SQLite snapshot, the
	// output of its scraper. Required.
	Snapshot string `yaml:"snapshot"`

	// Enabled allows temporarily excluding a provider without
	// removing its entry. Defaults to true.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the provider takes part in runs.
func (s *SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Parse reads a sources.yaml document. It performs data structure
// validation only; file system checks belong to the I/O layer.
func Parse(data []byte) (*SourcesConfig, error) {
	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, MalformedError(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural validity: at least one source, non-empty
// unique names, non-empty snapshot paths.
func (c *SourcesConfig) Validate() error {
	if len(c.Sources) == 0 {
		return EmptyError()
	}
	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.Name == "" {
			return MissingNameError(i)
		}
		if seen[s.Name] {
			return DuplicateNameError(s.Name)
		}
		seen[s.Name] = true
		if s.Snapshot == "" {
			return MissingSnapshotError(s.Name)
		}
	}
	return nil
}

// Filter returns the enabled sources whose names appear in the given
// list, preserving sources.yaml order. An empty list selects all
// enabled sources. Unknown names produce an error so typos do not
// silently shrink a run.
func (c *SourcesConfig) Filter(names []string) ([]SourceConfig, error) {
	if len(names) == 0 {
		var res []SourceConfig
		for _, s := range c.Sources {
			if s.IsEnabled() {
				res = append(res, s)
			}
		}
		return res, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var res []SourceConfig
	for _, s := range c.Sources {
		if wanted[s.Name] {
			delete(wanted, s.Name)
			if s.IsEnabled() {
				res = append(res, s)
			}
		}
	}
	if len(wanted) > 0 {
		var unknown []string
		for n := range wanted {
			unknown = append(unknown, n)
		}
		return nil, UnknownSourcesError(unknown)
	}
	return res, nil
}

// Names returns the names of all enabled sources in sources.yaml order.
func (c *SourcesConfig) Names() []string {
	res := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		if s.IsEnabled() {
			res = append(res, s.Name)
		}
	}
	return res
}
