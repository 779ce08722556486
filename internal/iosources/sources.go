// Package iosources loads the sources configuration from the config
// directory. This is an impure I/O package.
package iosources

import (
	"os"

	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/mapping"
	"github.com/hoopsync/hsdb/pkg/sources"
)

type iosources struct {
	cfg *config.Config
}

// New creates a file-based sources loader.
func New(cfg *config.Config) sources.Loader {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	data, err := os.ReadFile(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return sources.Parse(data)
}

// LoadMapping reads and validates the entity-mapping artifact. An
// empty path falls back to the default location in the config
// directory.
func LoadMapping(cfg *config.Config) (*mapping.Mapper, error) {
	path := cfg.Reconcile.MappingFile
	if path == "" {
		path = config.MappingFilePath(cfg.HomeDir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mapping.NotFoundError(path, err)
	}
	return mapping.Parse(data)
}
