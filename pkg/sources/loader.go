package sources

// Loader loads the sources configuration from its backing store.
// The file-based implementation lives in internal/iosources.
type Loader interface {
	Load() (*SourcesConfig, error)
}
