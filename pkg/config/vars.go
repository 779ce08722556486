package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "hsdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/hsdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/hsdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/hsdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/hsdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml file.
// Returns ~/.config/hsdb/sources.yaml by default.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}

// MappingFilePath returns the default path to the entity-mapping
// artifact. Returns ~/.config/hsdb/mapping.yaml by default.
func MappingFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "mapping.yaml")
}

// ExportDir returns the default directory for export snapshots.
// Returns ~/.local/share/hsdb/exports by default.
func ExportDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "exports")
}
