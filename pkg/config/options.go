package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per batched upsert.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptReconcileSeason restricts a run to one season.
// Runtime-only field - not in ToOptions().
func OptReconcileSeason(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Season", s) {
			c.Reconcile.Season = s
		}
	}
}

// OptReconcileSources restricts a run to a subset of source names.
// Empty slice means process all sources from sources.yaml.
// Runtime-only field - not in ToOptions().
func OptReconcileSources(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Reconcile.Sources = ss
		}
	}
}

// OptReconcileMappingFile sets the path to the entity-mapping artifact.
// Runtime-only field - not in ToOptions().
func OptReconcileMappingFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Mapping File", s) {
			c.Reconcile.MappingFile = s
		}
	}
}

// OptReconcileOutputDir sets the export output directory.
// Runtime-only field - not in ToOptions().
func OptReconcileOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Reconcile.OutputDir = s
		}
	}
}

// OptThresholds replaces the severity thresholds wholesale.
// Structural validity (ascending bounds) is checked by the severity
// classifier at run start, where a violation is fatal.
func OptThresholds(t ThresholdsConfig) Option {
	return func(c *Config) {
		c.Thresholds = t
	}
}

// OptTrustRanking sets the ordered source trust ranking.
func OptTrustRanking(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Trust.Ranking = ss
		}
	}
}

// OptQuality replaces quality scoring settings wholesale.
// Structural validity is checked by the quality scorer at run start.
func OptQuality(q QualityConfig) Option {
	return func(c *Config) {
		c.Quality = q
	}
}

// OptRetryAttempts sets the maximum number of tries per store operation.
func OptRetryAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Retry Attempts", i) {
			c.Retry.Attempts = i
		}
	}
}

// OptRetryBackoffMillis sets the initial backoff in milliseconds.
func OptRetryBackoffMillis(i int) Option {
	return func(c *Config) {
		if isValidInt("Retry Backoff", i) {
			c.Retry.BackoffMillis = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for per-entity
// processing. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
