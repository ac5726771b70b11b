// Package config provides herdcore's TOML configuration: registry backend
// selection, breeding defaults, archive backend, and metrics exporter.
package config

import (
	"fmt"

	"herdcore/pkg/domain"
)

// Registry driver names accepted in configuration.
const (
	RegistryDriverMemory   = "memory"
	RegistryDriverSQLite   = "sqlite"
	RegistryDriverPostgres = "postgres"
)

// Archive driver names accepted in configuration.
const (
	ArchiveDriverNone       = "none"
	ArchiveDriverMemory     = "memory"
	ArchiveDriverFilesystem = "fs"
	ArchiveDriverS3         = "s3"
)

// Metrics exporter names accepted in configuration.
const (
	MetricsExporterNone       = "none"
	MetricsExporterExpvar     = "expvar"
	MetricsExporterPrometheus = "prometheus"
)

// Config holds the complete application configuration.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Breeding BreedingConfig `toml:"breeding"`
	Archive  ArchiveConfig  `toml:"archive"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// RegistryConfig selects and parameterises the animal registry backend.
type RegistryConfig struct {
	Driver string `toml:"driver"`
	// Path is the database file location for the sqlite driver.
	Path string `toml:"path"`
	// DSN is the connection string for the postgres driver.
	DSN string `toml:"dsn"`
}

// BreedingConfig carries the planning defaults applied when a request
// leaves them unset.
type BreedingConfig struct {
	Generations    int                `toml:"generations"`
	MaxInbreeding  float64            `toml:"max_inbreeding"`
	PenaltyWeight  float64            `toml:"penalty_weight"`
	MaxDamsPerSire int                `toml:"max_dams_per_sire"`
	DefaultIndex   map[string]float64 `toml:"default_index"`
	// UseKnownAncestorInbreeding consults recorded coefficients as the
	// F_A correction term.
	UseKnownAncestorInbreeding bool `toml:"use_known_ancestor_inbreeding"`
}

// ArchiveConfig selects and parameterises the plan archive backend.
type ArchiveConfig struct {
	Driver string   `toml:"driver"`
	Root   string   `toml:"root"`
	S3     S3Config `toml:"s3"`
}

// S3Config parameterises the S3 archive driver.
type S3Config struct {
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	PathStyle bool   `toml:"path_style"`
}

// MetricsConfig selects the metrics exporter.
type MetricsConfig struct {
	Exporter string `toml:"exporter"`
	// ExpvarName overrides the published expvar variable name.
	ExpvarName string `toml:"expvar_name"`
}

// Default returns the configuration used when no file is present: an
// in-memory registry, three-generation pedigrees, and the standard
// inbreeding threshold.
func Default() Config {
	return Config{
		Registry: RegistryConfig{Driver: RegistryDriverMemory},
		Breeding: BreedingConfig{
			Generations:   3,
			MaxInbreeding: domain.ModerateRiskThreshold,
			PenaltyWeight: 10,
		},
		Archive: ArchiveConfig{Driver: ArchiveDriverNone},
		Metrics: MetricsConfig{Exporter: MetricsExporterNone},
	}
}

// Validate reports the first configuration error found.
func (c Config) Validate() error {
	switch c.Registry.Driver {
	case RegistryDriverMemory, RegistryDriverPostgres:
	case RegistryDriverSQLite:
		if c.Registry.Path == "" {
			return fmt.Errorf("registry: sqlite driver requires path")
		}
	default:
		return fmt.Errorf("registry: unknown driver %q", c.Registry.Driver)
	}
	if c.Breeding.Generations < 1 {
		return fmt.Errorf("breeding: generations must be at least 1")
	}
	if c.Breeding.MaxInbreeding <= 0 || c.Breeding.MaxInbreeding > 1 {
		return fmt.Errorf("breeding: max_inbreeding must be in (0, 1]")
	}
	if c.Breeding.PenaltyWeight < 0 {
		return fmt.Errorf("breeding: penalty_weight must not be negative")
	}
	if c.Breeding.MaxDamsPerSire < 0 {
		return fmt.Errorf("breeding: max_dams_per_sire must not be negative")
	}
	switch c.Archive.Driver {
	case ArchiveDriverNone, ArchiveDriverMemory, ArchiveDriverFilesystem:
	case ArchiveDriverS3:
		if c.Archive.S3.Bucket == "" {
			return fmt.Errorf("archive: s3 driver requires bucket")
		}
	default:
		return fmt.Errorf("archive: unknown driver %q", c.Archive.Driver)
	}
	switch c.Metrics.Exporter {
	case MetricsExporterNone, MetricsExporterExpvar, MetricsExporterPrometheus:
	default:
		return fmt.Errorf("metrics: unknown exporter %q", c.Metrics.Exporter)
	}
	return nil
}
