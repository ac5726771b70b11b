package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Registry.Driver != RegistryDriverMemory {
		t.Fatalf("registry driver: %q", cfg.Registry.Driver)
	}
	if cfg.Breeding.Generations != 3 || cfg.Breeding.MaxInbreeding != 0.0625 {
		t.Fatalf("breeding defaults: %+v", cfg.Breeding)
	}
	if cfg.Archive.Driver != ArchiveDriverNone || cfg.Metrics.Exporter != MetricsExporterNone {
		t.Fatalf("driver defaults: %+v / %+v", cfg.Archive, cfg.Metrics)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herdcore.toml")
	doc := `
[registry]
driver = "sqlite"
path = "herd.db"

[breeding]
generations = 5
max_inbreeding = 0.125
use_known_ancestor_inbreeding = true

[breeding.default_index]
milk_yield = 0.5
fertility = 2.0

[archive]
driver = "fs"
root = "/var/lib/herdcore/plans"

[metrics]
exporter = "expvar"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Registry.Driver != RegistryDriverSQLite || cfg.Registry.Path != "herd.db" {
		t.Fatalf("registry: %+v", cfg.Registry)
	}
	if cfg.Breeding.Generations != 5 || cfg.Breeding.MaxInbreeding != 0.125 {
		t.Fatalf("breeding: %+v", cfg.Breeding)
	}
	if !cfg.Breeding.UseKnownAncestorInbreeding {
		t.Fatalf("use_known_ancestor_inbreeding not decoded")
	}
	if cfg.Breeding.DefaultIndex["fertility"] != 2 {
		t.Fatalf("default index: %+v", cfg.Breeding.DefaultIndex)
	}
	// Unset sections keep their defaults.
	if cfg.Breeding.PenaltyWeight != 10 {
		t.Fatalf("penalty weight default lost: %v", cfg.Breeding.PenaltyWeight)
	}
	if cfg.Archive.Driver != ArchiveDriverFilesystem || cfg.Metrics.Exporter != MetricsExporterExpvar {
		t.Fatalf("drivers: %+v / %+v", cfg.Archive, cfg.Metrics)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing explicit path")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown registry driver", func(c *Config) { c.Registry.Driver = "oracle" }, "unknown driver"},
		{"sqlite without path", func(c *Config) { c.Registry.Driver = RegistryDriverSQLite }, "requires path"},
		{"zero generations", func(c *Config) { c.Breeding.Generations = 0 }, "at least 1"},
		{"threshold too high", func(c *Config) { c.Breeding.MaxInbreeding = 1.5 }, "must be in (0, 1]"},
		{"threshold zero", func(c *Config) { c.Breeding.MaxInbreeding = 0 }, "must be in (0, 1]"},
		{"negative penalty", func(c *Config) { c.Breeding.PenaltyWeight = -1 }, "not be negative"},
		{"negative quota", func(c *Config) { c.Breeding.MaxDamsPerSire = -1 }, "not be negative"},
		{"s3 without bucket", func(c *Config) { c.Archive.Driver = ArchiveDriverS3 }, "requires bucket"},
		{"unknown archive driver", func(c *Config) { c.Archive.Driver = "tape" }, "unknown driver"},
		{"unknown exporter", func(c *Config) { c.Metrics.Exporter = "statsd" }, "unknown exporter"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}
