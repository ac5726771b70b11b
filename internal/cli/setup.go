// Package cli assembles configured herdcore services for the command-line
// entry points: registry and archive backend selection, metrics exporter
// wiring, and registry seeding from JSON files.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"herdcore/internal/archive"
	"herdcore/internal/config"
	"herdcore/internal/core"
	"herdcore/internal/infra/registry/memory"
	"herdcore/internal/infra/registry/postgres"
	"herdcore/internal/infra/registry/sqlite"
	"herdcore/internal/pedigree"
	"herdcore/pkg/domain"
)

// StdLogger adapts the standard library logger to the service contract.
type StdLogger struct {
	*log.Logger
}

// NewStdLogger wraps a stderr logger with the given prefix.
func NewStdLogger(prefix string) StdLogger {
	return StdLogger{Logger: log.New(os.Stderr, prefix, log.LstdFlags)}
}

// Infof implements core.Logger.
func (l StdLogger) Infof(format string, args ...any) { l.Printf("INFO "+format, args...) }

// Warnf implements core.Logger.
func (l StdLogger) Warnf(format string, args ...any) { l.Printf("WARN "+format, args...) }

// Errorf implements core.Logger.
func (l StdLogger) Errorf(format string, args ...any) { l.Printf("ERROR "+format, args...) }

// OpenRegistry constructs the configured registry backend with the default
// rules engine. The returned closer is a no-op for the memory driver.
func OpenRegistry(ctx context.Context, cfg config.Config) (domain.Registry, func() error, error) {
	engine := core.NewDefaultRulesEngine()
	switch cfg.Registry.Driver {
	case config.RegistryDriverMemory:
		return memory.NewStore(engine), func() error { return nil }, nil
	case config.RegistryDriverSQLite:
		store, err := sqlite.NewStore(cfg.Registry.Path, engine)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.RegistryDriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.Registry.DSN, engine)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown registry driver %q", cfg.Registry.Driver)
	}
}

// OpenArchive constructs the configured plan archive, or nil when archival
// is disabled.
func OpenArchive(ctx context.Context, cfg config.Config) (archive.Store, error) {
	switch cfg.Archive.Driver {
	case config.ArchiveDriverNone, "":
		return nil, nil
	case config.ArchiveDriverMemory:
		return archive.NewMemoryStore(), nil
	case config.ArchiveDriverFilesystem:
		return archive.NewFSStore(cfg.Archive.Root)
	case config.ArchiveDriverS3:
		return archive.NewS3Store(ctx, archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Region:    cfg.Archive.S3.Region,
			Endpoint:  cfg.Archive.S3.Endpoint,
			PathStyle: cfg.Archive.S3.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown archive driver %q", cfg.Archive.Driver)
	}
}

// BuildService wires registry, archive, metrics, and calculator options
// into a ready service. The returned closer releases backend handles.
func BuildService(ctx context.Context, cfg config.Config, logger core.Logger) (*core.Service, func() error, error) {
	registry, closeRegistry, err := OpenRegistry(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := OpenArchive(ctx, cfg)
	if err != nil {
		_ = closeRegistry()
		return nil, nil, err
	}

	opts := []core.Option{
		core.WithLogger(logger),
		core.WithDefaultGenerations(cfg.Breeding.Generations),
	}
	if store != nil {
		opts = append(opts, core.WithArchive(store))
	}
	if cfg.Breeding.UseKnownAncestorInbreeding {
		opts = append(opts, core.WithCalculatorOptions(pedigree.WithKnownAncestorInbreeding()))
	}
	switch cfg.Metrics.Exporter {
	case config.MetricsExporterExpvar:
		opts = append(opts, core.WithMetrics(core.NewExpvarMetricsRecorder(cfg.Metrics.ExpvarName)))
	case config.MetricsExporterPrometheus:
		recorder, err := core.NewPrometheusMetricsRecorder(prometheus.DefaultRegisterer)
		if err != nil {
			_ = closeRegistry()
			return nil, nil, fmt.Errorf("register prometheus metrics: %w", err)
		}
		opts = append(opts, core.WithMetrics(recorder))
	}

	return core.NewService(registry, opts...), closeRegistry, nil
}

// SeedRegistry loads a JSON array of animal records into the registry,
// returning the number created. Rule warnings are tolerated; blocking
// violations abort the seed.
func SeedRegistry(ctx context.Context, registry domain.Registry, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var animals []domain.Animal
	if err := json.Unmarshal(data, &animals); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	for i, animal := range animals {
		if _, _, err := registry.CreateAnimal(ctx, animal); err != nil {
			return i, fmt.Errorf("seed animal %s: %w", animal.ID, err)
		}
	}
	return len(animals), nil
}
