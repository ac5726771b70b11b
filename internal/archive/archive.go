// Package archive persists finished mating plans as JSON documents across
// pluggable storage backends: in-memory (tests), local filesystem, and
// S3-compatible object storage.
package archive

import (
	"context"
	"errors"
	"time"

	"herdcore/pkg/domain"
)

// Driver identifies a concrete archive backend.
type Driver string

const (
	// DriverMemory is the in-memory backend used in tests.
	DriverMemory Driver = "memory"
	// DriverFilesystem is the local filesystem backend (default, dev).
	DriverFilesystem Driver = "fs"
	// DriverS3 is an S3 / MinIO compatible backend.
	DriverS3 Driver = "s3"
)

// ErrUnsupported is returned when an optional capability is not available
// on the active backend.
var ErrUnsupported = errors.New("archive: unsupported operation")

// PlanRecord is the stored form of one archived plan.
type PlanRecord struct {
	ID      string                  `json:"id"`
	SavedAt time.Time               `json:"saved_at"`
	Plan    domain.MatingPlanResult `json:"plan"`
}

// Info describes one archived plan without its payload.
type Info struct {
	ID      string    `json:"id"`
	Key     string    `json:"key"`
	Size    int64     `json:"size_bytes"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is the archival contract consumed by the service layer.
type Store interface {
	// SavePlan assigns the plan an identifier and persists it.
	SavePlan(ctx context.Context, plan domain.MatingPlanResult) (Info, error)
	// LoadPlan retrieves an archived plan by identifier.
	LoadPlan(ctx context.Context, id string) (PlanRecord, error)
	// ListPlans enumerates archived plans, newest first.
	ListPlans(ctx context.Context) ([]Info, error)
	// DeletePlan removes an archived plan, reporting whether it existed.
	DeletePlan(ctx context.Context, id string) (bool, error)
	Driver() Driver
}

// planKey maps an identifier to its object key.
func planKey(id string) string {
	return "plans/" + id + ".json"
}
