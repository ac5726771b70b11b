// Package postgres provides a Postgres-backed persistent registry that
// mirrors the in-memory semantics, snapshotting state after each
// successful mutation.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"herdcore/internal/infra/registry/memory"
	"herdcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Registry = (*Store)(nil)

const (
	driverName = "pgx"
	// defaultDSN keeps local development friction low; production supplies
	// an explicit DSN via configuration.
	defaultDSN    = "postgres://localhost/herdcore?sslmode=disable"
	animalsBucket = "animals"
)

// Store persists registry state to Postgres while reusing the in-memory
// implementation for transactions and rule evaluation.
type Store struct {
	*memory.Store
	db *sql.DB
}

// NewStore opens a Postgres-backed registry using the provided DSN (falling
// back to a local default), ensures the snapshot table exists, and hydrates
// the in-memory registry from any existing snapshot.
func NewStore(ctx context.Context, dsn string, engine *domain.RulesEngine) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS registry_state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create registry_state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// CreateAnimal registers a record and snapshots on success.
func (s *Store) CreateAnimal(ctx context.Context, animal domain.Animal) (domain.Animal, domain.Result, error) {
	created, res, err := s.Store.CreateAnimal(ctx, animal)
	if err != nil {
		return created, res, err
	}
	return created, res, s.persist(ctx)
}

// UpdateAnimal mutates a record and snapshots on success.
func (s *Store) UpdateAnimal(ctx context.Context, id string, mutate func(*domain.Animal) error) (domain.Animal, domain.Result, error) {
	updated, res, err := s.Store.UpdateAnimal(ctx, id, mutate)
	if err != nil {
		return updated, res, err
	}
	return updated, res, s.persist(ctx)
}

// DeleteAnimal removes a record and snapshots on success.
func (s *Store) DeleteAnimal(ctx context.Context, id string) (domain.Result, error) {
	res, err := s.Store.DeleteAnimal(ctx, id)
	if err != nil {
		return res, err
	}
	return res, s.persist(ctx)
}

func (s *Store) load(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM registry_state WHERE bucket = $1`, animalsBucket)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("select registry state: %w", err)
	}
	var snapshot memory.Snapshot
	if err := json.Unmarshal(payload, &snapshot.Animals); err != nil {
		return fmt.Errorf("decode animals: %w", err)
	}
	s.ImportSnapshot(snapshot)
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	snapshot := s.ExportSnapshot()
	payload, err := json.Marshal(snapshot.Animals)
	if err != nil {
		return fmt.Errorf("encode animals: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO registry_state (bucket, payload) VALUES ($1, $2)
		ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload`, animalsBucket, payload); err != nil {
		return fmt.Errorf("persist registry state: %w", err)
	}
	return nil
}
