// Package sqlite provides a SQLite-backed persistent registry. It reuses
// the in-memory registry for transactional semantics and snapshots the full
// state to a single table after every successful mutation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"herdcore/internal/infra/registry/memory"
	"herdcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Registry = (*Store)(nil)

const animalsBucket = "animals"

// Store persists the in-memory registry state as a JSON blob per bucket.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) a snapshotting SQLite-backed registry.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "herdcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS registry_state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create registry_state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

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

func (s *Store) load() error {
	row := s.db.QueryRow(`SELECT payload FROM registry_state WHERE bucket = ?`, animalsBucket)
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
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportSnapshot()
	payload, err := json.Marshal(snapshot.Animals)
	if err != nil {
		return fmt.Errorf("encode animals: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO registry_state (bucket, payload) VALUES (?, ?)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`, animalsBucket, payload); err != nil {
		return fmt.Errorf("persist registry state: %w", err)
	}
	return nil
}
