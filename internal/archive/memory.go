package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"herdcore/pkg/domain"
)

// Compile-time contract assertion.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps archived plans in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	saved map[string]time.Time
	now   func() time.Time
}

// NewMemoryStore constructs an empty in-memory archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
		saved: make(map[string]time.Time),
		now:   time.Now,
	}
}

// Driver implements Store.
func (s *MemoryStore) Driver() Driver { return DriverMemory }

// SavePlan implements Store.
func (s *MemoryStore) SavePlan(_ context.Context, plan domain.MatingPlanResult) (Info, error) {
	record := PlanRecord{ID: uuid.NewString(), SavedAt: s.now().UTC(), Plan: plan}
	payload, err := json.Marshal(record)
	if err != nil {
		return Info{}, fmt.Errorf("encode plan: %w", err)
	}
	s.mu.Lock()
	s.blobs[record.ID] = payload
	s.saved[record.ID] = record.SavedAt
	s.mu.Unlock()
	return Info{ID: record.ID, Key: planKey(record.ID), Size: int64(len(payload)), SavedAt: record.SavedAt}, nil
}

// LoadPlan implements Store.
func (s *MemoryStore) LoadPlan(_ context.Context, id string) (PlanRecord, error) {
	s.mu.RLock()
	payload, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return PlanRecord{}, domain.NotFoundError{Kind: "plan", ID: id}
	}
	var record PlanRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return PlanRecord{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return record, nil
}

// ListPlans implements Store.
func (s *MemoryStore) ListPlans(_ context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Info, 0, len(s.blobs))
	for id, payload := range s.blobs {
		out = append(out, Info{ID: id, Key: planKey(id), Size: int64(len(payload)), SavedAt: s.saved[id]})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeletePlan implements Store.
func (s *MemoryStore) DeletePlan(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return false, nil
	}
	delete(s.blobs, id)
	delete(s.saved, id)
	return true, nil
}
