package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"herdcore/pkg/domain"
)

// Compile-time contract assertion.
var _ Store = (*FSStore)(nil)

// FSStore archives plans as JSON files under a root directory. It is
// intentionally simple and not safe against concurrent writers beyond
// per-file creation.
type FSStore struct {
	root string
	now  func() time.Time
}

// NewFSStore returns a filesystem archive rooted at path, creating the
// directory if needed.
func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		root = "./planarchive"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create archive root: %w", err)
	}
	return &FSStore{root: root, now: time.Now}, nil
}

// Driver implements Store.
func (s *FSStore) Driver() Driver { return DriverFilesystem }

func (s *FSStore) pathFor(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", domain.InvalidArgumentError{Field: "plan id", Reason: "must not be empty"}
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return "", domain.InvalidArgumentError{Field: "plan id", Reason: "must not contain path separators"}
	}
	return filepath.Join(s.root, id+".json"), nil
}

// SavePlan implements Store.
func (s *FSStore) SavePlan(_ context.Context, plan domain.MatingPlanResult) (Info, error) {
	record := PlanRecord{ID: uuid.NewString(), SavedAt: s.now().UTC(), Plan: plan}
	path, err := s.pathFor(record.ID)
	if err != nil {
		return Info{}, err
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return Info{}, fmt.Errorf("encode plan: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return Info{}, fmt.Errorf("write plan %s: %w", record.ID, err)
	}
	return Info{ID: record.ID, Key: planKey(record.ID), Size: int64(len(payload)), SavedAt: record.SavedAt}, nil
}

// LoadPlan implements Store.
func (s *FSStore) LoadPlan(_ context.Context, id string) (PlanRecord, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return PlanRecord{}, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PlanRecord{}, domain.NotFoundError{Kind: "plan", ID: id}
		}
		return PlanRecord{}, fmt.Errorf("read plan %s: %w", id, err)
	}
	var record PlanRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return PlanRecord{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return record, nil
}

// ListPlans implements Store.
func (s *FSStore) ListPlans(_ context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list archive root: %w", err)
	}
	out := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		out = append(out, Info{
			ID:      id,
			Key:     planKey(id),
			Size:    info.Size(),
			SavedAt: info.ModTime().UTC(),
		})
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
func (s *FSStore) DeletePlan(_ context.Context, id string) (bool, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete plan %s: %w", id, err)
	}
	return true, nil
}
