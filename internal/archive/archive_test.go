package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"herdcore/pkg/domain"
)

func testPlan(goal string) domain.MatingPlanResult {
	return domain.MatingPlanResult{
		Pairs: []domain.MatingPair{{
			SireID:              "s1",
			DamID:               "d1",
			ProjectedInbreeding: 0.03125,
			InbreedingRisk:      domain.RiskLow,
			CompositeScore:      42,
			Rank:                1,
		}},
		UnassignedDams: []string{"d2"},
		HighRiskPairs:  []domain.MatingPair{},
		BreedingGoal:   goal,
		MaxInbreeding:  0.0625,
	}
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	fsStore, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"fs":     fsStore,
	}
}

func TestSaveLoadDeleteAcrossBackends(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			info, err := store.SavePlan(context.Background(), testPlan("spring plan"))
			if err != nil {
				t.Fatalf("save: %v", err)
			}
			if info.ID == "" || info.Size == 0 {
				t.Fatalf("incomplete info: %+v", info)
			}
			if info.Key != "plans/"+info.ID+".json" {
				t.Fatalf("key: got %q", info.Key)
			}

			record, err := store.LoadPlan(context.Background(), info.ID)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if record.ID != info.ID || record.Plan.BreedingGoal != "spring plan" {
				t.Fatalf("record: %+v", record)
			}
			if len(record.Plan.Pairs) != 1 || record.Plan.Pairs[0].SireID != "s1" {
				t.Fatalf("payload: %+v", record.Plan)
			}

			removed, err := store.DeletePlan(context.Background(), info.ID)
			if err != nil || !removed {
				t.Fatalf("delete: removed=%v err=%v", removed, err)
			}
			removed, err = store.DeletePlan(context.Background(), info.ID)
			if err != nil || removed {
				t.Fatalf("second delete: removed=%v err=%v", removed, err)
			}

			var notFound domain.NotFoundError
			if _, err := store.LoadPlan(context.Background(), info.ID); !errors.As(err, &notFound) {
				t.Fatalf("expected NotFoundError after delete, got %v", err)
			}
		})
	}
}

func TestListPlansNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	first, err := store.SavePlan(context.Background(), testPlan("first"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.SavePlan(context.Background(), testPlan("second"))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}

	infos, err := store.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("list size: %d", len(infos))
	}
	if infos[0].ID != second.ID || infos[1].ID != first.ID {
		t.Fatalf("list order: %+v", infos)
	}
}

func TestFSStoreRejectsPathTraversal(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	for _, id := range []string{"", "  ", "../escape", "a/b", `a\b`} {
		var invalid domain.InvalidArgumentError
		if _, err := store.LoadPlan(context.Background(), id); !errors.As(err, &invalid) {
			t.Fatalf("id %q: expected InvalidArgumentError, got %v", id, err)
		}
	}
}

func TestDriverIdentity(t *testing.T) {
	if NewMemoryStore().Driver() != DriverMemory {
		t.Fatalf("memory driver mismatch")
	}
	fsStore, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	if fsStore.Driver() != DriverFilesystem {
		t.Fatalf("fs driver mismatch")
	}
}
