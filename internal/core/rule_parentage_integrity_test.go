package core

import (
	"context"
	"testing"
	"time"

	"herdcore/pkg/domain"
)

type herdView map[string]domain.Animal

func (v herdView) ListAnimals() []domain.Animal {
	out := make([]domain.Animal, 0, len(v))
	for _, animal := range v {
		out = append(out, animal)
	}
	return out
}

func (v herdView) FindAnimal(id string) (domain.Animal, bool) {
	animal, ok := v[id]
	return animal, ok
}

func birthDate(year int) *time.Time {
	d := time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestParentageIntegrityRule(t *testing.T) {
	view := herdView{
		"bull": {Base: domain.Base{ID: "bull"}, Sex: domain.SexMale, BirthDate: birthDate(2018)},
		"cow":  {Base: domain.Base{ID: "cow"}, Sex: domain.SexFemale, BirthDate: birthDate(2019)},
	}
	rule := ParentageIntegrityRule()

	cases := []struct {
		name         string
		animal       domain.Animal
		wantBlocking bool
		wantWarnings int
	}{
		{
			name:   "clean parentage",
			animal: domain.Animal{Base: domain.Base{ID: "calf"}, SireID: "bull", DamID: "cow", BirthDate: birthDate(2023)},
		},
		{
			name:         "self as parent",
			animal:       domain.Animal{Base: domain.Base{ID: "calf"}, SireID: "calf"},
			wantBlocking: true,
		},
		{
			name:         "same animal both slots",
			animal:       domain.Animal{Base: domain.Base{ID: "calf"}, SireID: "bull", DamID: "bull"},
			wantBlocking: true,
		},
		{
			name:         "female sire",
			animal:       domain.Animal{Base: domain.Base{ID: "calf"}, SireID: "cow"},
			wantBlocking: true,
		},
		{
			name:         "male dam",
			animal:       domain.Animal{Base: domain.Base{ID: "calf"}, DamID: "bull"},
			wantBlocking: true,
		},
		{
			name:         "parent born after child",
			animal:       domain.Animal{Base: domain.Base{ID: "calf"}, SireID: "bull", BirthDate: birthDate(2017)},
			wantBlocking: true,
		},
		{
			name:         "unregistered parent warns only",
			animal:       domain.Animal{Base: domain.Base{ID: "calf"}, SireID: "stray"},
			wantWarnings: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			animal := tc.animal
			res, err := rule.Evaluate(context.Background(), view, []domain.Change{
				{Action: domain.ActionCreate, After: &animal},
			})
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if res.HasBlocking() != tc.wantBlocking {
				t.Fatalf("blocking: got %v, want %v (%+v)", res.HasBlocking(), tc.wantBlocking, res.Violations)
			}
			var warnings int
			for _, violation := range res.Violations {
				if violation.Severity == domain.SeverityWarn {
					warnings++
				}
			}
			if warnings != tc.wantWarnings {
				t.Fatalf("warnings: got %d, want %d (%+v)", warnings, tc.wantWarnings, res.Violations)
			}
		})
	}
}

func TestParentageIntegrityIgnoresDeletes(t *testing.T) {
	rule := ParentageIntegrityRule()
	res, err := rule.Evaluate(context.Background(), herdView{}, []domain.Change{
		{Action: domain.ActionDelete, Before: &domain.Animal{Base: domain.Base{ID: "gone"}, SireID: "gone"}},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("delete changes must not be validated: %+v", res.Violations)
	}
}
