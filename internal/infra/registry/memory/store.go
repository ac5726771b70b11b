// Package memory provides the in-memory animal registry. It is the
// reference Registry implementation: durable stores embed it and snapshot
// its state after successful mutations.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"herdcore/pkg/domain"
)

// Compile-time contract assertions.
var (
	_ domain.Registry         = (*Store)(nil)
	_ domain.InbreedingSource = (*Store)(nil)
)

// Store keeps animal records in memory, guarding every mutation with the
// configured rules engine. Mutations are atomic: state is staged, rules are
// evaluated against the staged view, and only a non-blocking result commits.
type Store struct {
	mu      sync.RWMutex
	engine  *domain.RulesEngine
	animals map[string]domain.Animal
	now     func() time.Time
}

// NewStore constructs an empty registry using the given rules engine.
// A nil engine disables rule evaluation.
func NewStore(engine *domain.RulesEngine) *Store {
	return &Store{
		engine:  engine,
		animals: make(map[string]domain.Animal),
		now:     time.Now,
	}
}

// CreateAnimal registers a new record, minting an identifier when absent.
func (s *Store) CreateAnimal(ctx context.Context, animal domain.Animal) (domain.Animal, domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if animal.ID == "" {
		animal.ID = uuid.NewString()
	}
	if _, exists := s.animals[animal.ID]; exists {
		return domain.Animal{}, domain.Result{}, fmt.Errorf("animal %s already registered", animal.ID)
	}
	if animal.Sex == "" {
		animal.Sex = domain.SexUnknown
	}
	now := s.now().UTC()
	animal.CreatedAt = now
	animal.UpdatedAt = now

	staged := s.cloneState()
	staged[animal.ID] = cloneAnimal(animal)
	res, err := s.evaluate(ctx, staged, []domain.Change{{Action: domain.ActionCreate, After: &animal}})
	if err != nil {
		return domain.Animal{}, res, err
	}
	s.animals = staged
	return cloneAnimal(animal), res, nil
}

// UpdateAnimal applies the mutator to a copy of the record, revalidates,
// and commits. The identifier is immutable.
func (s *Store) UpdateAnimal(ctx context.Context, id string, mutate func(*domain.Animal) error) (domain.Animal, domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.animals[id]
	if !ok {
		return domain.Animal{}, domain.Result{}, domain.NotFoundError{Kind: "animal", ID: id}
	}
	before := cloneAnimal(current)
	updated := cloneAnimal(current)
	if mutate != nil {
		if err := mutate(&updated); err != nil {
			return domain.Animal{}, domain.Result{}, err
		}
	}
	if updated.ID != id {
		return domain.Animal{}, domain.Result{}, domain.InvalidArgumentError{Field: "id", Reason: "must not change during update"}
	}
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now().UTC()

	staged := s.cloneState()
	staged[id] = cloneAnimal(updated)
	res, err := s.evaluate(ctx, staged, []domain.Change{{Action: domain.ActionUpdate, Before: &before, After: &updated}})
	if err != nil {
		return domain.Animal{}, res, err
	}
	s.animals = staged
	return cloneAnimal(updated), res, nil
}

// DeleteAnimal removes a record.
func (s *Store) DeleteAnimal(ctx context.Context, id string) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.animals[id]
	if !ok {
		return domain.Result{}, domain.NotFoundError{Kind: "animal", ID: id}
	}
	before := cloneAnimal(current)
	staged := s.cloneState()
	delete(staged, id)
	res, err := s.evaluate(ctx, staged, []domain.Change{{Action: domain.ActionDelete, Before: &before}})
	if err != nil {
		return res, err
	}
	s.animals = staged
	return res, nil
}

// FindAnimal returns a copy of the record, when registered.
func (s *Store) FindAnimal(_ context.Context, id string) (domain.Animal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	animal, ok := s.animals[id]
	if !ok {
		return domain.Animal{}, false
	}
	return cloneAnimal(animal), true
}

// ListAnimals returns copies of every record, sorted by identifier.
func (s *Store) ListAnimals(_ context.Context) []domain.Animal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Animal, 0, len(s.animals))
	for _, animal := range s.animals {
		out = append(out, cloneAnimal(animal))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetLineage serves the pedigree engine's provider contract.
func (s *Store) GetLineage(_ context.Context, id string) (domain.Parentage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	animal, ok := s.animals[id]
	if !ok {
		return domain.Parentage{}, domain.NotFoundError{Kind: "animal", ID: id}
	}
	return domain.Parentage{SireID: animal.SireID, DamID: animal.DamID}, nil
}

// GetBreedingValues returns a copy of the animal's per-trait EBVs.
func (s *Store) GetBreedingValues(_ context.Context, id string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	animal, ok := s.animals[id]
	if !ok {
		return nil, domain.NotFoundError{Kind: "animal", ID: id}
	}
	values := make(map[string]float64, len(animal.BreedingValues))
	for trait, value := range animal.BreedingValues {
		values[trait] = value
	}
	return values, nil
}

// KnownInbreeding reports a previously recorded coefficient, if any.
func (s *Store) KnownInbreeding(_ context.Context, id string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	animal, ok := s.animals[id]
	if !ok || animal.InbreedingCoefficient == nil {
		return 0, false
	}
	return *animal.InbreedingCoefficient, true
}

// Snapshot is the serializable registry state used by durable stores.
type Snapshot struct {
	Animals []domain.Animal `json:"animals"`
}

// ExportSnapshot copies the current state, sorted by identifier.
func (s *Store) ExportSnapshot() Snapshot {
	return Snapshot{Animals: s.ListAnimals(context.Background())}
}

// ImportSnapshot replaces the current state without rule evaluation;
// snapshots were validated when first committed.
func (s *Store) ImportSnapshot(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := make(map[string]domain.Animal, len(snapshot.Animals))
	for _, animal := range snapshot.Animals {
		state[animal.ID] = cloneAnimal(animal)
	}
	s.animals = state
}

// SetClock overrides the timestamp source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Store) evaluate(ctx context.Context, staged map[string]domain.Animal, changes []domain.Change) (domain.Result, error) {
	if s.engine == nil {
		return domain.Result{}, nil
	}
	res, err := s.engine.Evaluate(ctx, stateView{animals: staged}, changes)
	if err != nil {
		return domain.Result{}, err
	}
	if res.HasBlocking() {
		return res, domain.RuleViolationError{Result: res}
	}
	return res, nil
}

func (s *Store) cloneState() map[string]domain.Animal {
	state := make(map[string]domain.Animal, len(s.animals))
	for id, animal := range s.animals {
		state[id] = cloneAnimal(animal)
	}
	return state
}

// stateView adapts staged state to the rules engine's read-only contract.
type stateView struct {
	animals map[string]domain.Animal
}

func (v stateView) ListAnimals() []domain.Animal {
	out := make([]domain.Animal, 0, len(v.animals))
	for _, animal := range v.animals {
		out = append(out, cloneAnimal(animal))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v stateView) FindAnimal(id string) (domain.Animal, bool) {
	animal, ok := v.animals[id]
	if !ok {
		return domain.Animal{}, false
	}
	return cloneAnimal(animal), true
}

func cloneAnimal(animal domain.Animal) domain.Animal {
	out := animal
	if animal.BirthDate != nil {
		birth := *animal.BirthDate
		out.BirthDate = &birth
	}
	if animal.GeneticIndex != nil {
		index := *animal.GeneticIndex
		out.GeneticIndex = &index
	}
	if animal.InbreedingCoefficient != nil {
		coefficient := *animal.InbreedingCoefficient
		out.InbreedingCoefficient = &coefficient
	}
	if animal.BreedingValues != nil {
		values := make(map[string]float64, len(animal.BreedingValues))
		for trait, value := range animal.BreedingValues {
			values[trait] = value
		}
		out.BreedingValues = values
	}
	return out
}
