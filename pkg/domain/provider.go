package domain

import "context"

// LineageProvider is the single external collaborator the pedigree engine
// depends on. Lookups are idempotent; callers may memoize them.
type LineageProvider interface {
	// GetLineage resolves the recorded parents of an animal. It fails with
	// a NotFoundError only when the identifier itself is unknown; an animal
	// with unrecorded parents returns empty Parentage fields.
	GetLineage(ctx context.Context, id string) (Parentage, error)
	// GetBreedingValues returns the animal's per-trait EBVs. Traits without
	// an estimate are simply absent from the map.
	GetBreedingValues(ctx context.Context, id string) (map[string]float64, error)
}

// AnimalFinder is an optional provider upgrade used to enrich pedigree nodes
// with descriptive, display-only detail.
type AnimalFinder interface {
	FindAnimal(ctx context.Context, id string) (Animal, bool)
}

// InbreedingSource is an optional provider upgrade serving previously
// recorded inbreeding coefficients, consumed as the F_A correction term.
type InbreedingSource interface {
	KnownInbreeding(ctx context.Context, id string) (float64, bool)
}

// Registry is the transactional animal store. Every mutation runs the
// configured rules engine before commit.
type Registry interface {
	LineageProvider
	AnimalFinder

	CreateAnimal(ctx context.Context, animal Animal) (Animal, Result, error)
	UpdateAnimal(ctx context.Context, id string, mutate func(*Animal) error) (Animal, Result, error)
	DeleteAnimal(ctx context.Context, id string) (Result, error)
	ListAnimals(ctx context.Context) []Animal
}
