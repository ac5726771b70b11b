package domain

import "time"

// Sex identifies the recorded sex of an animal.
type Sex string

// Recorded animal sexes used by parentage validation.
const (
	// SexMale marks animals eligible to appear as a sire.
	SexMale Sex = "male"
	// SexFemale marks animals eligible to appear as a dam.
	SexFemale Sex = "female"
	// SexUnknown marks animals whose sex was not recorded.
	SexUnknown Sex = "unknown"
)

// Base contains common fields for all registry records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Animal is a registered individual with its recorded parentage and
// estimated breeding values. Records are validated once on ingestion;
// the pedigree engine consumes them through the LineageProvider contract.
type Animal struct {
	Base
	Name      string     `json:"name"`
	Breed     string     `json:"breed"`
	Sex       Sex        `json:"sex"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	// SireID and DamID reference registered parents; empty means the
	// parent is unrecorded, which terminates pedigree expansion on that
	// branch without error.
	SireID   string `json:"sire_id,omitempty"`
	DamID    string `json:"dam_id,omitempty"`
	Facility string `json:"facility,omitempty"`
	// GeneticIndex is a display-only composite merit figure.
	GeneticIndex *float64 `json:"genetic_index,omitempty"`
	// BreedingValues maps trait codes to per-trait EBVs.
	BreedingValues map[string]float64 `json:"breeding_values,omitempty"`
	// InbreedingCoefficient is the animal's own recorded F, when known
	// from an earlier evaluation. Used as the ancestor correction term.
	InbreedingCoefficient *float64 `json:"inbreeding_coefficient,omitempty"`
}

// Node converts the animal record into a pedigree node at the given
// generation offset.
func (a Animal) Node(generation int) PedigreeNode {
	return PedigreeNode{
		ID:           a.ID,
		Generation:   generation,
		Name:         a.Name,
		Breed:        a.Breed,
		Sex:          a.Sex,
		BirthDate:    a.BirthDate,
		Facility:     a.Facility,
		GeneticIndex: a.GeneticIndex,
	}
}

// Parentage is the lineage record served by a provider for one animal.
// Empty identifiers mean the parent is unknown.
type Parentage struct {
	SireID string `json:"sire_id,omitempty"`
	DamID  string `json:"dam_id,omitempty"`
}
