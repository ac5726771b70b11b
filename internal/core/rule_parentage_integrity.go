package core

import (
	"context"
	"fmt"

	"herdcore/pkg/domain"
)

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(ParentageIntegrityRule())
	return engine
}

// ParentageIntegrityRule enforces sire/dam consistency on registry records:
// no self-parentage, no single animal serving as both parents, parent sex
// matching the slot, and parents born before their offspring. References to
// animals not yet registered are warnings only, since partial pedigrees are
// legitimate.
func ParentageIntegrityRule() domain.Rule {
	return parentageIntegrityRule{}
}

type parentageIntegrityRule struct{}

func (parentageIntegrityRule) Name() string { return "parentage_integrity" }

func (parentageIntegrityRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.After == nil {
			continue
		}
		animal := *change.After
		if animal.SireID == animal.ID || animal.DamID == animal.ID {
			res.Violations = append(res.Violations, parentageViolation(domain.SeverityBlock, animal.ID,
				fmt.Sprintf("animal %s references itself as a parent", animal.ID)))
		}
		if animal.SireID != "" && animal.SireID == animal.DamID {
			res.Violations = append(res.Violations, parentageViolation(domain.SeverityBlock, animal.ID,
				fmt.Sprintf("animal %s lists %s as both sire and dam", animal.ID, animal.SireID)))
		}
		checkParent(&res, view, animal, animal.SireID, "sire", domain.SexFemale)
		checkParent(&res, view, animal, animal.DamID, "dam", domain.SexMale)
	}
	return res, nil
}

// checkParent validates one parent slot. forbidden is the sex that cannot
// occupy the slot.
func checkParent(res *domain.Result, view domain.RuleView, child domain.Animal, parentID, role string, forbidden domain.Sex) {
	if parentID == "" || parentID == child.ID {
		return
	}
	parent, ok := view.FindAnimal(parentID)
	if !ok {
		res.Violations = append(res.Violations, parentageViolation(domain.SeverityWarn, child.ID,
			fmt.Sprintf("animal %s references unregistered %s %s", child.ID, role, parentID)))
		return
	}
	if parent.Sex == forbidden {
		res.Violations = append(res.Violations, parentageViolation(domain.SeverityBlock, child.ID,
			fmt.Sprintf("animal %s %s %s has sex %s", child.ID, role, parentID, parent.Sex)))
	}
	if parent.BirthDate != nil && child.BirthDate != nil && !parent.BirthDate.Before(*child.BirthDate) {
		res.Violations = append(res.Violations, parentageViolation(domain.SeverityBlock, child.ID,
			fmt.Sprintf("animal %s %s %s was not born before it", child.ID, role, parentID)))
	}
}

func parentageViolation(severity domain.Severity, animalID, message string) domain.Violation {
	return domain.Violation{
		Rule:     "parentage_integrity",
		Severity: severity,
		Message:  message,
		AnimalID: animalID,
	}
}
