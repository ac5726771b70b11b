package breeding

import (
	"context"
	"fmt"
	"sort"

	"herdcore/internal/pedigree"
	"herdcore/pkg/domain"
)

// Defaults applied to zero-valued PlanRequest fields.
const (
	// DefaultMaxInbreeding is the projected-coefficient cutoff (1/16).
	DefaultMaxInbreeding = domain.ModerateRiskThreshold
	// DefaultPlanGenerations bounds pedigree depth during projection.
	DefaultPlanGenerations = 3
)

// PlanRequest describes one optimization run. Zero values fall back to the
// documented defaults; MaxDamsPerSire zero means unlimited.
type PlanRequest struct {
	SireIDs []string
	DamIDs  []string
	// Index maps trait codes to selection-index weights.
	Index          map[string]float64
	BreedingGoal   string
	MaxInbreeding  float64
	MaxDamsPerSire int
	Generations    int
	PenaltyWeight  float64
}

// Optimizer plans matings against a lineage provider.
type Optimizer struct {
	provider domain.LineageProvider
	calc     *pedigree.Calculator
}

// NewOptimizer constructs an optimizer. Calculator options control how
// ancestor self-inbreeding enters projected coefficients.
func NewOptimizer(provider domain.LineageProvider, opts ...pedigree.CalculatorOption) *Optimizer {
	return &Optimizer{
		provider: provider,
		calc:     pedigree.NewCalculator(provider, opts...),
	}
}

// OptimizeMatingPlan scores every sire-dam combination, reports pairs at or
// above the inbreeding cutoff as high risk, and greedily assigns dams to
// sires in descending score order under the per-sire quota. Selected pairs
// are ranked 1..k by descending score; dams with no placeable pairing are
// listed as unassigned. Empty pools yield an empty plan, never an error.
// The assignment is a greedy approximation, not a globally optimal one.
func (o *Optimizer) OptimizeMatingPlan(ctx context.Context, req PlanRequest) (domain.MatingPlanResult, error) {
	if req.MaxInbreeding <= 0 {
		req.MaxInbreeding = DefaultMaxInbreeding
	}
	if req.MaxDamsPerSire < 0 {
		return domain.MatingPlanResult{}, domain.InvalidArgumentError{Field: "max dams per sire", Reason: "must not be negative"}
	}
	if req.Generations <= 0 {
		req.Generations = DefaultPlanGenerations
	}
	if req.PenaltyWeight <= 0 {
		req.PenaltyWeight = DefaultInbreedingPenaltyWeight
	}

	result := domain.MatingPlanResult{
		Pairs:          []domain.MatingPair{},
		UnassignedDams: []string{},
		HighRiskPairs:  []domain.MatingPair{},
		BreedingGoal:   req.BreedingGoal,
		MaxInbreeding:  req.MaxInbreeding,
	}
	if len(req.SireIDs) == 0 || len(req.DamIDs) == 0 {
		result.UnassignedDams = append(result.UnassignedDams, req.DamIDs...)
		return result, nil
	}

	values := make(map[string]map[string]float64, len(req.SireIDs)+len(req.DamIDs))
	breedingValues := func(id string) map[string]float64 {
		if cached, ok := values[id]; ok {
			return cached
		}
		fetched, err := o.provider.GetBreedingValues(ctx, id)
		if err != nil {
			// Animals without retrievable estimates still participate;
			// their projections dilute toward zero.
			fetched = map[string]float64{}
		}
		values[id] = fetched
		return fetched
	}

	var eligible []domain.MatingPair
	for _, sireID := range req.SireIDs {
		for _, damID := range req.DamIDs {
			projection, err := o.calc.ProjectedOffspringInbreeding(ctx, sireID, damID, req.Generations)
			if err != nil {
				// An unresolvable parent sidelines the pair; the dam is
				// reported as unassigned rather than failing the plan.
				continue
			}
			projected := ProjectOffspringValues(breedingValues(sireID), breedingValues(damID))
			pair := domain.MatingPair{
				SireID:                   sireID,
				DamID:                    damID,
				ProjectedOffspringValues: projected,
				ProjectedInbreeding:      projection.Coefficient,
				InbreedingRisk:           projection.Risk,
				CompositeScore:           ScoreMating(projected, req.Index, projection.Coefficient, req.PenaltyWeight),
			}
			if projection.Coefficient >= req.MaxInbreeding {
				pair.Notes = fmt.Sprintf("projected inbreeding %.4f at or above threshold %.4f", projection.Coefficient, req.MaxInbreeding)
				result.HighRiskPairs = append(result.HighRiskPairs, pair)
				continue
			}
			eligible = append(eligible, pair)
		}
	}

	sortPairs(eligible)
	sortPairs(result.HighRiskPairs)

	damAssigned := make(map[string]bool, len(req.DamIDs))
	sireLoad := make(map[string]int, len(req.SireIDs))
	for _, pair := range eligible {
		if damAssigned[pair.DamID] {
			continue
		}
		if req.MaxDamsPerSire > 0 && sireLoad[pair.SireID] >= req.MaxDamsPerSire {
			continue
		}
		damAssigned[pair.DamID] = true
		sireLoad[pair.SireID]++
		pair.Rank = len(result.Pairs) + 1
		result.Pairs = append(result.Pairs, pair)
	}

	for _, damID := range req.DamIDs {
		if !damAssigned[damID] {
			result.UnassignedDams = append(result.UnassignedDams, damID)
		}
	}
	return result, nil
}

// sortPairs orders by descending score with identifier tie-breaks so plans
// are deterministic for equal-score pairs.
func sortPairs(pairs []domain.MatingPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].CompositeScore != pairs[j].CompositeScore {
			return pairs[i].CompositeScore > pairs[j].CompositeScore
		}
		if pairs[i].SireID != pairs[j].SireID {
			return pairs[i].SireID < pairs[j].SireID
		}
		return pairs[i].DamID < pairs[j].DamID
	})
}
