package domain

// RiskLevel classifies an inbreeding coefficient against fixed thresholds.
type RiskLevel string

// Risk classifications derived from Wright's coefficient.
const (
	// RiskLow covers coefficients below 1/16.
	RiskLow RiskLevel = "LOW"
	// RiskModerate covers coefficients in [1/16, 1/8).
	RiskModerate RiskLevel = "MODERATE"
	// RiskHigh covers coefficients of 1/8 and above.
	RiskHigh RiskLevel = "HIGH"
)

// Risk thresholds shared by classification and plan optimization.
const (
	// ModerateRiskThreshold is the lower bound of the moderate band (1/16).
	ModerateRiskThreshold = 0.0625
	// HighRiskThreshold is the lower bound of the high band (1/8).
	HighRiskThreshold = 0.125
)

// ClassifyRisk maps a coefficient to its risk band. The mapping is a pure
// function of the coefficient.
func ClassifyRisk(coefficient float64) RiskLevel {
	switch {
	case coefficient >= HighRiskThreshold:
		return RiskHigh
	case coefficient >= ModerateRiskThreshold:
		return RiskModerate
	default:
		return RiskLow
	}
}

// AncestorContribution records how one common ancestor contributes to a
// coefficient: every enumerated path-length pair and the summed term.
type AncestorContribution struct {
	AncestorID string `json:"ancestor_id"`
	// SirePathLengths and DamPathLengths hold the generation distance of
	// every distinct tree-path to the ancestor through each side.
	SirePathLengths []int `json:"sire_path_lengths"`
	DamPathLengths  []int `json:"dam_path_lengths"`
	// AncestorInbreeding is the F_A correction applied, zero unless the
	// ancestor's own coefficient was known or recursively computed.
	AncestorInbreeding float64 `json:"ancestor_inbreeding"`
	Contribution       float64 `json:"contribution"`
}

// InbreedingResult is the outcome of one inbreeding calculation. For a
// hypothetical mating SubjectID carries a synthetic "sire x dam (projected)"
// label so callers can tell projections from real-animal results.
type InbreedingResult struct {
	SubjectID     string                 `json:"subject_id"`
	Coefficient   float64                `json:"coefficient"`
	Risk          RiskLevel              `json:"risk_level"`
	Contributions []AncestorContribution `json:"common_ancestors"`
	Pedigree      *PedigreeTree          `json:"pedigree,omitempty"`
}

// CommonAncestorIDs lists the contributing ancestor identifiers in
// contribution order.
func (r InbreedingResult) CommonAncestorIDs() []string {
	out := make([]string, 0, len(r.Contributions))
	for _, c := range r.Contributions {
		out = append(out, c.AncestorID)
	}
	return out
}

// MatingPair is one candidate sire-dam assignment with its projected
// offspring merit and inbreeding risk.
type MatingPair struct {
	SireID                   string             `json:"sire_id"`
	DamID                    string             `json:"dam_id"`
	ProjectedOffspringValues map[string]float64 `json:"projected_offspring_values"`
	ProjectedInbreeding      float64            `json:"projected_inbreeding"`
	InbreedingRisk           RiskLevel          `json:"inbreeding_risk"`
	CompositeScore           float64            `json:"composite_score"`
	// Rank is the 1-based position within the final plan, assigned after
	// optimization; zero for pairs reported outside the plan.
	Rank  int    `json:"rank,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// MatingPlanResult is the optimizer's output: ranked assignments, the dams
// that could not be placed, and the high-risk pairings reported for
// visibility even though they are excluded from the plan.
type MatingPlanResult struct {
	Pairs          []MatingPair `json:"pairs"`
	UnassignedDams []string     `json:"unassigned_dams"`
	HighRiskPairs  []MatingPair `json:"high_risk_pairs"`
	BreedingGoal   string       `json:"breeding_goal,omitempty"`
	MaxInbreeding  float64      `json:"max_inbreeding"`
}
