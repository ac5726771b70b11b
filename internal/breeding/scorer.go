// Package breeding scores candidate matings under a weighted selection
// index and assigns dams to sires subject to inbreeding and quota
// constraints.
package breeding

// DefaultInbreedingPenaltyWeight is the score deduction applied per unit of
// projected inbreeding when no weight is configured.
const DefaultInbreedingPenaltyWeight = 10.0

// ProjectOffspringValues projects an offspring's expected breeding values as
// the parental midpoint over the union of traits present in either parent.
// A trait absent in one parent contributes zero for that parent, so a trait
// known on one side still yields a projected value diluted toward zero.
func ProjectOffspringValues(sireValues, damValues map[string]float64) map[string]float64 {
	projected := make(map[string]float64, len(sireValues)+len(damValues))
	for trait, value := range sireValues {
		projected[trait] = value / 2
	}
	for trait, value := range damValues {
		projected[trait] += value / 2
	}
	return projected
}

// ScoreMating converts projected offspring values into a single
// selection-index score and deducts an inbreeding penalty. Traits without a
// configured weight contribute nothing. The score is strictly decreasing in
// both the coefficient and the penalty weight for all non-negative inputs.
func ScoreMating(projectedValues, index map[string]float64, inbreedingCoefficient, penaltyWeight float64) float64 {
	var raw float64
	for trait, weight := range index {
		if value, ok := projectedValues[trait]; ok {
			raw += weight * value
		}
	}
	return raw - penaltyWeight*inbreedingCoefficient
}
