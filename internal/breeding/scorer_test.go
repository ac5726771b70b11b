package breeding

import "testing"

func TestProjectOffspringValuesMidpoint(t *testing.T) {
	sire := map[string]float64{"milk_yield": 120, "fertility": 10}
	dam := map[string]float64{"milk_yield": 80, "longevity": 6}
	got := ProjectOffspringValues(sire, dam)
	want := map[string]float64{"milk_yield": 100, "fertility": 5, "longevity": 3}
	if len(got) != len(want) {
		t.Fatalf("projected traits: got %v, want %v", got, want)
	}
	for trait, value := range want {
		if got[trait] != value {
			t.Fatalf("trait %s: got %v, want %v", trait, got[trait], value)
		}
	}
}

func TestProjectOffspringValuesEmptyParents(t *testing.T) {
	if got := ProjectOffspringValues(nil, nil); len(got) != 0 {
		t.Fatalf("expected no projected traits, got %v", got)
	}
	got := ProjectOffspringValues(nil, map[string]float64{"fertility": 8})
	if got["fertility"] != 4 {
		t.Fatalf("one-sided trait: got %v, want 4", got["fertility"])
	}
}

func TestScoreMatingWeightedSum(t *testing.T) {
	projected := map[string]float64{"milk_yield": 100, "fertility": 5, "temperament": 2}
	index := map[string]float64{"milk_yield": 0.5, "fertility": 2}
	// 0.5*100 + 2*5 = 60; temperament carries no weight.
	if got := ScoreMating(projected, index, 0, DefaultInbreedingPenaltyWeight); got != 60 {
		t.Fatalf("score: got %v, want 60", got)
	}
	// Weighted trait absent from the projection contributes nothing.
	index["growth"] = 10
	if got := ScoreMating(projected, index, 0, DefaultInbreedingPenaltyWeight); got != 60 {
		t.Fatalf("score with unmatched weight: got %v, want 60", got)
	}
}

func TestScoreMatingPenaltyMonotonicity(t *testing.T) {
	projected := map[string]float64{"milk_yield": 100}
	index := map[string]float64{"milk_yield": 1}

	base := ScoreMating(projected, index, 0, DefaultInbreedingPenaltyWeight)
	low := ScoreMating(projected, index, 0.03125, DefaultInbreedingPenaltyWeight)
	high := ScoreMating(projected, index, 0.125, DefaultInbreedingPenaltyWeight)
	if !(base > low && low > high) {
		t.Fatalf("score must strictly decrease with coefficient: %v, %v, %v", base, low, high)
	}

	light := ScoreMating(projected, index, 0.125, 1)
	heavy := ScoreMating(projected, index, 0.125, 100)
	if !(light > heavy) {
		t.Fatalf("score must strictly decrease with penalty weight: %v, %v", light, heavy)
	}
	if got := ScoreMating(projected, index, 0.125, 10); got != 100-1.25 {
		t.Fatalf("penalty arithmetic: got %v, want %v", got, 100-1.25)
	}
}
