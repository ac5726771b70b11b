package pedigree

import (
	"context"
	"reflect"
	"testing"

	"herdcore/pkg/domain"
)

func TestFindCommonAncestorsIntersectsSides(t *testing.T) {
	// Both grandsires are the same animal; the grandams differ.
	provider := newStubProvider(map[string]domain.Parentage{
		"x":  {SireID: "s1", DamID: "d1"},
		"s1": {SireID: "g", DamID: "gm1"},
		"d1": {SireID: "g", DamID: "gm2"},
		"g":  {}, "gm1": {}, "gm2": {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got := FindCommonAncestors(tree)
	if !reflect.DeepEqual(got, []string{"g"}) {
		t.Fatalf("common ancestors: got %v, want [g]", got)
	}
}

func TestFindCommonAncestorsSortedAndDeduplicated(t *testing.T) {
	// b and a both recur on each side; a appears twice on the sire side.
	provider := newStubProvider(map[string]domain.Parentage{
		"x":  {SireID: "s1", DamID: "d1"},
		"s1": {SireID: "a", DamID: "b"},
		"d1": {SireID: "b", DamID: "a"},
		"a":  {SireID: "a2"}, "a2": {},
		"b": {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got := FindCommonAncestors(tree)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("common ancestors: got %v, want [a b]", got)
	}
}

func TestFindCommonAncestorsSharedParentNotSubject(t *testing.T) {
	// Half siblings: the shared dam is a common ancestor of their offspring,
	// and the subject itself never qualifies.
	provider := newStubProvider(map[string]domain.Parentage{
		"x":  {SireID: "s1", DamID: "d1"},
		"s1": {DamID: "m"},
		"d1": {DamID: "m"},
		"m":  {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got := FindCommonAncestors(tree)
	if !reflect.DeepEqual(got, []string{"m"}) {
		t.Fatalf("common ancestors: got %v, want [m]", got)
	}
}

func TestFindCommonAncestorsEmptyCases(t *testing.T) {
	if got := FindCommonAncestors(nil); got != nil {
		t.Fatalf("nil tree: got %v", got)
	}
	provider := newStubProvider(map[string]domain.Parentage{
		"x":  {SireID: "s1", DamID: "d1"},
		"s1": {}, "d1": {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := FindCommonAncestors(tree); len(got) != 0 {
		t.Fatalf("unrelated parents: got %v, want none", got)
	}
}
