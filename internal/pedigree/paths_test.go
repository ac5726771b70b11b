package pedigree

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"herdcore/pkg/domain"
)

func TestTracePathsSinglePosition(t *testing.T) {
	provider := newStubProvider(map[string]domain.Parentage{
		"x":  {SireID: "s1", DamID: "d1"},
		"s1": {SireID: "g"},
		"d1": {},
		"g":  {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	lengths, err := TracePaths(tree, "g", domain.SideSire)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !reflect.DeepEqual(lengths, []int{2}) {
		t.Fatalf("sire paths to g: got %v, want [2]", lengths)
	}

	lengths, err = TracePaths(tree, "g", domain.SideDam)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if len(lengths) != 0 {
		t.Fatalf("dam paths to g: got %v, want none", lengths)
	}
}

func TestTracePathsMultiplePositionsUnderOneSide(t *testing.T) {
	// g is both of the sire's grandparents, so two distinct length-2 paths
	// exist under the sire side.
	provider := newStubProvider(map[string]domain.Parentage{
		"x":  {SireID: "s1", DamID: "d1"},
		"s1": {SireID: "g", DamID: "g"},
		"d1": {},
		"g":  {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	lengths, err := TracePaths(tree, "g", domain.SideSire)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !reflect.DeepEqual(lengths, []int{2, 2}) {
		t.Fatalf("paths to g: got %v, want [2 2]", lengths)
	}
}

func TestTracePathsParentAsAncestor(t *testing.T) {
	provider := newStubProvider(map[string]domain.Parentage{
		"x":  {SireID: "s1", DamID: "d1"},
		"s1": {}, "d1": {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 2)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	lengths, err := TracePaths(tree, "d1", domain.SideDam)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if !reflect.DeepEqual(lengths, []int{1}) {
		t.Fatalf("paths to d1: got %v, want [1]", lengths)
	}
}

func TestTracePathsSubjectYieldsNoPaths(t *testing.T) {
	provider := newStubProvider(map[string]domain.Parentage{
		"x": {SireID: "s1"}, "s1": {},
	})
	tree, err := BuildTree(context.Background(), provider, "x", 2)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	lengths, err := TracePaths(tree, "x", domain.SideSire)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if len(lengths) != 0 {
		t.Fatalf("subject paths: got %v, want none", lengths)
	}
}

func TestTracePathsInvalidArguments(t *testing.T) {
	tree := &domain.PedigreeTree{Subject: domain.PedigreeNode{ID: "x"}}
	cases := []struct {
		name     string
		tree     *domain.PedigreeTree
		ancestor string
		side     domain.ParentSide
	}{
		{"nil tree", nil, "a", domain.SideSire},
		{"bad side", tree, "a", domain.ParentSide("mother")},
		{"empty ancestor", tree, "", domain.SideDam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TracePaths(tc.tree, tc.ancestor, tc.side)
			var invalid domain.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidArgumentError, got %v", err)
			}
		})
	}
}
