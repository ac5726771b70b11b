// Package pedigree implements the ancestry core: bounded-depth tree
// construction from a lineage provider, common-ancestor detection, tree-path
// enumeration, and Wright's coefficient of inbreeding.
package pedigree

import (
	"context"
	"errors"
	"fmt"

	"herdcore/pkg/domain"
)

// builder tracks per-build state. Provider lookups are memoized for the
// duration of one build so a shared ancestor is queried once even when it
// occupies slots on both sides of the tree.
type builder struct {
	provider domain.LineageProvider
	finder   domain.AnimalFinder
	lineage  map[string]lineageEntry
}

type lineageEntry struct {
	parentage domain.Parentage
	failed    bool
}

// BuildTree expands the subject's ancestry breadth-first to the requested
// generation depth. A missing sire or dam terminates that branch without
// error; only a failed lookup of the root subject is fatal. The returned
// tree has its common-ancestor set precomputed.
func BuildTree(ctx context.Context, provider domain.LineageProvider, subjectID string, generations int) (*domain.PedigreeTree, error) {
	if provider == nil {
		return nil, domain.InvalidArgumentError{Field: "provider", Reason: "must not be nil"}
	}
	if subjectID == "" {
		return nil, domain.InvalidArgumentError{Field: "subject id", Reason: "must not be empty"}
	}
	if generations < 1 {
		return nil, domain.InvalidArgumentError{Field: "generations", Reason: "must be at least 1"}
	}

	finder, _ := provider.(domain.AnimalFinder)
	b := &builder{
		provider: provider,
		finder:   finder,
		lineage:  make(map[string]lineageEntry),
	}

	// Resolve the root eagerly: this is the only lookup whose failure is
	// fatal. The BFS below re-reads it from the memoization cache.
	if _, err := b.resolve(ctx, subjectID); err != nil {
		var notFound domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("build pedigree: %w", err)
		}
		return nil, fmt.Errorf("build pedigree: %w", domain.NotFoundError{Kind: "animal", ID: subjectID})
	}

	tree := &domain.PedigreeTree{Subject: b.node(ctx, subjectID, 0)}

	type frame struct {
		id   string
		code string
	}
	queue := []frame{{id: subjectID, code: ""}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.code) >= generations {
			continue
		}
		parentage, ok := b.lookup(ctx, cur.id)
		if !ok {
			continue
		}
		if parentage.SireID != "" {
			code := cur.code + "s"
			tree.SetNode(code, b.node(ctx, parentage.SireID, len(code)))
			queue = append(queue, frame{id: parentage.SireID, code: code})
		}
		if parentage.DamID != "" {
			code := cur.code + "d"
			tree.SetNode(code, b.node(ctx, parentage.DamID, len(code)))
			queue = append(queue, frame{id: parentage.DamID, code: code})
		}
	}

	tree.CommonAncestors = FindCommonAncestors(tree)
	return tree, nil
}

// resolve queries the provider once per identifier and caches the outcome.
func (b *builder) resolve(ctx context.Context, id string) (domain.Parentage, error) {
	if entry, ok := b.lineage[id]; ok {
		if entry.failed {
			return domain.Parentage{}, domain.NotFoundError{Kind: "animal", ID: id}
		}
		return entry.parentage, nil
	}
	parentage, err := b.provider.GetLineage(ctx, id)
	if err != nil {
		b.lineage[id] = lineageEntry{failed: true}
		return domain.Parentage{}, err
	}
	b.lineage[id] = lineageEntry{parentage: parentage}
	return parentage, nil
}

// lookup resolves an ancestor's parentage, absorbing failures as unknown.
func (b *builder) lookup(ctx context.Context, id string) (domain.Parentage, bool) {
	parentage, err := b.resolve(ctx, id)
	if err != nil {
		return domain.Parentage{}, false
	}
	return parentage, true
}

// node materialises a tree node, enriched with descriptive detail when the
// provider can serve full animal records.
func (b *builder) node(ctx context.Context, id string, generation int) domain.PedigreeNode {
	if b.finder != nil {
		if animal, ok := b.finder.FindAnimal(ctx, id); ok {
			return animal.Node(generation)
		}
	}
	return domain.PedigreeNode{ID: id, Generation: generation}
}
