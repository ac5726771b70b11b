package pedigree

import (
	"context"
	"fmt"
	"math"

	"herdcore/pkg/domain"
)

// Calculator derives Wright's coefficient of inbreeding from pedigree trees
// built against a lineage provider. Each public entry point is independently
// reentrant provided the provider is.
type Calculator struct {
	provider domain.LineageProvider
	useKnown bool
	recurse  bool
}

// CalculatorOption adjusts how ancestor self-inbreeding (F_A) is obtained.
type CalculatorOption func(*Calculator)

// WithKnownAncestorInbreeding consults coefficients the provider has on
// record (via the optional InbreedingSource upgrade) as the F_A correction.
func WithKnownAncestorInbreeding() CalculatorOption {
	return func(c *Calculator) { c.useKnown = true }
}

// WithAncestorRecursion computes F_A by recursively applying the same
// formula to each common ancestor with the remaining generation depth.
// This is a refinement over the default behavior, which takes F_A as zero.
func WithAncestorRecursion() CalculatorOption {
	return func(c *Calculator) { c.recurse = true }
}

// NewCalculator constructs a calculator over the given provider.
func NewCalculator(provider domain.LineageProvider, opts ...CalculatorOption) *Calculator {
	c := &Calculator{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CalculateInbreeding computes the coefficient for an existing animal by
// building its pedigree to the requested depth and summing, over every
// common ancestor and every (sire-path, dam-path) pair,
// (1/2)^(Ls+Ld+1) x (1+F_A). Zero common ancestors yield coefficient 0
// and LOW risk.
func (c *Calculator) CalculateInbreeding(ctx context.Context, subjectID string, generations int) (domain.InbreedingResult, error) {
	tree, err := BuildTree(ctx, c.provider, subjectID, generations)
	if err != nil {
		return domain.InbreedingResult{}, err
	}
	contributions, total := c.accumulate(ctx, tree, generations-1)
	return domain.InbreedingResult{
		SubjectID:     subjectID,
		Coefficient:   total,
		Risk:          domain.ClassifyRisk(total),
		Contributions: contributions,
		Pedigree:      tree,
	}, nil
}

// ProjectedOffspringInbreeding computes the coefficient a hypothetical
// offspring of sireID and damID would carry. The offspring is treated as
// the subject of a synthetic tree: each parent's own ancestry is built to
// generations-1 and grafted one generation down, so path lengths measured
// from the offspring include the hypothetical parent link. The result's
// subject is labelled "<sire> x <dam> (projected)".
func (c *Calculator) ProjectedOffspringInbreeding(ctx context.Context, sireID, damID string, generations int) (domain.InbreedingResult, error) {
	if generations < 1 {
		return domain.InbreedingResult{}, domain.InvalidArgumentError{Field: "generations", Reason: "must be at least 1"}
	}
	sireTree, err := c.parentTree(ctx, sireID, "sire id", generations-1)
	if err != nil {
		return domain.InbreedingResult{}, err
	}
	damTree, err := c.parentTree(ctx, damID, "dam id", generations-1)
	if err != nil {
		return domain.InbreedingResult{}, err
	}

	tree := &domain.PedigreeTree{
		Subject: domain.PedigreeNode{ID: fmt.Sprintf("%s x %s (projected)", sireID, damID)},
	}
	graft(tree, "s", sireTree, generations)
	graft(tree, "d", damTree, generations)
	tree.CommonAncestors = FindCommonAncestors(tree)

	contributions, total := c.accumulate(ctx, tree, generations-1)
	return domain.InbreedingResult{
		SubjectID:     tree.Subject.ID,
		Coefficient:   total,
		Risk:          domain.ClassifyRisk(total),
		Contributions: contributions,
		Pedigree:      tree,
	}, nil
}

// parentTree builds one prospective parent's own ancestry. At depth zero the
// parent still has to resolve, since a failed root lookup is fatal.
func (c *Calculator) parentTree(ctx context.Context, id, field string, depth int) (*domain.PedigreeTree, error) {
	if id == "" {
		return nil, domain.InvalidArgumentError{Field: field, Reason: "must not be empty"}
	}
	if depth < 1 {
		if _, err := c.provider.GetLineage(ctx, id); err != nil {
			return nil, fmt.Errorf("build pedigree: %w", domain.NotFoundError{Kind: "animal", ID: id})
		}
		node := domain.PedigreeNode{ID: id}
		if finder, ok := c.provider.(domain.AnimalFinder); ok {
			if animal, found := finder.FindAnimal(ctx, id); found {
				node = animal.Node(0)
			}
		}
		return &domain.PedigreeTree{Subject: node}, nil
	}
	return BuildTree(ctx, c.provider, id, depth)
}

// graft hangs a parent's tree one generation below the synthetic offspring
// subject, dropping nodes that would exceed the overall depth.
func graft(dst *domain.PedigreeTree, prefix string, src *domain.PedigreeTree, maxGenerations int) {
	root := src.Subject
	root.Generation = 1
	dst.SetNode(prefix, root)
	for _, code := range src.Codes() {
		if len(code)+1 > maxGenerations {
			continue
		}
		node, _ := src.NodeAt(code)
		node.Generation = len(code) + 1
		dst.SetNode(prefix+code, node)
	}
}

// accumulate sums per-ancestor contributions across all path pairs.
// faDepth bounds how deep an ancestor's own coefficient may be derived when
// recursion is enabled.
func (c *Calculator) accumulate(ctx context.Context, tree *domain.PedigreeTree, faDepth int) ([]domain.AncestorContribution, float64) {
	var (
		contributions []domain.AncestorContribution
		total         float64
	)
	for _, ancestorID := range tree.CommonAncestors {
		sirePaths, _ := TracePaths(tree, ancestorID, domain.SideSire)
		damPaths, _ := TracePaths(tree, ancestorID, domain.SideDam)
		if len(sirePaths) == 0 || len(damPaths) == 0 {
			continue
		}
		fa := c.ancestorInbreeding(ctx, ancestorID, faDepth)
		var sum float64
		for _, ls := range sirePaths {
			for _, ld := range damPaths {
				sum += math.Pow(0.5, float64(ls+ld+1)) * (1 + fa)
			}
		}
		total += sum
		contributions = append(contributions, domain.AncestorContribution{
			AncestorID:         ancestorID,
			SirePathLengths:    sirePaths,
			DamPathLengths:     damPaths,
			AncestorInbreeding: fa,
			Contribution:       sum,
		})
	}
	return contributions, total
}

// ancestorInbreeding resolves the F_A correction for one common ancestor.
// Default is zero; a coefficient already on record wins over recursion.
func (c *Calculator) ancestorInbreeding(ctx context.Context, id string, depth int) float64 {
	if c.useKnown {
		if source, ok := c.provider.(domain.InbreedingSource); ok {
			if f, known := source.KnownInbreeding(ctx, id); known {
				return f
			}
		}
	}
	if c.recurse && depth >= 1 {
		if res, err := c.CalculateInbreeding(ctx, id, depth); err == nil {
			return res.Coefficient
		}
	}
	return 0
}
