package pedigree

import (
	"context"
	"errors"

	"herdcore/pkg/domain"
)

// stubProvider is an in-memory lineage source for engine tests. Identifiers
// absent from parents resolve as not found; identifiers in failing error
// with a transient backend failure.
type stubProvider struct {
	parents map[string]domain.Parentage
	values  map[string]map[string]float64
	known   map[string]float64
	failing map[string]bool
	calls   map[string]int
}

func newStubProvider(parents map[string]domain.Parentage) *stubProvider {
	return &stubProvider{
		parents: parents,
		values:  make(map[string]map[string]float64),
		known:   make(map[string]float64),
		failing: make(map[string]bool),
		calls:   make(map[string]int),
	}
}

func (p *stubProvider) GetLineage(_ context.Context, id string) (domain.Parentage, error) {
	p.calls[id]++
	if p.failing[id] {
		return domain.Parentage{}, errors.New("lineage backend unavailable")
	}
	parentage, ok := p.parents[id]
	if !ok {
		return domain.Parentage{}, domain.NotFoundError{Kind: "animal", ID: id}
	}
	return parentage, nil
}

func (p *stubProvider) GetBreedingValues(_ context.Context, id string) (map[string]float64, error) {
	if _, ok := p.parents[id]; !ok {
		return nil, domain.NotFoundError{Kind: "animal", ID: id}
	}
	return p.values[id], nil
}

func (p *stubProvider) KnownInbreeding(_ context.Context, id string) (float64, bool) {
	f, ok := p.known[id]
	return f, ok
}
