// Package core exposes the transactional service surface of herdcore:
// registry mutations guarded by the rules engine, pedigree and inbreeding
// reports, mating projections, and plan optimization with optional
// archival, all instrumented through pluggable observability hooks.
package core

import (
	"context"
	"fmt"

	"herdcore/internal/archive"
	"herdcore/internal/breeding"
	"herdcore/internal/pedigree"
	"herdcore/pkg/domain"
)

// DefaultGenerations bounds pedigree depth when a caller does not choose one.
const DefaultGenerations = 3

// Service wires the animal registry, the pedigree calculator, and the
// mating optimizer behind one instrumented API.
type Service struct {
	registry    domain.Registry
	calc        *pedigree.Calculator
	optimizer   *breeding.Optimizer
	archive     archive.Store
	logger      Logger
	metrics     MetricsRecorder
	tracer      Tracer
	generations int
}

// Option customises service construction.
type Option func(*Service)

// WithLogger installs a diagnostics logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics installs a metrics recorder.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

// WithTracer installs an operation tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithArchive persists finished mating plans to the given archive store.
func WithArchive(store archive.Store) Option {
	return func(s *Service) { s.archive = store }
}

// WithDefaultGenerations overrides the default pedigree depth.
func WithDefaultGenerations(generations int) Option {
	return func(s *Service) {
		if generations >= 1 {
			s.generations = generations
		}
	}
}

// WithCalculatorOptions forwards options to the inbreeding calculator and
// the optimizer's internal calculator.
func WithCalculatorOptions(opts ...pedigree.CalculatorOption) Option {
	return func(s *Service) {
		s.calc = pedigree.NewCalculator(s.registry, opts...)
		s.optimizer = breeding.NewOptimizer(s.registry, opts...)
	}
}

// NewService constructs a service over the given registry.
func NewService(registry domain.Registry, opts ...Option) *Service {
	s := &Service{
		registry:    registry,
		calc:        pedigree.NewCalculator(registry),
		optimizer:   breeding.NewOptimizer(registry),
		logger:      NoopLogger{},
		generations: DefaultGenerations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the underlying animal registry.
func (s *Service) Registry() domain.Registry {
	return s.registry
}

// RegisterAnimal records a new animal after rules validation.
func (s *Service) RegisterAnimal(ctx context.Context, animal domain.Animal) (created domain.Animal, res domain.Result, err error) {
	ctx, finish := s.instrument(ctx, "register_animal")
	defer func() { finish(err) }()
	created, res, err = s.registry.CreateAnimal(ctx, animal)
	return created, res, err
}

// UpdateAnimal mutates a registered animal after rules validation.
func (s *Service) UpdateAnimal(ctx context.Context, id string, mutate func(*domain.Animal) error) (updated domain.Animal, res domain.Result, err error) {
	ctx, finish := s.instrument(ctx, "update_animal")
	defer func() { finish(err) }()
	updated, res, err = s.registry.UpdateAnimal(ctx, id, mutate)
	return updated, res, err
}

// DeleteAnimal removes a registered animal.
func (s *Service) DeleteAnimal(ctx context.Context, id string) (res domain.Result, err error) {
	ctx, finish := s.instrument(ctx, "delete_animal")
	defer func() { finish(err) }()
	res, err = s.registry.DeleteAnimal(ctx, id)
	return res, err
}

// PedigreeReport builds an animal's ancestry tree. A non-positive
// generations argument uses the service default.
func (s *Service) PedigreeReport(ctx context.Context, id string, generations int) (tree *domain.PedigreeTree, err error) {
	ctx, finish := s.instrument(ctx, "pedigree_report")
	defer func() { finish(err) }()
	tree, err = pedigree.BuildTree(ctx, s.registry, id, s.depth(generations))
	return tree, err
}

// InbreedingCheck computes Wright's coefficient for an existing animal.
func (s *Service) InbreedingCheck(ctx context.Context, id string, generations int) (result domain.InbreedingResult, err error) {
	ctx, finish := s.instrument(ctx, "inbreeding_check")
	defer func() { finish(err) }()
	result, err = s.calc.CalculateInbreeding(ctx, id, s.depth(generations))
	return result, err
}

// ProjectedMating computes the coefficient a hypothetical offspring of the
// two animals would carry.
func (s *Service) ProjectedMating(ctx context.Context, sireID, damID string, generations int) (result domain.InbreedingResult, err error) {
	ctx, finish := s.instrument(ctx, "projected_mating")
	defer func() { finish(err) }()
	result, err = s.calc.ProjectedOffspringInbreeding(ctx, sireID, damID, s.depth(generations))
	return result, err
}

// PlanMatings runs the optimizer and, when an archive is configured,
// persists the resulting plan.
func (s *Service) PlanMatings(ctx context.Context, req breeding.PlanRequest) (plan domain.MatingPlanResult, err error) {
	ctx, finish := s.instrument(ctx, "plan_matings")
	defer func() { finish(err) }()
	if req.Generations <= 0 {
		req.Generations = s.generations
	}
	plan, err = s.optimizer.OptimizeMatingPlan(ctx, req)
	if err != nil {
		return plan, err
	}
	if s.archive != nil {
		info, archiveErr := s.archive.SavePlan(ctx, plan)
		if archiveErr != nil {
			err = fmt.Errorf("archive plan: %w", archiveErr)
			return plan, err
		}
		s.logger.Infof("archived mating plan %s (%d pairs)", info.ID, len(plan.Pairs))
	}
	return plan, nil
}

func (s *Service) depth(generations int) int {
	if generations <= 0 {
		return s.generations
	}
	return generations
}
