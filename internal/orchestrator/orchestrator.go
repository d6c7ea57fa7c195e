// Package orchestrator coordinates multi-entity dataset runs: it
// resolves execution order from generator dependencies, runs
// independent entities in parallel, streams batches into storage, and
// aggregates the per-entity outcomes into a run summary.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmrzaf/earthgen/internal/domain"
	"github.com/mmrzaf/earthgen/internal/generators"
	"github.com/mmrzaf/earthgen/internal/hashing"
	"github.com/mmrzaf/earthgen/internal/runs"
	"github.com/mmrzaf/earthgen/internal/storage"
	"github.com/mmrzaf/earthgen/internal/validation"
)

const DefaultMaxParallel = 3

type Options struct {
	// MaxParallel bounds how many entity workflows run at once within a
	// dependency group. Zero means DefaultMaxParallel.
	MaxParallel int
	// MaxRecords caps any single entity count. Zero means the generator
	// default.
	MaxRecords int64
	// RefTime anchors derived dates for the whole run.
	RefTime time.Time
}

type Orchestrator struct {
	registry *generators.Registry
	loader   *storage.Loader
	recorder *runs.Recorder
	logger   *zap.Logger
	opts     Options
}

func New(registry *generators.Registry, loader *storage.Loader, recorder *runs.Recorder, logger *zap.Logger, opts Options) *Orchestrator {
	if registry == nil {
		registry = generators.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = DefaultMaxParallel
	}
	return &Orchestrator{
		registry: registry,
		loader:   loader,
		recorder: recorder,
		logger:   logger,
		opts:     opts,
	}
}

// Execute runs one dataset spec end to end. A failing entity marks its
// own workflow failed and its dependents skipped; independent entities
// still complete, so Execute returns an error only when the spec never
// starts executing at all.
func (o *Orchestrator) Execute(ctx context.Context, spec *domain.DatasetSpec) (*domain.ExecutionSummary, error) {
	if err := validation.ValidateDatasetSpec(spec, o.registry); err != nil {
		return nil, err
	}
	for _, warning := range validation.RatioWarnings(spec) {
		o.logger.Warn(warning)
	}

	specHash, err := hashing.HashDatasetSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("hash spec: %w", err)
	}

	groups, err := o.dependencyGroups(spec)
	if err != nil {
		return nil, err
	}

	o.logger.Info("starting dataset run",
		zap.String("spec_hash", specHash),
		zap.Int64("seed", spec.Seed),
		zap.Int64("total_requested", spec.TotalRequested()),
		zap.Int("entity_types", len(spec.Entities)),
		zap.String("write_mode", string(spec.WriteMode)))

	// One reference time for the whole run; a run crossing UTC midnight
	// must not derive dates from different days across entities.
	refTime := o.opts.RefTime
	if refTime.IsZero() {
		refTime = time.Now().UTC().Truncate(24 * time.Hour)
	}

	startedAt := time.Now()

	var mu sync.Mutex
	resultByEntity := make(map[string]domain.ExecutionResult, len(spec.Entities))

	for _, group := range groups {
		g := new(errgroup.Group)
		g.SetLimit(o.opts.MaxParallel)

		// Dependencies all live in earlier groups, so a snapshot taken
		// before scheduling is stable for the whole group.
		mu.Lock()
		settled := make(map[string]domain.ExecutionResult, len(resultByEntity))
		for k, v := range resultByEntity {
			settled[k] = v
		}
		mu.Unlock()

		for _, entityType := range group {
			entityType := entityType
			count := spec.Entities[entityType]

			if blocker := o.failedDependency(entityType, settled); blocker != "" {
				o.logger.Warn("skipping entity, dependency did not complete",
					zap.String("entity_type", entityType),
					zap.String("dependency", blocker))
				mu.Lock()
				resultByEntity[entityType] = domain.ExecutionResult{
					EntityType: entityType,
					Status:     domain.StatusSkipped,
					Error:      fmt.Sprintf("dependency %q did not complete", blocker),
				}
				mu.Unlock()
				continue
			}

			g.Go(func() error {
				res := o.runEntity(ctx, spec, entityType, count, refTime)
				mu.Lock()
				resultByEntity[entityType] = res
				mu.Unlock()
				return nil
			})
		}
		g.Wait()
	}

	completedAt := time.Now()
	summary := o.buildSummary(spec, specHash, resultByEntity, startedAt, completedAt)
	o.recordRun(ctx, summary)

	o.logger.Info("dataset run finished",
		zap.Int64("total_records", summary.TotalRecords),
		zap.Duration("wall_clock", summary.WallClock),
		zap.Float64("parallel_efficiency", summary.ParallelEfficiency),
		zap.Bool("completed", summary.Completed()))

	return summary, nil
}

// runEntity drives one entity workflow: resolve, stream batches,
// persist. The run write mode applies to the first batch only; later
// batches of the same workflow always append, so a multi-batch truncate
// run still yields exactly count rows.
func (o *Orchestrator) runEntity(ctx context.Context, spec *domain.DatasetSpec, entityType string, count int64, refTime time.Time) domain.ExecutionResult {
	start := time.Now()
	fail := func(err error) domain.ExecutionResult {
		o.logger.Error("entity workflow failed",
			zap.String("entity_type", entityType), zap.Error(err))
		return domain.ExecutionResult{
			EntityType:       entityType,
			RecordsGenerated: 0,
			Duration:         time.Since(start),
			Status:           domain.StatusFailed,
			Error:            err.Error(),
		}
	}

	gen, err := o.registry.Resolve(entityType, generators.Config{
		Seed:       spec.Seed,
		RefTime:    refTime,
		MaxRecords: o.opts.MaxRecords,
	})
	if err != nil {
		return fail(err)
	}

	stream, err := generators.NewStream(gen, count, o.opts.MaxRecords)
	if err != nil {
		return fail(err)
	}

	if err := o.loader.EnsureTable(ctx, gen.Table(), gen.Schema()); err != nil {
		return fail(err)
	}

	mode := spec.WriteMode
	var written int64
	for {
		batch, err := stream.NextBatch(spec.BatchSize)
		if err != nil {
			return fail(err)
		}
		if batch == nil {
			break
		}
		if err := o.loader.Write(ctx, gen.Table(), batch, mode); err != nil {
			return fail(err)
		}
		written += int64(batch.Len())
		mode = domain.WriteModeAppend
	}

	duration := time.Since(start)
	o.logger.Info("entity workflow completed",
		zap.String("entity_type", entityType),
		zap.Int64("records", written),
		zap.Duration("duration", duration))

	return domain.ExecutionResult{
		EntityType:       entityType,
		RecordsGenerated: written,
		Duration:         duration,
		Status:           domain.StatusCompleted,
	}
}

// dependencyGroups layers the requested entities so each layer only
// depends on earlier ones. Dependencies on entity types absent from the
// spec are ignored; those records simply are not generated this run.
func (o *Orchestrator) dependencyGroups(spec *domain.DatasetSpec) ([][]string, error) {
	deps := make(map[string][]string, len(spec.Entities))
	for entityType := range spec.Entities {
		gen, err := o.registry.Resolve(entityType, generators.Config{})
		if err != nil {
			return nil, err
		}
		var requested []string
		for _, dep := range gen.DependsOn() {
			if _, ok := spec.Entities[dep]; ok {
				requested = append(requested, dep)
			}
		}
		deps[entityType] = requested
	}

	level := make(map[string]int, len(deps))
	var resolve func(entityType string, trail map[string]bool) (int, error)
	resolve = func(entityType string, trail map[string]bool) (int, error) {
		if l, ok := level[entityType]; ok {
			return l, nil
		}
		if trail[entityType] {
			return 0, fmt.Errorf("%w: dependency cycle through entity %q", domain.ErrInvalidSpec, entityType)
		}
		trail[entityType] = true
		maxDep := -1
		for _, dep := range deps[entityType] {
			l, err := resolve(dep, trail)
			if err != nil {
				return 0, err
			}
			if l > maxDep {
				maxDep = l
			}
		}
		delete(trail, entityType)
		level[entityType] = maxDep + 1
		return maxDep + 1, nil
	}

	maxLevel := 0
	for entityType := range deps {
		l, err := resolve(entityType, map[string]bool{})
		if err != nil {
			return nil, err
		}
		if l > maxLevel {
			maxLevel = l
		}
	}

	groups := make([][]string, maxLevel+1)
	for entityType, l := range level {
		groups[l] = append(groups[l], entityType)
	}
	for _, group := range groups {
		sort.Strings(group)
	}
	return groups, nil
}

func (o *Orchestrator) failedDependency(entityType string, results map[string]domain.ExecutionResult) string {
	gen, err := o.registry.Resolve(entityType, generators.Config{})
	if err != nil {
		return ""
	}
	for _, dep := range gen.DependsOn() {
		if res, ok := results[dep]; ok && res.Status != domain.StatusCompleted {
			return dep
		}
	}
	return ""
}

func (o *Orchestrator) buildSummary(spec *domain.DatasetSpec, specHash string, resultByEntity map[string]domain.ExecutionResult, startedAt, completedAt time.Time) *domain.ExecutionSummary {
	entities := make([]string, 0, len(resultByEntity))
	for entityType := range resultByEntity {
		entities = append(entities, entityType)
	}
	sort.Strings(entities)

	summary := &domain.ExecutionSummary{
		SpecHash:    specHash,
		Seed:        spec.Seed,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		WallClock:   completedAt.Sub(startedAt),
	}
	for _, entityType := range entities {
		res := resultByEntity[entityType]
		summary.Results = append(summary.Results, res)
		summary.TotalRecords += res.RecordsGenerated
		summary.WorkTime += res.Duration
	}
	if summary.WallClock > 0 {
		summary.ParallelEfficiency = float64(summary.WorkTime) / float64(summary.WallClock)
		summary.RecordsPerSecond = float64(summary.TotalRecords) / summary.WallClock.Seconds()
	}
	return summary
}

// recordRun persists provenance on a best-effort basis; a history write
// failure never fails the run that already landed its data.
func (o *Orchestrator) recordRun(ctx context.Context, summary *domain.ExecutionSummary) {
	if o.recorder == nil {
		return
	}

	status := "completed"
	if !summary.Completed() {
		status = "failed"
		for _, res := range summary.Results {
			if res.Status == domain.StatusCompleted {
				status = "partial"
				break
			}
		}
	}

	completedAt := summary.CompletedAt
	run := &domain.Run{
		SpecHash:           summary.SpecHash,
		Seed:               summary.Seed,
		Status:             status,
		TotalRecords:       summary.TotalRecords,
		WallClockSeconds:   summary.WallClock.Seconds(),
		ParallelEfficiency: summary.ParallelEfficiency,
		StartedAt:          summary.StartedAt,
		CompletedAt:        &completedAt,
	}
	if err := o.recorder.Record(ctx, run); err != nil {
		o.logger.Warn("run history write failed", zap.Error(err))
	}
}
