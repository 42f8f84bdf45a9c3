// Package aggregate coordinates the phased fan-out across source adapters,
// enriches the query between phases, and reduces the collected results into
// one consolidated profile.
package aggregate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/people-aggregator/internal/llm"
	"github.com/sells-group/people-aggregator/internal/model"
	"github.com/sells-group/people-aggregator/internal/source"
)

// Sentinel errors surfaced to callers.
var (
	ErrNoIdentifier  = eris.New("aggregate: query carries no searchable identifier")
	ErrUnknownSource = eris.New("aggregate: unknown source")
)

// phase is one scheduling unit: the adapters of one category, run when the
// working query carries at least one of the trigger fields. Membership is
// resolved against the registry at run time, so registering a new adapter
// under a category is enough to put it on the schedule.
type phase struct {
	name     string
	category string
	triggers []model.QueryField
}

const phaseFaceSearch = "face_search"

// Phases run in declaration order. Order matters twice over: face search
// must finish before the people phase so a recovered name can widen it, and
// the sources map keys come out in this order.
var phases = []phase{
	{
		name:     phaseFaceSearch,
		category: source.CategoryFaceSearch,
		triggers: []model.QueryField{model.FieldImage},
	},
	{
		name:     "people_aggregators",
		category: source.CategoryPeople,
		triggers: []model.QueryField{model.FieldName, model.FieldPhone, model.FieldEmail, model.FieldAddress},
	},
	{
		name:     "search_engines",
		category: source.CategorySearch,
		triggers: []model.QueryField{model.FieldName, model.FieldEmail, model.FieldUsername},
	},
	{
		name:     "social_media",
		category: source.CategorySocial,
		triggers: []model.QueryField{model.FieldName, model.FieldUsername, model.FieldEmail},
	},
}

// Aggregator runs person searches across the registered adapters.
type Aggregator struct {
	registry *source.Registry
	llm      llm.Completer
}

// New creates an Aggregator. completer may be nil, in which case name
// extraction and consolidation use their deterministic fallbacks.
func New(registry *source.Registry, completer llm.Completer) *Aggregator {
	return &Aggregator{registry: registry, llm: completer}
}

// LLMConfigured reports whether a completion provider is available.
func (a *Aggregator) LLMConfigured() bool { return a.llm != nil }

// Sources returns the registered adapter names in registration order.
func (a *Aggregator) Sources() []string { return a.registry.Names() }

// Categories groups adapter names by category.
func (a *Aggregator) Categories() map[string][]string { return a.registry.Categories() }

// Run executes every triggered phase for the query and consolidates the
// results. Per-source faults are captured inside their SourceResult; Run
// itself fails only on an unsearchable query.
func (a *Aggregator) Run(ctx context.Context, query model.Query) (*model.SearchRun, error) {
	if !query.HasIdentifier() {
		return nil, ErrNoIdentifier
	}

	run := &model.SearchRun{
		SearchID:  uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Query:     query,
		Sources:   model.NewSourceMap(),
		Status:    model.RunStatusCompleted,
	}
	log := zap.L().With(zap.String("search_id", run.SearchID))
	log.Info("aggregate: starting search")

	working := query
	for _, ph := range phases {
		if !working.HasAny(ph.triggers...) {
			continue
		}
		members := a.phaseMembers(ph)
		if len(members) == 0 {
			continue
		}
		names := make([]string, len(members))
		for i, src := range members {
			names[i] = src.Name()
		}
		log.Info("aggregate: running phase",
			zap.String("phase", ph.name),
			zap.Strings("sources", names),
		)
		results := a.runPhase(ctx, members, working)
		for i, name := range names {
			run.Sources.Set(name, results[i])
		}

		if ph.name == phaseFaceSearch && working.Name == "" {
			if name := a.nameFromFaceResults(ctx, names, results); name != "" {
				log.Info("aggregate: name recovered from face search", zap.String("name", name))
				working.Name = name
			}
		}
	}

	run.Query = working
	run.Consolidated = a.Consolidate(ctx, run.Sources)

	log.Info("aggregate: search completed", zap.Int("sources", run.Sources.Len()))
	return run, nil
}

// phaseMembers resolves a phase's adapter set: every registered adapter of
// the phase's category whose declared capabilities cover at least one
// trigger field, in registration order.
func (a *Aggregator) phaseMembers(ph phase) []source.Source {
	var members []source.Source
	for _, name := range a.registry.Names() {
		src := a.registry.Get(name)
		if src == nil || src.Category() != ph.category {
			continue
		}
		for _, f := range ph.triggers {
			if source.Supports(src, f) {
				members = append(members, src)
				break
			}
		}
	}
	return members
}

// runPhase fans the query out to the phase members concurrently. Results
// land at the index matching the member order.
func (a *Aggregator) runPhase(ctx context.Context, members []source.Source, query model.Query) []model.SourceResult {
	results := make([]model.SourceResult, len(members))

	g, gCtx := errgroup.WithContext(ctx)
	for i, src := range members {
		g.Go(func() error {
			results[i] = searchOne(gCtx, src, query)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// searchOne invokes one adapter. A panicking adapter must not take down the
// whole run, so it degrades to a failure result for that source.
func searchOne(ctx context.Context, src source.Source, query model.Query) (result model.SourceResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("aggregate: source panicked",
				zap.String("source", src.Name()),
				zap.Any("panic", r),
			)
			result = model.Failure(src.Name(), eris.Errorf("aggregate: source %s panicked: %v", src.Name(), r))
		}
	}()
	return src.Search(ctx, query)
}

// SearchSource runs a single adapter outside the phase schedule.
func (a *Aggregator) SearchSource(ctx context.Context, name string, query model.Query) (model.SourceResult, error) {
	src := a.registry.Get(name)
	if src == nil {
		return model.SourceResult{}, eris.Wrapf(ErrUnknownSource, "%q", name)
	}
	return searchOne(ctx, src, query), nil
}

// Source returns the registered adapter with the given name, or nil.
func (a *Aggregator) Source(name string) source.Source {
	return a.registry.Get(name)
}
