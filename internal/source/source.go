// Package source defines the adapter contract for external data providers
// and the registry the phase scheduler dispatches through.
package source

import (
	"context"
	"sync"

	"github.com/sells-group/people-aggregator/internal/model"
)

// Adapter categories, used for grouping in the sources listing.
const (
	CategoryFaceSearch = "reverse_face_search"
	CategoryPeople     = "people_aggregators"
	CategorySearch     = "search_engines"
	CategorySocial     = "social_media"
)

// Source wraps one external data provider. Implementations declare the
// identifier types they can act on and never let a fault escape Search:
// network, parse, and timeout errors come back as failure SourceResults.
type Source interface {
	// Name returns the adapter identifier used as the sources map key.
	Name() string
	// Category returns the grouping this adapter belongs to.
	Category() string
	// Capabilities returns the identifier types the adapter acts on.
	Capabilities() []model.QueryField
	// Search queries the provider with whichever supported identifiers the
	// query carries. Unsupported-only queries yield an empty success.
	Search(ctx context.Context, query model.Query) model.SourceResult
}

// Supports reports whether s declares the given capability.
func Supports(s Source, f model.QueryField) bool {
	for _, c := range s.Capabilities() {
		if c == f {
			return true
		}
	}
	return false
}

// Registry holds the available adapters in registration order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	sources map[string]Source
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds an adapter. Re-registering a name replaces the adapter but
// keeps its position.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sources[s.Name()]; !ok {
		r.order = append(r.order, s.Name())
	}
	r.sources[s.Name()] = s
}

// Get returns an adapter by name, or nil if not registered.
func (r *Registry) Get(name string) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[name]
}

// Names returns all adapter names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// RegisterDefaults registers the standard adapter set in phase order.
func RegisterDefaults(r *Registry, f *Fetcher) {
	r.Register(NewPimEyes())
	r.Register(NewFaceCheck())
	r.Register(NewFastPeopleSearch(f))
	r.Register(NewCheckThem(f))
	r.Register(NewInstantCheckmate(f))
	r.Register(NewSearchEngine(f))
	r.Register(NewSocialMedia(f))
}

// Categories groups adapter names by category, registration order preserved
// within each group.
func (r *Registry) Categories() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string)
	for _, name := range r.order {
		s := r.sources[name]
		out[s.Category()] = append(out[s.Category()], name)
	}
	return out
}
