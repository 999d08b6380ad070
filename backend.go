package lectio

import (
	"context"
	"sort"
	"sync"
)

// BoldSentinel brackets text the source renders in bold, such as verse
// numbers. Formatters turn it into their own markup.
const BoldSentinel = "__BOLD__"

// Passage is text retrieved for a range in one version.
type Passage struct {
	Text    string     `json:"text"`
	Range   VerseRange `json:"range"`
	Version *Version   `json:"version,omitempty"`
}

// SearchResults is one page of search hits. Total counts every hit and
// may exceed len(Passages).
type SearchResults struct {
	Passages []*Passage `json:"passages"`
	Total    int        `json:"total"`
}

// SearchOptions controls paging. A zero Limit means the backend default.
type SearchOptions struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Backend retrieves passages from one kind of upstream source. The
// version's Locator tells the backend which upstream edition to address.
type Backend interface {
	// Lookup returns the text of r in v.
	// Returns ENOTFOUND when the upstream has no text for r and
	// EUNAVAILABLE when it cannot be reached.
	Lookup(ctx context.Context, v *Version, r VerseRange) (*Passage, error)

	// Search returns passages containing every term.
	// Returns ENOTSUPPORTED if the backend cannot search.
	Search(ctx context.Context, v *Version, terms []string, opts SearchOptions) (*SearchResults, error)
}

// Registry maps backend kinds, as stored on versions, to backends.
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register adds a backend for kind, replacing any existing one.
func (r *Registry) Register(kind string, b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[kind] = b
}

// Get returns the backend registered for kind.
// Returns ENOTSUPPORTED if none is registered.
func (r *Registry) Get(kind string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[kind]
	if !ok {
		return nil, Errorf(ENOTSUPPORTED, "No backend for %q", kind)
	}
	return b, nil
}

// For returns the backend serving v.
func (r *Registry) For(v *Version) (Backend, error) {
	return r.Get(v.Backend)
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.backends))
	for k := range r.backends {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
