package mock

import (
	"context"

	"github.com/fwojciec/lectio"
)

var _ lectio.Backend = (*Backend)(nil)

// Backend is a mock implementation of lectio.Backend.
type Backend struct {
	LookupFn func(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error)
	SearchFn func(ctx context.Context, v *lectio.Version, terms []string, opts lectio.SearchOptions) (*lectio.SearchResults, error)
}

func (b *Backend) Lookup(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error) {
	return b.LookupFn(ctx, v, r)
}

func (b *Backend) Search(ctx context.Context, v *lectio.Version, terms []string, opts lectio.SearchOptions) (*lectio.SearchResults, error) {
	return b.SearchFn(ctx, v, terms, opts)
}
