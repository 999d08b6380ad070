// Package lookup ties parsing, version resolution, backends and the
// confession store together into the operations the outer surfaces call.
package lookup

import (
	"context"

	"github.com/fwojciec/lectio"
	"golang.org/x/sync/errgroup"
)

// DefaultSearchLimit is the page size used when a search sets none.
const DefaultSearchLimit = 5

// DefaultConcurrency bounds the lookups LookupAll runs at once.
const DefaultConcurrency = 4

// Caller identifies who a request is for. Either ID may be nil, as for
// direct messages and the HTTP API.
type Caller struct {
	UserID  *int64
	GuildID *int64
}

// Service implements the lookup, search, preference and confession
// operations.
type Service struct {
	Parser      lectio.ReferenceParser
	Versions    lectio.VersionService
	Preferences lectio.PreferenceService
	Confessions lectio.ConfessionService
	Backends    *lectio.Registry
	Resolver    *lectio.Resolver

	// Concurrency bounds LookupAll. Zero means DefaultConcurrency.
	Concurrency int
}

// NewService returns a Service resolving versions through the preferences.
func NewService(
	parser lectio.ReferenceParser,
	versions lectio.VersionService,
	prefs lectio.PreferenceService,
	confessions lectio.ConfessionService,
	backends *lectio.Registry,
) *Service {
	return &Service{
		Parser:      parser,
		Versions:    versions,
		Preferences: prefs,
		Confessions: confessions,
		Backends:    backends,
		Resolver:    lectio.NewResolver(prefs, versions),
	}
}

// version returns the version named by command, or the caller's resolved
// version when command is empty.
func (s *Service) version(ctx context.Context, caller Caller, command string) (*lectio.Version, error) {
	if command != "" {
		return s.Versions.FindVersionByCommand(ctx, command)
	}
	return s.Resolver.Resolve(ctx, caller.UserID, caller.GuildID)
}

// Lookup parses ref and returns its text. An empty command uses the
// caller's preferred version.
func (s *Service) Lookup(ctx context.Context, caller Caller, ref, command string) (*lectio.Passage, error) {
	r, err := s.Parser.ParseVerseRange(ref)
	if err != nil {
		return nil, err
	}
	v, err := s.version(ctx, caller, command)
	if err != nil {
		return nil, err
	}
	return s.LookupRange(ctx, v, r)
}

// LookupRange returns the text of r in v. The version's book coverage is
// checked before any backend is contacted.
func (s *Service) LookupRange(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error) {
	if err := v.CheckCoverage(r); err != nil {
		return nil, err
	}
	backend, err := s.Backends.For(v)
	if err != nil {
		return nil, err
	}
	p, err := backend.Lookup(ctx, v, r)
	if err != nil {
		return nil, err
	}
	if p.Version == nil {
		p.Version = v
	}
	return p, nil
}

// Search returns one page of passages containing every term.
func (s *Service) Search(ctx context.Context, caller Caller, command string, terms []string, opts lectio.SearchOptions) (*lectio.SearchResults, error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.Offset < 0 {
		return nil, lectio.Errorf(lectio.EINVALID, "Offset must not be negative")
	}
	v, err := s.version(ctx, caller, command)
	if err != nil {
		return nil, err
	}
	backend, err := s.Backends.For(v)
	if err != nil {
		return nil, err
	}
	return backend.Search(ctx, v, terms, opts)
}

// Result is the outcome of one bracketed reference. Exactly one of
// Passage and Err is set.
type Result struct {
	Match   lectio.ReferenceMatch
	Passage *lectio.Passage
	Err     error
}

// LookupAll resolves every bracketed reference in text. Lookups run
// concurrently; results keep the order of the references and failures are
// reported per result. The returned error is set only when the context
// ends or the caller's version cannot be resolved.
func (s *Service) LookupAll(ctx context.Context, caller Caller, text string) ([]Result, error) {
	matches := s.Parser.FindReferences(text)
	results := make([]Result, len(matches))
	if len(matches) == 0 {
		return results, nil
	}

	var preferred *lectio.Version
	for _, m := range matches {
		if m.Err == nil && m.Version == "" {
			v, err := s.Resolver.Resolve(ctx, caller.UserID, caller.GuildID)
			if err != nil {
				return nil, err
			}
			preferred = v
			break
		}
	}

	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, m := range matches {
		results[i].Match = m
		if m.Err != nil {
			results[i].Err = m.Err
			continue
		}
		g.Go(func() error {
			v := preferred
			if m.Version != "" {
				var err error
				if v, err = s.Versions.FindVersionByAbbreviation(ctx, m.Version); err != nil {
					results[i].Err = err
					return nil
				}
			}
			results[i].Passage, results[i].Err = s.LookupRange(ctx, v, m.Range)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// SetVersion records the version an owner prefers.
func (s *Service) SetVersion(ctx context.Context, kind lectio.OwnerKind, ownerID int64, command string) (*lectio.Version, error) {
	v, err := s.Versions.FindVersionByCommand(ctx, command)
	if err != nil {
		return nil, err
	}
	if err := s.Preferences.SetPreference(ctx, kind, ownerID, v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

// UnsetVersion clears an owner's preference.
func (s *Service) UnsetVersion(ctx context.Context, kind lectio.OwnerKind, ownerID int64) error {
	return s.Preferences.DeletePreference(ctx, kind, ownerID)
}
