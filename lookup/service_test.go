package lookup_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/lookup"
	"github.com/fwojciec/lectio/mock"
	"github.com/fwojciec/lectio/participle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	esv = &lectio.Version{ID: 1, Command: "esv", Name: "English Standard Version", Abbreviation: "ESV", Backend: "test", Books: lectio.ProtestantBible}
	nwt = &lectio.Version{ID: 2, Command: "nwt", Name: "New World Translation", Abbreviation: "NWT", Backend: "test", Books: lectio.NewTestament}
	kjv = &lectio.Version{ID: 3, Command: "kjv", Name: "King James Version", Abbreviation: "KJV", Backend: "missing", Books: lectio.ProtestantBible}
)

func ptr[T any](v T) *T { return &v }

// fixture wires a Service with in-memory versions, no preferences unless
// set, and a backend that echoes the range and version.
type fixture struct {
	svc     *lookup.Service
	backend *mock.Backend
	prefs   map[int64]int64
	lookups atomic.Int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{prefs: map[int64]int64{}}
	byCommand := map[string]*lectio.Version{"esv": esv, "nwt": nwt, "kjv": kjv}
	versions := &mock.VersionService{
		FindVersionByCommandFn: func(ctx context.Context, command string) (*lectio.Version, error) {
			if v, ok := byCommand[command]; ok {
				return v, nil
			}
			return nil, lectio.Errorf(lectio.EVERSION, "%s is not a supported version", command)
		},
		FindVersionByAbbreviationFn: func(ctx context.Context, abbr string) (*lectio.Version, error) {
			for _, v := range byCommand {
				if v.Abbreviation == abbr {
					return v, nil
				}
			}
			return nil, lectio.Errorf(lectio.EVERSION, "%s is not a supported version", abbr)
		},
		FindVersionByIDFn: func(ctx context.Context, id int64) (*lectio.Version, error) {
			for _, v := range byCommand {
				if v.ID == id {
					return v, nil
				}
			}
			return nil, lectio.Errorf(lectio.EVERSION, "%d is not a supported version", id)
		},
	}
	prefs := &mock.PreferenceService{
		FindPreferenceFn: func(ctx context.Context, kind lectio.OwnerKind, ownerID int64) (*lectio.Preference, error) {
			if id, ok := f.prefs[ownerID]; ok && kind == lectio.OwnerUser {
				return &lectio.Preference{Kind: kind, OwnerID: ownerID, VersionID: ptr(id)}, nil
			}
			return nil, lectio.Errorf(lectio.ENOTFOUND, "no preference")
		},
	}
	f.backend = &mock.Backend{
		LookupFn: func(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error) {
			f.lookups.Add(1)
			return &lectio.Passage{Text: r.String() + " in " + v.Abbreviation, Range: r}, nil
		},
		SearchFn: func(ctx context.Context, v *lectio.Version, terms []string, opts lectio.SearchOptions) (*lectio.SearchResults, error) {
			return &lectio.SearchResults{Total: opts.Limit}, nil
		},
	}
	registry := lectio.NewRegistry()
	registry.Register("test", f.backend)

	f.svc = lookup.NewService(participle.NewParser(), versions, prefs, &mock.ConfessionService{}, registry)
	return f
}

func TestService_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("uses the default version", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		p, err := f.svc.Lookup(context.Background(), lookup.Caller{}, "John 3:16", "")

		require.NoError(t, err)
		assert.Equal(t, "John 3:16 in ESV", p.Text)
		assert.Equal(t, esv, p.Version)
	})

	t.Run("uses the user's preferred version", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.prefs[7] = nwt.ID

		p, err := f.svc.Lookup(context.Background(), lookup.Caller{UserID: ptr(int64(7))}, "John 3:16", "")

		require.NoError(t, err)
		assert.Equal(t, "John 3:16 in NWT", p.Text)
	})

	t.Run("explicit command wins", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.prefs[7] = nwt.ID

		p, err := f.svc.Lookup(context.Background(), lookup.Caller{UserID: ptr(int64(7))}, "Genesis 1:1", "esv")

		require.NoError(t, err)
		assert.Equal(t, "Genesis 1:1 in ESV", p.Text)
	})

	t.Run("checks coverage before calling the backend", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Lookup(context.Background(), lookup.Caller{}, "Genesis 1:1", "nwt")

		assert.Equal(t, lectio.ECOVERAGE, lectio.ErrorCode(err))
		assert.Zero(t, f.lookups.Load())
	})

	t.Run("returns ENOTSUPPORTED for an unregistered backend", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Lookup(context.Background(), lookup.Caller{}, "John 1:1", "kjv")

		assert.Equal(t, lectio.ENOTSUPPORTED, lectio.ErrorCode(err))
	})

	t.Run("returns parse errors", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Lookup(context.Background(), lookup.Caller{}, "Hezekiah 1:1", "")

		assert.Equal(t, lectio.EBOOK, lectio.ErrorCode(err))
	})

	t.Run("returns EVERSION for an unknown command", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Lookup(context.Background(), lookup.Caller{}, "John 1:1", "msg")

		assert.Equal(t, lectio.EVERSION, lectio.ErrorCode(err))
	})
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty terms", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Search(context.Background(), lookup.Caller{}, "", []string{"  "}, lectio.SearchOptions{})

		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})

	t.Run("applies the default limit", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		res, err := f.svc.Search(context.Background(), lookup.Caller{}, "", []string{"love"}, lectio.SearchOptions{})

		require.NoError(t, err)
		assert.Equal(t, lookup.DefaultSearchLimit, res.Total)
	})

	t.Run("rejects a negative offset", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Search(context.Background(), lookup.Caller{}, "", []string{"love"}, lectio.SearchOptions{Offset: -1})

		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})
}

func TestService_LookupAll(t *testing.T) {
	t.Parallel()

	t.Run("keeps reference order under concurrency", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.backend.LookupFn = func(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error) {
			// Earlier references finish last.
			time.Sleep(time.Duration(30-r.Start.Verse) * time.Millisecond)
			return &lectio.Passage{Text: r.String(), Range: r}, nil
		}

		results, err := f.svc.LookupAll(context.Background(), lookup.Caller{}, "see [John 1:1], [John 1:2] and [John 1:3]")

		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, res := range results {
			require.NoError(t, res.Err)
			assert.Equal(t, lectio.Verse{Chapter: 1, Verse: i + 1}, res.Passage.Range.Start)
		}
	})

	t.Run("explicit version abbreviation wins", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.prefs[7] = esv.ID

		results, err := f.svc.LookupAll(context.Background(), lookup.Caller{UserID: ptr(int64(7))}, "[John 3:16 NWT] [John 3:17]")

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "John 3:16 in NWT", results[0].Passage.Text)
		assert.Equal(t, "John 3:17 in ESV", results[1].Passage.Text)
	})

	t.Run("reports errors per reference", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		results, err := f.svc.LookupAll(context.Background(), lookup.Caller{}, "[Genesis 1:1 NWT] [Hezekiah 2:3] [John 1:1 XYZ] [Mark 1:1]")

		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, lectio.ECOVERAGE, lectio.ErrorCode(results[0].Err))
		assert.Equal(t, lectio.EBOOK, lectio.ErrorCode(results[1].Err))
		assert.Equal(t, lectio.EVERSION, lectio.ErrorCode(results[2].Err))
		require.NoError(t, results[3].Err)
		assert.Equal(t, "Mark 1:1 in ESV", results[3].Passage.Text)
	})

	t.Run("returns nothing for text without references", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		results, err := f.svc.LookupAll(context.Background(), lookup.Caller{}, "no [brackets here] at all")

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.svc.LookupAll(ctx, lookup.Caller{}, "[John 1:1 NWT]")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_SetVersion(t *testing.T) {
	t.Parallel()

	t.Run("stores the version ID", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		var stored int64
		f.svc.Preferences = &mock.PreferenceService{
			SetPreferenceFn: func(ctx context.Context, kind lectio.OwnerKind, ownerID, versionID int64) error {
				stored = versionID
				return nil
			},
		}

		v, err := f.svc.SetVersion(context.Background(), lectio.OwnerGuild, 9, "nwt")

		require.NoError(t, err)
		assert.Equal(t, nwt, v)
		assert.Equal(t, nwt.ID, stored)
	})

	t.Run("returns EVERSION for an unknown command", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.SetVersion(context.Background(), lectio.OwnerUser, 9, "msg")

		assert.Equal(t, lectio.EVERSION, lectio.ErrorCode(err))
	})
}
