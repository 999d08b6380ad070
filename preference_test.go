package lectio_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// resolverFixture wires a resolver over in-memory preferences and versions.
func resolverFixture(prefs map[lectio.OwnerKind]map[int64]*int64, versions map[int64]*lectio.Version) (*lectio.Resolver, *[]string) {
	var calls []string
	p := &mock.PreferenceService{
		FindPreferenceFn: func(_ context.Context, kind lectio.OwnerKind, ownerID int64) (*lectio.Preference, error) {
			calls = append(calls, string(kind))
			vid, ok := prefs[kind][ownerID]
			if !ok {
				return nil, lectio.Errorf(lectio.ENOTFOUND, "no preference")
			}
			return &lectio.Preference{Kind: kind, OwnerID: ownerID, VersionID: vid}, nil
		},
	}
	v := &mock.VersionService{
		FindVersionByIDFn: func(_ context.Context, id int64) (*lectio.Version, error) {
			if ver, ok := versions[id]; ok {
				return ver, nil
			}
			return nil, lectio.Errorf(lectio.EVERSION, "no version")
		},
		FindVersionByCommandFn: func(_ context.Context, command string) (*lectio.Version, error) {
			calls = append(calls, "default:"+command)
			for _, ver := range versions {
				if ver.Command == command {
					return ver, nil
				}
			}
			return nil, lectio.Errorf(lectio.EVERSION, "no version")
		},
	}
	return lectio.NewResolver(p, v), &calls
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	esv := &lectio.Version{ID: 1, Command: "esv"}
	kjv := &lectio.Version{ID: 2, Command: "kjv"}
	nwt := &lectio.Version{ID: 3, Command: "nwt13"}
	versions := map[int64]*lectio.Version{1: esv, 2: kjv, 3: nwt}

	t.Run("user preference wins without consulting guild", func(t *testing.T) {
		t.Parallel()

		r, calls := resolverFixture(map[lectio.OwnerKind]map[int64]*int64{
			lectio.OwnerUser:  {10: ptr(int64(2))},
			lectio.OwnerGuild: {20: ptr(int64(3))},
		}, versions)

		v, err := r.Resolve(context.Background(), ptr(int64(10)), ptr(int64(20)))

		require.NoError(t, err)
		assert.Equal(t, kjv, v)
		assert.Equal(t, []string{"user"}, *calls)
	})

	t.Run("falls back to guild preference", func(t *testing.T) {
		t.Parallel()

		r, calls := resolverFixture(map[lectio.OwnerKind]map[int64]*int64{
			lectio.OwnerGuild: {20: ptr(int64(3))},
		}, versions)

		v, err := r.Resolve(context.Background(), ptr(int64(10)), ptr(int64(20)))

		require.NoError(t, err)
		assert.Equal(t, nwt, v)
		assert.Equal(t, []string{"user", "guild"}, *calls)
	})

	t.Run("skips preference whose version was deleted", func(t *testing.T) {
		t.Parallel()

		r, _ := resolverFixture(map[lectio.OwnerKind]map[int64]*int64{
			lectio.OwnerUser:  {10: nil},
			lectio.OwnerGuild: {20: ptr(int64(99))},
		}, versions)

		v, err := r.Resolve(context.Background(), ptr(int64(10)), ptr(int64(20)))

		require.NoError(t, err)
		assert.Equal(t, esv, v)
	})

	t.Run("direct message without guild uses default", func(t *testing.T) {
		t.Parallel()

		r, calls := resolverFixture(nil, versions)

		v, err := r.Resolve(context.Background(), ptr(int64(10)), nil)

		require.NoError(t, err)
		assert.Equal(t, esv, v)
		assert.Equal(t, []string{"user", "default:esv"}, *calls)
	})

	t.Run("custom default command", func(t *testing.T) {
		t.Parallel()

		r, _ := resolverFixture(nil, versions)
		r.DefaultCommand = "kjv"

		v, err := r.Resolve(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, kjv, v)
	})

	t.Run("missing default version reports EVERSION", func(t *testing.T) {
		t.Parallel()

		r, _ := resolverFixture(nil, map[int64]*lectio.Version{})

		_, err := r.Resolve(context.Background(), nil, nil)

		assert.Equal(t, lectio.EVERSION, lectio.ErrorCode(err))
	})

	t.Run("propagates store failures", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("database is locked")
		r := lectio.NewResolver(&mock.PreferenceService{
			FindPreferenceFn: func(context.Context, lectio.OwnerKind, int64) (*lectio.Preference, error) {
				return nil, storeErr
			},
		}, &mock.VersionService{})

		_, err := r.Resolve(context.Background(), ptr(int64(1)), nil)

		assert.ErrorIs(t, err, storeErr)
	})
}
