package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/lectio"
	main "github.com/fwojciec/lectio/cmd/lectio"
	"github.com/fwojciec/lectio/lookup"
	"github.com/fwojciec/lectio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDeps returns Dependencies over a Service with the given mocks; nil
// mocks are replaced by empty ones.
func newDeps(versions *mock.VersionService, confessions *mock.ConfessionService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	if versions == nil {
		versions = &mock.VersionService{}
	}
	if confessions == nil {
		confessions = &mock.ConfessionService{}
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	svc := lookup.NewService(&mock.ReferenceParser{}, versions, &mock.PreferenceService{}, confessions, lectio.NewRegistry())
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Service: svc,
	}, stdout, stderr
}

func TestAddVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates version with parsed books", func(t *testing.T) {
		t.Parallel()

		var created *lectio.Version
		deps, stdout, stderr := newDeps(&mock.VersionService{
			CreateVersionFn: func(ctx context.Context, v *lectio.Version) error {
				created = v
				v.ID = 9
				return nil
			},
		}, nil)

		cmd := &main.AddVersionCmd{
			Command:      "nwt",
			Abbreviation: "NWT",
			Name:         "New World Translation",
			Backend:      "JWOrg",
			Locator:      "en/wol/b/r1/lp-e/nwtsty",
			Books:        "NT",
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())
		assert.Contains(t, stdout.String(), `Added version "nwt" (NWT)`)
		require.NotNil(t, created)
		assert.Equal(t, lectio.NewTestament, created.Books)
	})

	t.Run("rejects unknown book group", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil, nil)

		cmd := &main.AddVersionCmd{Command: "x", Abbreviation: "X", Name: "X", Backend: "JWOrg", Books: "Hezekiah"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, lectio.EBOOK, lectio.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports conflicts", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.VersionService{
			CreateVersionFn: func(ctx context.Context, v *lectio.Version) error {
				return lectio.Errorf(lectio.ECONFLICT, "version %s already exists", v.Command)
			},
		}, nil)

		cmd := &main.AddVersionCmd{Command: "nwt", Abbreviation: "NWT", Name: "NWT", Backend: "JWOrg", Books: "OT,NT"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: version nwt already exists")
	})
}

func TestUpdateVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("requires a field to change", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil, nil)

		err := (&main.UpdateVersionCmd{Command: "nwt"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
		assert.Contains(t, stderr.String(), "nothing to update")
	})

	t.Run("passes only set fields", func(t *testing.T) {
		t.Parallel()

		var got lectio.VersionUpdate
		deps, stdout, _ := newDeps(&mock.VersionService{
			UpdateVersionFn: func(ctx context.Context, command string, upd lectio.VersionUpdate) (*lectio.Version, error) {
				got = upd
				return &lectio.Version{Command: command, Backend: "JWOrg", Locator: *upd.Locator}, nil
			},
		}, nil)

		err := (&main.UpdateVersionCmd{Command: "nwt", Locator: "en/wol/b/r1/lp-e/nwt"}).Run(deps)

		require.NoError(t, err)
		assert.Nil(t, got.Backend)
		assert.Nil(t, got.Books)
		require.NotNil(t, got.Locator)
		assert.Contains(t, stdout.String(), "en/wol/b/r1/lp-e/nwt")
	})
}

func TestDeleteVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil, nil)

		err := (&main.DeleteVersionCmd{Command: "nwt"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports unknown version", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.VersionService{
			DeleteVersionFn: func(ctx context.Context, command string) error {
				return lectio.Errorf(lectio.EVERSION, "%s is not a supported version", command)
			},
		}, nil)

		err := (&main.DeleteVersionCmd{Command: "xyz", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, lectio.EVERSION, lectio.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: xyz is not a supported version")
	})
}

func TestVersionsCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints message when empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.VersionService{
			FindVersionsFn: func(ctx context.Context) ([]*lectio.Version, error) {
				return nil, nil
			},
		}, nil)

		err := (&main.VersionsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No versions registered")
	})

	t.Run("marks the default version", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.VersionService{
			FindVersionsFn: func(ctx context.Context) ([]*lectio.Version, error) {
				return []*lectio.Version{
					{Command: "esv", Abbreviation: "ESV", Name: "English Standard Version"},
					{Command: "nwt", Abbreviation: "NWT", Name: "New World Translation"},
				}, nil
			},
		}, nil)

		err := (&main.VersionsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "English Standard Version (default)")
		assert.NotContains(t, stdout.String(), "New World Translation (default)")
	})
}
