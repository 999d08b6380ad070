package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/lectio/cmd/lectio"
	"github.com/fwojciec/lectio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
versions:
  - {command: nwt, name: New World Translation, abbreviation: NWT, backend: JWOrg, locator: en/wol/b/r1/lp-e/nwtsty, books: "OT,NT"}
confessions:
  - command: wcf
    name: Westminster Confession of Faith
    type: CHAPTERS
    chapters:
      - number: 11
        title: Of Justification
        paragraphs:
          - {number: 1, text: Those whom God effectually calleth he also freely justifieth.}
          - {number: 2, text: Faith is the alone instrument of justification.}
`

const chapterHTML = `<html><body><div id="bibleText">
<span class="verse" id="v43-3-2-1"><a class="vl" href="/b/43/3#v2">2 </a>This one came to him+ in the night</span>
<span class="verse" id="v43-3-3-1"><a class="vl" href="/b/43/3#v3">3 </a>In answer Jesus said to him</span>
</div></body></html>`

// harness runs commands against one database file with a canned fetcher.
type harness struct {
	t      *testing.T
	dbPath string
	urls   []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedYAML), 0o644))

	h := &harness{t: t, dbPath: filepath.Join(dir, "lectio.db")}
	stdout, stderr, err := h.run("seed", seedPath)
	require.NoError(t, err, stderr)
	require.Contains(t, stdout, "Versions: 1 added")
	return h
}

func (h *harness) run(args ...string) (string, string, error) {
	m := main.NewMain()
	m.DBPath = h.dbPath
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			h.urls = append(h.urls, url)
			return chapterHTML, nil
		},
		CloseFn: func() error { return nil },
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), append([]string{"--db", h.dbPath}, args...), stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("seeding twice skips existing entries", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		seedPath := filepath.Join(filepath.Dir(h.dbPath), "seed.yaml")

		stdout, _, err := h.run("seed", seedPath)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Versions: 0 added, 1 already present")
		assert.Contains(t, stdout, "Confessions: 0 added, 1 already present")
	})

	t.Run("lookup fetches the chapter page of the version", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		stdout, stderr, err := h.run("lookup", "--version", "nwt", "John", "3:2")

		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "**2.** This one came to him in the night")
		assert.Contains(t, stdout, "(NWT)")
		require.Len(t, h.urls, 1)
		assert.Equal(t, "https://wol.jw.org/en/wol/b/r1/lp-e/nwtsty/43/3", h.urls[0])
	})

	t.Run("lookup uses the user's preference", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		stdout, stderr, err := h.run("set-version", "42", "nwt")
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "New World Translation")

		stdout, stderr, err = h.run("lookup", "--user", "42", "John", "3:3")
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "In answer Jesus said to him")
	})

	t.Run("lookup without any usable version reports the default", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		_, stderr, err := h.run("lookup", "John", "3:3")

		require.Error(t, err)
		assert.Contains(t, stderr, "error: esv is not a supported version")
	})

	t.Run("default version comes from the flag", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		stdout, stderr, err := h.run("--default-version", "nwt", "lookup", "John", "3:3")

		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "In answer")
	})

	t.Run("references reports each bracket", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		stdout, stderr, err := h.run("--default-version", "nwt", "references", "see [John 3:2] and [Hezekiah 1:1]")

		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "This one came")
		assert.Contains(t, stderr, "Hezekiah 1:1")
	})

	t.Run("versions lists seeded versions", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		stdout, _, err := h.run("--default-version", "nwt", "versions")

		require.NoError(t, err)
		assert.Contains(t, stdout, "nwt")
		assert.Contains(t, stdout, "New World Translation (default)")
	})

	t.Run("confess prints a paragraph with its chapter title", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		stdout, stderr, err := h.run("confess", "wcf", "11.2")

		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "**Westminster Confession of Faith 11.2** Of Justification")
		assert.Contains(t, stdout, "Faith is the alone instrument")
	})

	t.Run("confess-search counts matches", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		stdout, stderr, err := h.run("confess-search", "wcf", "faith")

		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "I have found 1 match")
		assert.True(t, strings.Contains(stdout, "11.2"))
	})

	t.Run("delete-version clears preferences", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		_, stderr, err := h.run("set-version", "7", "nwt")
		require.NoError(t, err, stderr)

		stdout, stderr, err := h.run("delete-version", "--force", "nwt")
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, `Deleted version "nwt"`)

		_, stderr, err = h.run("lookup", "--user", "7", "John", "3:3")
		require.Error(t, err)
		assert.Contains(t, stderr, "esv is not a supported version")
	})
}
