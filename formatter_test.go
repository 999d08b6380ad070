package lectio_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/lectio"
	"github.com/stretchr/testify/assert"
)

func TestFormatPassage(t *testing.T) {
	t.Parallel()

	t.Run("converts bold sentinels and appends reference", func(t *testing.T) {
		t.Parallel()

		p := &lectio.Passage{
			Text:    "__BOLD__16.__BOLD__ For God so loved the world",
			Range:   lectio.VerseRange{Book: lectio.John, Start: lectio.Verse{Chapter: 3, Verse: 16}},
			Version: &lectio.Version{Abbreviation: "NWT"},
		}

		got := lectio.FormatPassage(p, 0)

		assert.Equal(t, "**16.** For God so loved the world\n\nJohn 3:16 (NWT)", got)
	})

	t.Run("truncates text to fit limit", func(t *testing.T) {
		t.Parallel()

		p := &lectio.Passage{
			Text:  strings.Repeat("word ", 100),
			Range: lectio.ChapterRange(lectio.Psalms, 119),
		}

		got := lectio.FormatPassage(p, 60)

		assert.Equal(t, 60, utf8.RuneCountInString(got))
		assert.Contains(t, got, lectio.Ellipsis+"\n\nPsalms 119")
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", lectio.Truncate("short", 10))
	assert.Equal(t, "abcd…", lectio.Truncate("abcdefghij", 5))
	assert.Empty(t, lectio.Truncate("abc", 0))
}

func TestFormatSearchResults(t *testing.T) {
	t.Parallel()

	t.Run("numbers results from offset", func(t *testing.T) {
		t.Parallel()

		results := &lectio.SearchResults{
			Total: 12,
			Passages: []*lectio.Passage{
				{Text: "__BOLD__1.__BOLD__ In the beginning", Range: lectio.VerseRange{Book: lectio.Genesis, Start: lectio.Verse{Chapter: 1, Verse: 1}}},
			},
		}

		got := lectio.FormatSearchResults(results, 5)

		assert.Equal(t, "I have found 12 matches\n6. **Genesis 1:1** 1. In the beginning", got)
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "I have found 0 matches", lectio.FormatSearchResults(&lectio.SearchResults{}, 0))
	})
}
