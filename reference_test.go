package lectio_test

import (
	"testing"

	"github.com/fwojciec/lectio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerseRange_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    lectio.VerseRange
		want string
	}{
		{
			name: "single verse",
			r:    lectio.VerseRange{Book: lectio.John, Start: lectio.Verse{Chapter: 3, Verse: 16}},
			want: "John 3:16",
		},
		{
			name: "range within chapter",
			r:    lectio.VerseRange{Book: lectio.John1, Start: lectio.Verse{Chapter: 3, Verse: 16}, End: &lectio.Verse{Chapter: 3, Verse: 18}},
			want: "1 John 3:16-18",
		},
		{
			name: "range across chapters",
			r:    lectio.VerseRange{Book: lectio.Genesis, Start: lectio.Verse{Chapter: 1, Verse: 31}, End: &lectio.Verse{Chapter: 2, Verse: 3}},
			want: "Genesis 1:31-2:3",
		},
		{
			name: "whole chapter",
			r:    lectio.ChapterRange(lectio.Psalms, 23),
			want: "Psalms 23",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.r.String())
		})
	}
}

func TestNewVerseRange(t *testing.T) {
	t.Parallel()

	t.Run("copies end", func(t *testing.T) {
		t.Parallel()

		end := lectio.Verse{Chapter: 3, Verse: 18}
		r, err := lectio.NewVerseRange(lectio.John, lectio.Verse{Chapter: 3, Verse: 16}, &end)
		require.NoError(t, err)

		end.Verse = 99
		assert.Equal(t, 18, r.End.Verse)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		t.Parallel()

		_, err := lectio.NewVerseRange(lectio.John, lectio.Verse{Chapter: 3, Verse: 16}, &lectio.Verse{Chapter: 3, Verse: 2})
		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})

	t.Run("rejects end in earlier chapter", func(t *testing.T) {
		t.Parallel()

		_, err := lectio.NewVerseRange(lectio.John, lectio.Verse{Chapter: 3, Verse: 16}, &lectio.Verse{Chapter: 2, Verse: 20})
		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})

	t.Run("rejects unknown book", func(t *testing.T) {
		t.Parallel()

		_, err := lectio.NewVerseRange(lectio.BookUnknown, lectio.Verse{Chapter: 1, Verse: 1}, nil)
		assert.Equal(t, lectio.EBOOK, lectio.ErrorCode(err))
	})

	t.Run("rejects zero chapter", func(t *testing.T) {
		t.Parallel()

		_, err := lectio.NewVerseRange(lectio.John, lectio.Verse{Chapter: 0, Verse: 1}, nil)
		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})
}

func TestVerse_Compare(t *testing.T) {
	t.Parallel()

	a := lectio.Verse{Chapter: 3, Verse: 16}
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(lectio.Verse{Chapter: 3, Verse: 17}))
	assert.Equal(t, 1, a.Compare(lectio.Verse{Chapter: 2, Verse: 40}))
	assert.Equal(t, -1, a.Compare(lectio.Verse{Chapter: 3, Verse: lectio.OpenVerse}))
	assert.Equal(t, -1, lectio.Verse{Chapter: 3, Verse: lectio.OpenVerse}.Compare(lectio.Verse{Chapter: 4, Verse: 1}))
}

func TestVerseRange_Equal(t *testing.T) {
	t.Parallel()

	a := lectio.ChapterRange(lectio.John, 3)
	b := lectio.ChapterRange(lectio.John, 3)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(lectio.VerseRange{Book: lectio.John, Start: lectio.Verse{Chapter: 3, Verse: 1}}))
	assert.True(t, a.IsOpen())
	assert.Equal(t, lectio.Verse{Chapter: 3, Verse: lectio.OpenVerse}, a.Last())
}

func TestConfessionAddress_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", lectio.ConfessionAddress{Number: 42}.String())
	assert.Equal(t, "1.2", lectio.ConfessionAddress{Chapter: 1, Number: 2}.String())
	assert.True(t, lectio.ConfessionAddress{Number: 42}.IsFlat())
}
