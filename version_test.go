package lectio_test

import (
	"testing"

	"github.com/fwojciec/lectio"
	"github.com/stretchr/testify/assert"
)

func TestVersion_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *lectio.Version {
		return &lectio.Version{
			Command:      "nwt",
			Name:         "New World Translation",
			Abbreviation: "NWT",
			Backend:      "JWOrg",
			Books:        lectio.ProtestantBible,
		}
	}

	t.Run("valid version", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().Validate())
	})

	t.Run("command with spaces", func(t *testing.T) {
		t.Parallel()
		v := valid()
		v.Command = "new world"
		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(v.Validate()))
	})

	t.Run("missing backend", func(t *testing.T) {
		t.Parallel()
		v := valid()
		v.Backend = ""
		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(v.Validate()))
	})

	t.Run("no books", func(t *testing.T) {
		t.Parallel()
		v := valid()
		v.Books = 0
		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(v.Validate()))
	})
}

func TestVersion_CheckCoverage(t *testing.T) {
	t.Parallel()

	nt := &lectio.Version{Name: "Christian Greek Scriptures", Books: lectio.NewTestament}

	t.Run("book in version", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, nt.CheckCoverage(lectio.ChapterRange(lectio.John, 3)))
	})

	t.Run("old testament book", func(t *testing.T) {
		t.Parallel()
		err := nt.CheckCoverage(lectio.ChapterRange(lectio.Genesis, 1))
		assert.Equal(t, lectio.ECOVERAGE, lectio.ErrorCode(err))
		assert.Contains(t, lectio.ErrorMessage(err), "Genesis")
	})

	t.Run("deuterocanonical book needs its own bit", func(t *testing.T) {
		t.Parallel()
		v := &lectio.Version{Name: "Protestant", Books: lectio.ProtestantBible}
		assert.False(t, v.Covers(lectio.ChapterRange(lectio.Tobit, 1)))

		full := &lectio.Version{Name: "Full", Books: lectio.AllBooks}
		assert.True(t, full.Covers(lectio.ChapterRange(lectio.Tobit, 1)))
	})
}
