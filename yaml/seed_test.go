package yaml_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedDoc = `
versions:
  - command: nwt
    name: New World Translation
    abbreviation: NWT
    backend: JWOrg
    locator: en/lp-e/r1/nwtsty
    books: OT,NT
  - command: bi12
    name: Bibbia
    abbreviation: BI12
    backend: JWOrg
    locator: it/lp-i/r6/bi12
    books: NT
confessions:
  - command: wcf
    name: Westminster Confession of Faith
    type: CHAPTERS
    chapters:
      - number: 1
        title: Of the Holy Scripture
        paragraphs:
          - number: 1
            text: Although the light of nature.
          - number: 2
            text: Under the name of Holy Scripture.
  - command: hc
    name: Heidelberg Catechism
    type: QA
    questions:
      - number: 1
        question: What is thy only comfort?
        answer: That I am not my own.
  - command: 39a
    name: Thirty-nine Articles
    type: ARTICLES
    numbering: ROMAN
    articles:
      - number: 1
        title: Of Faith in the Holy Trinity
        text: There is but one living and true God.
`

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	t.Run("decodes versions and confessions", func(t *testing.T) {
		t.Parallel()

		seed, err := yaml.LoadSeed(strings.NewReader(seedDoc))

		require.NoError(t, err)
		require.Len(t, seed.Versions, 2)
		assert.Equal(t, lectio.ProtestantBible, seed.Versions[0].Books)
		assert.Equal(t, lectio.NewTestament, seed.Versions[1].Books)
		assert.Equal(t, "en/lp-e/r1/nwtsty", seed.Versions[0].Locator)

		require.Len(t, seed.Confessions, 3)
		wcf := seed.Confessions[0]
		assert.Equal(t, lectio.NumberingArabic, wcf.Confession.Numbering)
		require.Len(t, wcf.Chapters, 1)
		require.Len(t, wcf.Paragraphs, 2)
		assert.Equal(t, 1, wcf.Paragraphs[1].ChapterNumber)
		assert.Equal(t, 2, wcf.Paragraphs[1].Number)

		hc := seed.Confessions[1]
		require.Len(t, hc.Questions, 1)
		assert.Equal(t, "That I am not my own.", hc.Questions[0].Answer)

		articles := seed.Confessions[2]
		assert.Equal(t, lectio.NumberingRoman, articles.Confession.Numbering)
		assert.Len(t, articles.Articles, 1)
	})

	t.Run("accepts an empty document", func(t *testing.T) {
		t.Parallel()

		seed, err := yaml.LoadSeed(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, seed.Versions)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadSeed(strings.NewReader("versions:\n  - comand: nwt\n"))

		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})

	t.Run("rejects unknown books", func(t *testing.T) {
		t.Parallel()

		doc := "versions:\n  - {command: x, name: X, abbreviation: X, backend: JWOrg, books: Hezekiah}\n"
		_, err := yaml.LoadSeed(strings.NewReader(doc))

		assert.Equal(t, lectio.EBOOK, lectio.ErrorCode(err))
	})

	t.Run("rejects sections that do not match the type", func(t *testing.T) {
		t.Parallel()

		doc := "confessions:\n  - command: hc\n    name: HC\n    type: QA\n    articles:\n      - {number: 1, title: T, text: X}\n"
		_, err := yaml.LoadSeed(strings.NewReader(doc))

		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})

	t.Run("rejects unknown confession types", func(t *testing.T) {
		t.Parallel()

		doc := "confessions:\n  - {command: x, name: X, type: HYMNS}\n"
		_, err := yaml.LoadSeed(strings.NewReader(doc))

		assert.Equal(t, lectio.EINVALID, lectio.ErrorCode(err))
	})
}
