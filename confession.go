package lectio

import (
	"context"
	"strconv"
	"strings"
)

// ConfessionType selects how a confession is addressed.
type ConfessionType string

// Confession types.
const (
	ConfessionChapters ConfessionType = "CHAPTERS"
	ConfessionQA       ConfessionType = "QA"
	ConfessionArticles ConfessionType = "ARTICLES"
)

// Valid reports whether t is a known type.
func (t ConfessionType) Valid() bool {
	switch t {
	case ConfessionChapters, ConfessionQA, ConfessionArticles:
		return true
	}
	return false
}

// Numbering is how a confession displays section numbers.
type Numbering string

// Numbering styles.
const (
	NumberingArabic Numbering = "ARABIC"
	NumberingRoman  Numbering = "ROMAN"
)

// Valid reports whether n is a known style.
func (n Numbering) Valid() bool {
	return n == NumberingArabic || n == NumberingRoman
}

// Format renders i in this numbering style.
func (n Numbering) Format(i int) string {
	if n == NumberingRoman {
		return ToRoman(i)
	}
	return strconv.Itoa(i)
}

// Confession is a historic confession, catechism or set of articles.
type Confession struct {
	ID        int64          `json:"id"`
	Command   string         `json:"command"`
	Name      string         `json:"name"`
	Type      ConfessionType `json:"type"`
	Numbering Numbering      `json:"numbering"`
}

// Validate returns an error if the confession contains invalid fields.
func (c *Confession) Validate() error {
	if c.Command == "" {
		return Errorf(EINVALID, "Confession command required")
	}
	if c.Name == "" {
		return Errorf(EINVALID, "Confession name required")
	}
	if !c.Type.Valid() {
		return Errorf(EINVALID, "Unknown confession type %q", c.Type)
	}
	if !c.Numbering.Valid() {
		return Errorf(EINVALID, "Unknown numbering %q", c.Numbering)
	}
	return nil
}

// Chapter groups paragraphs of a CHAPTERS confession.
type Chapter struct {
	ConfessionID int64  `json:"confessionId"`
	Number       int    `json:"number"`
	Title        string `json:"title"`
}

// Paragraph is a numbered paragraph within a chapter. Chapter is loaded by
// joining on (confession, chapter number) and is nil when no chapter row
// exists for the paragraph.
type Paragraph struct {
	ConfessionID  int64    `json:"confessionId"`
	ChapterNumber int      `json:"chapterNumber"`
	Number        int      `json:"number"`
	Text          string   `json:"text"`
	Chapter       *Chapter `json:"chapter,omitempty"`
}

// Address returns the paragraph's chapter.paragraph address.
func (p *Paragraph) Address() ConfessionAddress {
	return ConfessionAddress{Chapter: p.ChapterNumber, Number: p.Number}
}

// Question is a catechism question and its answer.
type Question struct {
	ConfessionID int64  `json:"confessionId"`
	Number       int    `json:"number"`
	Text         string `json:"text"`
	Answer       string `json:"answer"`
}

// Article is a numbered article with a title.
type Article struct {
	ConfessionID int64  `json:"confessionId"`
	Number       int    `json:"number"`
	Title        string `json:"title"`
	Text         string `json:"text"`
}

// ConfessionService represents a service for reading and searching confessions.
type ConfessionService interface {
	// FindConfessions lists all confessions ordered by command.
	FindConfessions(ctx context.Context) ([]*Confession, error)

	// FindConfessionByCommand retrieves a confession by its command.
	// Matching is case-insensitive. Returns ENOTFOUND if none exists.
	FindConfessionByCommand(ctx context.Context, command string) (*Confession, error)

	// FindChapters lists the chapters of c in ascending order.
	// Returns ENOSECTIONS if c has no chapters.
	FindChapters(ctx context.Context, c *Confession) ([]*Chapter, error)

	// FindParagraph retrieves one paragraph with its chapter.
	// Returns ENOTFOUND if it does not exist.
	FindParagraph(ctx context.Context, c *Confession, chapter, paragraph int) (*Paragraph, error)

	// FindQuestions lists the questions of c in ascending order.
	FindQuestions(ctx context.Context, c *Confession) ([]*Question, error)

	// CountQuestions returns the number of questions in c.
	CountQuestions(ctx context.Context, c *Confession) (int, error)

	// FindQuestion retrieves one question. Returns ENOTFOUND if it does not exist.
	FindQuestion(ctx context.Context, c *Confession, number int) (*Question, error)

	// FindArticles lists the articles of c in ascending order.
	// Returns ENOSECTIONS if c has no articles.
	FindArticles(ctx context.Context, c *Confession) ([]*Article, error)

	// FindArticle retrieves one article. Returns ENOTFOUND if it does not exist.
	FindArticle(ctx context.Context, c *Confession, number int) (*Article, error)

	// SearchParagraphs streams paragraphs matching every term, ordered by
	// chapter then paragraph number. Returns EINVALID for zero terms.
	SearchParagraphs(ctx context.Context, c *Confession, terms []string) (Cursor[*Paragraph], error)

	// SearchQuestions streams questions matching every term in the
	// question or answer. Returns EINVALID for zero terms.
	SearchQuestions(ctx context.Context, c *Confession, terms []string) (Cursor[*Question], error)

	// SearchArticles streams articles matching every term in the title or
	// text. Returns EINVALID for zero terms.
	SearchArticles(ctx context.Context, c *Confession, terms []string) (Cursor[*Article], error)

	// CreateConfession stores a confession and sets its ID.
	// Returns ECONFLICT if the command is taken.
	CreateConfession(ctx context.Context, c *Confession) error

	// CreateChapter stores a chapter. Returns ECONFLICT if it exists.
	CreateChapter(ctx context.Context, ch *Chapter) error

	// CreateParagraph stores a paragraph. Returns ECONFLICT if it exists.
	CreateParagraph(ctx context.Context, p *Paragraph) error

	// CreateQuestion stores a question. Returns ECONFLICT if it exists.
	CreateQuestion(ctx context.Context, q *Question) error

	// CreateArticle stores an article. Returns ECONFLICT if it exists.
	CreateArticle(ctx context.Context, a *Article) error
}

// CleanTerms drops empty terms and surrounding whitespace.
// Returns EINVALID if nothing remains.
func CleanTerms(terms []string) ([]string, error) {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, strings.Fields(t)...)
	}
	if len(out) == 0 {
		return nil, Errorf(EINVALID, "Please include some terms to search for")
	}
	return out, nil
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// ToRoman renders a positive integer as an upper-case roman numeral.
func ToRoman(i int) string {
	if i <= 0 {
		return strconv.Itoa(i)
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for i >= r.value {
			b.WriteString(r.symbol)
			i -= r.value
		}
	}
	return b.String()
}
