// Package participle implements lectio.ReferenceParser with a
// participle grammar.
package participle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fwojciec/lectio"
)

// Ensure Parser implements lectio.ReferenceParser at compile time.
var _ lectio.ReferenceParser = (*Parser)(nil)

// bookName is an optional numeral followed by one or more words, as in
// "1 John", "Song of Solomon" or "Gen.".
type bookName struct {
	Prefix *int     `parser:"@Number?"`
	Words  []string `parser:"@Word+ \".\"?"`
}

func (b *bookName) String() string {
	s := strings.Join(b.Words, " ")
	if b.Prefix != nil {
		s = strconv.Itoa(*b.Prefix) + " " + s
	}
	return s
}

// rangeEnd follows the dash. A local end stays in the starting book; a
// cross end names a book again.
type rangeEnd struct {
	Cross *crossEnd `parser:"  @@"`
	Local *localEnd `parser:"| @@"`
}

// localEnd is a verse in the starting chapter, or chapter:verse when
// Second is set.
type localEnd struct {
	First  int  `parser:"@Number"`
	Second *int `parser:"( \":\" @Number )?"`
}

type crossEnd struct {
	Book    bookName `parser:"@@"`
	Chapter int      `parser:"@Number"`
	Verse   *int     `parser:"( \":\" @Number )?"`
}

type verseRangeAST struct {
	Book    bookName  `parser:"@@"`
	Chapter int       `parser:"@Number"`
	Verse   *int      `parser:"( \":\" @Number"`
	End     *rangeEnd `parser:"  ( \"-\" @@ )? )?"`
	Version string    `parser:"( @Word @Number? )?"`
}

type addressAST struct {
	First  int  `parser:"@Number"`
	Second *int `parser:"( \".\" @Number )?"`
}

var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[.:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	verseRangeParser = participle.MustBuild[verseRangeAST](
		participle.Lexer(referenceLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(4),
	)
	addressParser = participle.MustBuild[addressAST](
		participle.Lexer(referenceLexer),
		participle.Elide("Whitespace"),
	)
)

// dashes maps typographic dashes to the ASCII hyphen the grammar expects.
var dashes = strings.NewReplacer("–", "-", "—", "-", "‒", "-", "−", "-")

// bracketed matches "[...]" spans; candidate filters those that start like
// a reference so prose in brackets is not reported as an error.
var (
	bracketed = regexp.MustCompile(`\[([^\[\]]+)\]`)
	candidate = regexp.MustCompile(`^\s*(?:\d+\s*)?[A-Za-z][A-Za-z. ]*?\s*\d+\s*(?:[:\-\x{2013}\x{2014}]|\s+[A-Za-z]+\d*\s*$|$)`)
)

// Parser parses scripture references and confession addresses.
type Parser struct{}

// NewParser returns a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseVerseRange parses a single reference. Trailing text, including a
// version abbreviation, is rejected.
func (p *Parser) ParseVerseRange(s string) (lectio.VerseRange, error) {
	r, version, err := p.parse(s)
	if err != nil {
		return lectio.VerseRange{}, err
	}
	if version != "" {
		return lectio.VerseRange{}, lectio.Errorf(lectio.EMALFORMED, "I do not understand %q", s)
	}
	return r, nil
}

// FindReferences returns the bracketed references in text with the
// version abbreviation written after each, if any.
func (p *Parser) FindReferences(text string) []lectio.ReferenceMatch {
	var matches []lectio.ReferenceMatch
	for _, m := range bracketed.FindAllStringSubmatch(text, -1) {
		inner := m[1]
		if !candidate.MatchString(inner) {
			continue
		}
		r, version, err := p.parse(inner)
		matches = append(matches, lectio.ReferenceMatch{
			Text:    strings.TrimSpace(inner),
			Range:   r,
			Version: version,
			Err:     err,
		})
	}
	return matches
}

func (p *Parser) parse(s string) (lectio.VerseRange, string, error) {
	input := strings.TrimSpace(dashes.Replace(s))
	if input == "" {
		return lectio.VerseRange{}, "", lectio.Errorf(lectio.EMALFORMED, "No reference given")
	}

	ast, err := verseRangeParser.ParseString("", input)
	if err != nil {
		return lectio.VerseRange{}, "", lectio.Errorf(lectio.EMALFORMED, "I do not understand %q", strings.TrimSpace(s))
	}

	book, ok := lectio.LookupBook(ast.Book.String())
	if !ok {
		return lectio.VerseRange{}, "", lectio.Errorf(lectio.EBOOK, "I do not understand the book %q", ast.Book.String())
	}

	if ast.Verse == nil {
		if ast.Chapter < 1 {
			return lectio.VerseRange{}, "", lectio.Errorf(lectio.EINVALID, "Chapters start at 1")
		}
		return lectio.ChapterRange(book, ast.Chapter), ast.Version, nil
	}

	start := lectio.Verse{Chapter: ast.Chapter, Verse: *ast.Verse}
	end, err := resolveEnd(book, start, ast.End)
	if err != nil {
		return lectio.VerseRange{}, "", err
	}

	r, err := lectio.NewVerseRange(book, start, end)
	if err != nil {
		return lectio.VerseRange{}, "", err
	}
	return r, ast.Version, nil
}

func resolveEnd(book lectio.Book, start lectio.Verse, e *rangeEnd) (*lectio.Verse, error) {
	switch {
	case e == nil:
		return nil, nil
	case e.Cross != nil:
		name := e.Cross.Book.String()
		endBook, ok := lectio.LookupBook(name)
		if !ok {
			return nil, lectio.Errorf(lectio.EBOOK, "I do not understand the book %q", name)
		}
		if endBook != book {
			return nil, lectio.Errorf(lectio.EINVALID, "A range cannot cross from %s into %s", book, endBook)
		}
		if e.Cross.Verse == nil {
			return nil, lectio.Errorf(lectio.EMALFORMED, "A range ending in %s needs a chapter and verse", endBook)
		}
		return &lectio.Verse{Chapter: e.Cross.Chapter, Verse: *e.Cross.Verse}, nil
	case e.Local.Second != nil:
		return &lectio.Verse{Chapter: e.Local.First, Verse: *e.Local.Second}, nil
	default:
		return &lectio.Verse{Chapter: start.Chapter, Verse: e.Local.First}, nil
	}
}

// ParseConfessionAddress parses "42" or "1.2".
func (p *Parser) ParseConfessionAddress(s string) (lectio.ConfessionAddress, error) {
	ast, err := addressParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return lectio.ConfessionAddress{}, lectio.Errorf(lectio.EMALFORMED, "I do not understand %q", strings.TrimSpace(s))
	}
	if ast.Second == nil {
		if ast.First < 1 {
			return lectio.ConfessionAddress{}, lectio.Errorf(lectio.EMALFORMED, "Sections start at 1")
		}
		return lectio.ConfessionAddress{Number: ast.First}, nil
	}
	if ast.First < 1 || *ast.Second < 1 {
		return lectio.ConfessionAddress{}, lectio.Errorf(lectio.EMALFORMED, "Sections start at 1")
	}
	return lectio.ConfessionAddress{Chapter: ast.First, Number: *ast.Second}, nil
}
