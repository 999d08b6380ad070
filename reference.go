package lectio

import (
	"fmt"
	"strconv"
)

// OpenVerse as the End verse of a range means "through the last verse of
// the chapter". Bare chapter references ("John 3") produce such ranges.
const OpenVerse = 0

// Verse is a position within a book.
type Verse struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Compare orders verses by chapter then verse. An OpenVerse sorts after
// every verse of its chapter.
func (v Verse) Compare(other Verse) int {
	if v.Chapter != other.Chapter {
		return compareInt(v.Chapter, other.Chapter)
	}
	if v.Verse == other.Verse {
		return 0
	}
	if v.Verse == OpenVerse {
		return 1
	}
	if other.Verse == OpenVerse {
		return -1
	}
	return compareInt(v.Verse, other.Verse)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// VerseRange is a contiguous span of verses within one book. A nil End
// means a single verse. VerseRange is a value type; copies never alias.
type VerseRange struct {
	Book  Book   `json:"book"`
	Start Verse  `json:"start"`
	End   *Verse `json:"end,omitempty"`
}

// NewVerseRange returns a validated range. Pass a nil end for a single verse.
func NewVerseRange(book Book, start Verse, end *Verse) (VerseRange, error) {
	r := VerseRange{Book: book, Start: start}
	if end != nil {
		e := *end
		r.End = &e
	}
	if err := r.Validate(); err != nil {
		return VerseRange{}, err
	}
	return r, nil
}

// ChapterRange returns the open range covering a whole chapter.
func ChapterRange(book Book, chapter int) VerseRange {
	return VerseRange{
		Book:  book,
		Start: Verse{Chapter: chapter, Verse: 1},
		End:   &Verse{Chapter: chapter, Verse: OpenVerse},
	}
}

// Validate returns an error if the range is not well formed.
func (r VerseRange) Validate() error {
	if !r.Book.Valid() {
		return Errorf(EBOOK, "I do not understand that book")
	}
	if r.Start.Chapter < 1 || r.Start.Verse < 1 {
		return Errorf(EINVALID, "Chapters and verses start at 1")
	}
	if r.End == nil {
		return nil
	}
	if r.End.Chapter < 1 || r.End.Verse < 0 {
		return Errorf(EINVALID, "Chapters and verses start at 1")
	}
	if r.End.Verse == OpenVerse && (r.End.Chapter != r.Start.Chapter || r.Start.Verse != 1) {
		return Errorf(EINVALID, "Open ranges must cover a whole chapter")
	}
	if r.End.Compare(r.Start) < 0 {
		return Errorf(EINVALID, "%s ends before it starts", r)
	}
	return nil
}

// IsOpen reports whether the range runs to the end of its chapter.
func (r VerseRange) IsOpen() bool {
	return r.End != nil && r.End.Verse == OpenVerse
}

// Last returns the final position of the range.
func (r VerseRange) Last() Verse {
	if r.End == nil {
		return r.Start
	}
	return *r.End
}

// Equal reports whether two ranges address the same verses the same way.
func (r VerseRange) Equal(other VerseRange) bool {
	if r.Book != other.Book || r.Start != other.Start {
		return false
	}
	if r.End == nil || other.End == nil {
		return r.End == nil && other.End == nil
	}
	return *r.End == *other.End
}

// String returns the canonical form, which parses back to an equal range.
func (r VerseRange) String() string {
	s := r.Book.String() + " " + strconv.Itoa(r.Start.Chapter)
	switch {
	case r.IsOpen():
		return s
	case r.End == nil:
		return fmt.Sprintf("%s:%d", s, r.Start.Verse)
	case r.End.Chapter == r.Start.Chapter:
		return fmt.Sprintf("%s:%d-%d", s, r.Start.Verse, r.End.Verse)
	default:
		return fmt.Sprintf("%s:%d-%d:%d", s, r.Start.Verse, r.End.Chapter, r.End.Verse)
	}
}

// ConfessionAddress locates a section of a confession. Chapter is zero for
// flat documents (questions, articles) where Number alone is the address.
type ConfessionAddress struct {
	Chapter int `json:"chapter,omitempty"`
	Number  int `json:"number"`
}

// IsFlat reports whether the address has no chapter component.
func (a ConfessionAddress) IsFlat() bool {
	return a.Chapter == 0
}

// String returns "chapter.paragraph" or the bare number.
func (a ConfessionAddress) String() string {
	if a.IsFlat() {
		return strconv.Itoa(a.Number)
	}
	return fmt.Sprintf("%d.%d", a.Chapter, a.Number)
}

// ReferenceMatch is a bracketed reference found in free text. Version is
// the optional version abbreviation written after the reference. Err is
// set when the bracket looked like a reference but did not parse.
type ReferenceMatch struct {
	Text    string
	Range   VerseRange
	Version string
	Err     error
}

// ReferenceParser turns user text into references.
type ReferenceParser interface {
	// ParseVerseRange parses a single reference such as "1 John 3:16-18".
	// Returns EBOOK for an unknown book, EMALFORMED for text that is not
	// a reference and EINVALID for a range that crosses books or runs
	// backwards.
	ParseVerseRange(s string) (VerseRange, error)

	// ParseConfessionAddress parses "42" or "1.2".
	// Returns EMALFORMED for anything else.
	ParseConfessionAddress(s string) (ConfessionAddress, error)

	// FindReferences returns every bracketed reference in text, in order.
	FindReferences(text string) []ReferenceMatch
}
