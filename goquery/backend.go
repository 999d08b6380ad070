// Package goquery implements a scraping lectio.Backend for the Watchtower
// Online Library using goquery.
package goquery

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lectio"
	"golang.org/x/time/rate"
)

// Kind is the backend kind stored on versions served by Backend.
const Kind = "JWOrg"

// DefaultBaseURL is the root of the online library.
const DefaultBaseURL = "https://wol.jw.org"

// Ensure Backend implements lectio.Backend at compile time.
var _ lectio.Backend = (*Backend)(nil)

// Backend scrapes chapter pages and extracts verse spans. One chapter page
// is fetched per lookup. The version's Locator is the path of the edition,
// such as "en/wol/b/r1/lp-e/nwt".
//
// Chapter pages are requested no faster than the backend's page rate, shared
// by every version it serves. Concurrent lookups queue for their turn.
type Backend struct {
	fetcher lectio.Fetcher
	baseURL string
	pages   *rate.Limiter
}

// Option configures a Backend.
type Option func(*Backend)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(b *Backend) {
		b.baseURL = strings.TrimRight(u, "/")
	}
}

// WithPageRate allows at most rps chapter page requests per second. A
// non-positive rps removes the limit.
func WithPageRate(rps float64) Option {
	return func(b *Backend) {
		if rps <= 0 {
			b.pages = nil
			return
		}
		b.pages = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewBackend creates a Backend fetching pages through fetcher. The fetcher
// should send an empty User-Agent; the site stalls requests it recognizes
// as programmatic.
func NewBackend(fetcher lectio.Fetcher, opts ...Option) *Backend {
	b := &Backend{
		fetcher: fetcher,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ChapterURL returns the page holding a chapter of book in v.
func (b *Backend) ChapterURL(v *lectio.Version, book lectio.Book, chapter int) string {
	return fmt.Sprintf("%s/%s/%d/%d", b.baseURL, strings.Trim(v.Locator, "/"), int(book), chapter)
}

// Lookup fetches the starting chapter of r and returns the text of the
// requested verses. Ranges running past the starting chapter return the
// rest of that chapter. The passage carries r exactly as requested.
func (b *Backend) Lookup(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error) {
	if r.Book < lectio.Genesis || r.Book > lectio.Revelation {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s is not available in the %s", r.Book, v.Name)
	}

	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	html, err := b.fetcher.Fetch(ctx, b.ChapterURL(v, r.Book, r.Start.Chapter))
	if err != nil {
		return nil, err
	}

	text, err := ExtractVerses(html, r)
	if err != nil {
		return nil, err
	}

	return &lectio.Passage{
		Text:    text,
		Range:   r,
		Version: v,
	}, nil
}

// wait blocks until the page rate allows another request. A wait that
// cannot finish before ctx's deadline fails without waiting.
func (b *Backend) wait(ctx context.Context) error {
	if b.pages == nil {
		return nil
	}
	if err := b.pages.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return lectio.Errorf(lectio.EUNAVAILABLE, "The online library is busy, try again shortly")
	}
	return nil
}

// Search is not offered by the online library. It fails for any input.
func (b *Backend) Search(ctx context.Context, v *lectio.Version, terms []string, opts lectio.SearchOptions) (*lectio.SearchResults, error) {
	if v == nil {
		return nil, lectio.Errorf(lectio.ENOTSUPPORTED, "The online library cannot be searched")
	}
	return nil, lectio.Errorf(lectio.ENOTSUPPORTED, "The %s cannot be searched", v.Name)
}

// verseID matches span ids of the form v{book}-{chapter}-{verse}-{sequence}.
var verseID = regexp.MustCompile(`^v(\d+)-(\d+)-(\d+)-\d+$`)

// glyphs are footnote and cross-reference markers.
var glyphs = strings.NewReplacer("*", "", "+", "")

// ExtractVerses returns the cleaned text of the spans in html covering r
// within its starting chapter. Verse numbers are wrapped in
// lectio.BoldSentinel. Returns ENOTFOUND if no span matches.
func ExtractVerses(html string, r lectio.VerseRange) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", lectio.Errorf(lectio.EUNAVAILABLE, "failed to parse HTML: %v", err)
	}

	first, last := verseBounds(r)

	var texts []string
	doc.Find("span[id]").Each(func(_ int, span *goquery.Selection) {
		id, _ := span.Attr("id")
		if !matchesVerse(id, int(r.Book), r.Start.Chapter, first, last) {
			return
		}
		if strong := span.Find("strong").First(); strong.Length() > 0 {
			embolden(strong, "")
		} else if a := span.Find("a").First(); a.Length() > 0 {
			embolden(a, " ")
		}
		texts = append(texts, span.Text())
	})

	if len(texts) == 0 {
		return "", lectio.Errorf(lectio.ENOTFOUND, "No text found for %s", r)
	}

	return strings.Join(strings.Fields(glyphs.Replace(strings.Join(texts, " "))), " "), nil
}

// verseBounds returns the inclusive verse numbers to take from the
// starting chapter. last is zero when the chapter runs to its end.
func verseBounds(r lectio.VerseRange) (first, last int) {
	first = r.Start.Verse
	switch {
	case r.End == nil:
		return first, first
	case r.End.Chapter != r.Start.Chapter || r.End.Verse == lectio.OpenVerse:
		return first, 0
	default:
		return first, r.End.Verse
	}
}

func matchesVerse(id string, book, chapter, first, last int) bool {
	m := verseID.FindStringSubmatch(id)
	if m == nil {
		return false
	}
	if atoi(m[1]) != book || atoi(m[2]) != chapter {
		return false
	}
	v := atoi(m[3])
	return v >= first && (last == 0 || v <= last)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// embolden trims the number element and brackets it with bold sentinels.
func embolden(sel *goquery.Selection, trailing string) {
	sel.SetText(strings.TrimSpace(sel.Text()))
	sel.BeforeHtml(lectio.BoldSentinel)
	sel.AfterHtml("." + lectio.BoldSentinel + trailing)
}
