package lectio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// FormatPassage renders a passage for a chat message: the text with bold
// sentinels turned into Markdown, followed by the reference and version.
// The text is truncated so the whole message fits in limit runes; a limit <= 0
// disables truncation.
func FormatPassage(p *Passage, limit int) string {
	footer := "\n\n" + p.Range.String()
	if p.Version != nil {
		footer += " (" + p.Version.Abbreviation + ")"
	}
	text := strings.ReplaceAll(p.Text, BoldSentinel, "**")
	if limit > 0 {
		text = Truncate(text, limit-utf8.RuneCountInString(footer))
	}
	return text + footer
}

// FormatSearchResults renders one line per passage under a summary line.
func FormatSearchResults(results *SearchResults, offset int) string {
	if results == nil || len(results.Passages) == 0 {
		return "I have found 0 matches"
	}
	var b strings.Builder
	noun := "matches"
	if results.Total == 1 {
		noun = "match"
	}
	fmt.Fprintf(&b, "I have found %d %s", results.Total, noun)
	for i, p := range results.Passages {
		fmt.Fprintf(&b, "\n%d. **%s** %s", offset+i+1, p.Range, StripBold(p.Text))
	}
	return b.String()
}

// StripBold removes bold sentinels from text.
func StripBold(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, BoldSentinel, "")), " ")
}

// Truncate shortens s to at most limit runes, ending in Ellipsis when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := strings.TrimRight(string(runes[:limit-1]), " ")
	return cut + Ellipsis
}
