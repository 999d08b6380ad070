package mock

import (
	"github.com/fwojciec/lectio"
)

var _ lectio.ReferenceParser = (*ReferenceParser)(nil)

// ReferenceParser is a mock implementation of lectio.ReferenceParser.
type ReferenceParser struct {
	ParseVerseRangeFn        func(s string) (lectio.VerseRange, error)
	ParseConfessionAddressFn func(s string) (lectio.ConfessionAddress, error)
	FindReferencesFn         func(text string) []lectio.ReferenceMatch
}

func (p *ReferenceParser) ParseVerseRange(s string) (lectio.VerseRange, error) {
	return p.ParseVerseRangeFn(s)
}

func (p *ReferenceParser) ParseConfessionAddress(s string) (lectio.ConfessionAddress, error) {
	return p.ParseConfessionAddressFn(s)
}

func (p *ReferenceParser) FindReferences(text string) []lectio.ReferenceMatch {
	return p.FindReferencesFn(text)
}
