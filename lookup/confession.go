package lookup

import (
	"context"

	"github.com/fwojciec/lectio"
)

// DefaultSectionLimit is how many search hits SearchSections returns when
// no limit is given.
const DefaultSectionLimit = 20

// Section is one addressed part of a confession. Exactly one of
// Paragraph, Question and Article is set, matching the confession type.
type Section struct {
	Confession *lectio.Confession `json:"confession"`
	Paragraph  *lectio.Paragraph  `json:"paragraph,omitempty"`
	Question   *lectio.Question   `json:"question,omitempty"`
	Article    *lectio.Article    `json:"article,omitempty"`
}

// Address returns the section's address within its confession.
func (s *Section) Address() lectio.ConfessionAddress {
	switch {
	case s.Paragraph != nil:
		return s.Paragraph.Address()
	case s.Question != nil:
		return lectio.ConfessionAddress{Number: s.Question.Number}
	case s.Article != nil:
		return lectio.ConfessionAddress{Number: s.Article.Number}
	}
	return lectio.ConfessionAddress{}
}

// Contents lists what a confession holds. Chapters and Articles are set
// for their types; QuestionCount for catechisms.
type Contents struct {
	Confession    *lectio.Confession `json:"confession"`
	Chapters      []*lectio.Chapter  `json:"chapters,omitempty"`
	Articles      []*lectio.Article  `json:"articles,omitempty"`
	QuestionCount int                `json:"questionCount,omitempty"`
}

// SectionResults holds the first hits of a section search. Total counts
// every hit.
type SectionResults struct {
	Confession *lectio.Confession `json:"confession"`
	Sections   []*Section         `json:"sections"`
	Total      int                `json:"total"`
}

// Contents returns the table of contents of the confession with command.
func (s *Service) Contents(ctx context.Context, command string) (*Contents, error) {
	c, err := s.Confessions.FindConfessionByCommand(ctx, command)
	if err != nil {
		return nil, err
	}

	out := &Contents{Confession: c}
	switch c.Type {
	case lectio.ConfessionChapters:
		out.Chapters, err = s.Confessions.FindChapters(ctx, c)
	case lectio.ConfessionQA:
		out.QuestionCount, err = s.Confessions.CountQuestions(ctx, c)
	case lectio.ConfessionArticles:
		out.Articles, err = s.Confessions.FindArticles(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LookupSection returns the section at address. Chaptered confessions
// take "chapter.paragraph"; catechisms and articles take a bare number.
func (s *Service) LookupSection(ctx context.Context, command, address string) (*Section, error) {
	c, err := s.Confessions.FindConfessionByCommand(ctx, command)
	if err != nil {
		return nil, err
	}
	addr, err := s.Parser.ParseConfessionAddress(address)
	if err != nil {
		return nil, err
	}

	section := &Section{Confession: c}
	switch c.Type {
	case lectio.ConfessionChapters:
		if addr.IsFlat() {
			return nil, lectio.Errorf(lectio.EMALFORMED, "%s sections are addressed as chapter.paragraph", c.Name)
		}
		section.Paragraph, err = s.Confessions.FindParagraph(ctx, c, addr.Chapter, addr.Number)
	case lectio.ConfessionQA:
		if !addr.IsFlat() {
			return nil, lectio.Errorf(lectio.EMALFORMED, "%s questions are addressed by number", c.Name)
		}
		section.Question, err = s.Confessions.FindQuestion(ctx, c, addr.Number)
	case lectio.ConfessionArticles:
		if !addr.IsFlat() {
			return nil, lectio.Errorf(lectio.EMALFORMED, "%s articles are addressed by number", c.Name)
		}
		section.Article, err = s.Confessions.FindArticle(ctx, c, addr.Number)
	default:
		return nil, lectio.Errorf(lectio.EINTERNAL, "unknown confession type %q", c.Type)
	}
	if err != nil {
		return nil, err
	}
	return section, nil
}

// SearchSections returns the first limit sections containing every term
// and the total number of hits. A limit <= 0 means DefaultSectionLimit.
func (s *Service) SearchSections(ctx context.Context, command string, terms []string, limit int) (*SectionResults, error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSectionLimit
	}

	c, err := s.Confessions.FindConfessionByCommand(ctx, command)
	if err != nil {
		return nil, err
	}

	res := &SectionResults{Confession: c, Sections: []*Section{}}
	add := func(sec *Section) {
		res.Total++
		if len(res.Sections) < limit {
			res.Sections = append(res.Sections, sec)
		}
	}

	switch c.Type {
	case lectio.ConfessionChapters:
		err = drain(ctx, c, terms, s.Confessions.SearchParagraphs, func(p *lectio.Paragraph) {
			add(&Section{Confession: c, Paragraph: p})
		})
	case lectio.ConfessionQA:
		err = drain(ctx, c, terms, s.Confessions.SearchQuestions, func(q *lectio.Question) {
			add(&Section{Confession: c, Question: q})
		})
	case lectio.ConfessionArticles:
		err = drain(ctx, c, terms, s.Confessions.SearchArticles, func(a *lectio.Article) {
			add(&Section{Confession: c, Article: a})
		})
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// drain runs a search and hands every hit to fn. The cursor is always
// closed before drain returns.
func drain[T any](
	ctx context.Context,
	c *lectio.Confession,
	terms []string,
	search func(context.Context, *lectio.Confession, []string) (lectio.Cursor[T], error),
	fn func(T),
) error {
	cur, err := search(ctx, c, terms)
	if err != nil {
		return err
	}
	for v, err := range lectio.All(cur) {
		if err != nil {
			return err
		}
		fn(v)
	}
	return nil
}
