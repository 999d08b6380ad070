package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lectio"
)

// Ensure LoggingConfessionService implements lectio.ConfessionService.
var _ lectio.ConfessionService = (*LoggingConfessionService)(nil)

// LoggingConfessionService logs section lookups and searches. Listing and
// create methods pass straight through to the embedded service.
type LoggingConfessionService struct {
	lectio.ConfessionService
	logger *slog.Logger
}

// NewLoggingConfessionService creates a new LoggingConfessionService.
func NewLoggingConfessionService(next lectio.ConfessionService, logger *slog.Logger) *LoggingConfessionService {
	return &LoggingConfessionService{ConfessionService: next, logger: logger}
}

func (s *LoggingConfessionService) logSection(c *lectio.Confession, section string, begin time.Time, err error) {
	s.logger.Info("confession section",
		"confession", c.Command,
		"section", section,
		"duration", time.Since(begin),
		"err", err,
	)
}

func (s *LoggingConfessionService) logSearch(c *lectio.Confession, terms []string, begin time.Time, err error) {
	s.logger.Info("confession search",
		"confession", c.Command,
		"terms", terms,
		"duration", time.Since(begin),
		"err", err,
	)
}

// FindParagraph delegates and logs the address.
func (s *LoggingConfessionService) FindParagraph(ctx context.Context, c *lectio.Confession, chapter, paragraph int) (p *lectio.Paragraph, err error) {
	defer func(begin time.Time) {
		s.logSection(c, lectio.ConfessionAddress{Chapter: chapter, Number: paragraph}.String(), begin, err)
	}(time.Now())
	return s.ConfessionService.FindParagraph(ctx, c, chapter, paragraph)
}

// FindQuestion delegates and logs the number.
func (s *LoggingConfessionService) FindQuestion(ctx context.Context, c *lectio.Confession, number int) (q *lectio.Question, err error) {
	defer func(begin time.Time) {
		s.logSection(c, lectio.ConfessionAddress{Number: number}.String(), begin, err)
	}(time.Now())
	return s.ConfessionService.FindQuestion(ctx, c, number)
}

// FindArticle delegates and logs the number.
func (s *LoggingConfessionService) FindArticle(ctx context.Context, c *lectio.Confession, number int) (a *lectio.Article, err error) {
	defer func(begin time.Time) {
		s.logSection(c, lectio.ConfessionAddress{Number: number}.String(), begin, err)
	}(time.Now())
	return s.ConfessionService.FindArticle(ctx, c, number)
}

// SearchParagraphs delegates and logs the terms.
func (s *LoggingConfessionService) SearchParagraphs(ctx context.Context, c *lectio.Confession, terms []string) (cur lectio.Cursor[*lectio.Paragraph], err error) {
	defer func(begin time.Time) { s.logSearch(c, terms, begin, err) }(time.Now())
	return s.ConfessionService.SearchParagraphs(ctx, c, terms)
}

// SearchQuestions delegates and logs the terms.
func (s *LoggingConfessionService) SearchQuestions(ctx context.Context, c *lectio.Confession, terms []string) (cur lectio.Cursor[*lectio.Question], err error) {
	defer func(begin time.Time) { s.logSearch(c, terms, begin, err) }(time.Now())
	return s.ConfessionService.SearchQuestions(ctx, c, terms)
}

// SearchArticles delegates and logs the terms.
func (s *LoggingConfessionService) SearchArticles(ctx context.Context, c *lectio.Confession, terms []string) (cur lectio.Cursor[*lectio.Article], err error) {
	defer func(begin time.Time) { s.logSearch(c, terms, begin, err) }(time.Now())
	return s.ConfessionService.SearchArticles(ctx, c, terms)
}
