package mock

import (
	"context"

	"github.com/fwojciec/lectio"
)

var _ lectio.ConfessionService = (*ConfessionService)(nil)

// ConfessionService is a mock implementation of lectio.ConfessionService.
type ConfessionService struct {
	FindConfessionsFn         func(ctx context.Context) ([]*lectio.Confession, error)
	FindConfessionByCommandFn func(ctx context.Context, command string) (*lectio.Confession, error)
	FindChaptersFn            func(ctx context.Context, c *lectio.Confession) ([]*lectio.Chapter, error)
	FindParagraphFn           func(ctx context.Context, c *lectio.Confession, chapter, paragraph int) (*lectio.Paragraph, error)
	FindQuestionsFn           func(ctx context.Context, c *lectio.Confession) ([]*lectio.Question, error)
	CountQuestionsFn          func(ctx context.Context, c *lectio.Confession) (int, error)
	FindQuestionFn            func(ctx context.Context, c *lectio.Confession, number int) (*lectio.Question, error)
	FindArticlesFn            func(ctx context.Context, c *lectio.Confession) ([]*lectio.Article, error)
	FindArticleFn             func(ctx context.Context, c *lectio.Confession, number int) (*lectio.Article, error)
	SearchParagraphsFn        func(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Paragraph], error)
	SearchQuestionsFn         func(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Question], error)
	SearchArticlesFn          func(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Article], error)
	CreateConfessionFn        func(ctx context.Context, c *lectio.Confession) error
	CreateChapterFn           func(ctx context.Context, ch *lectio.Chapter) error
	CreateParagraphFn         func(ctx context.Context, p *lectio.Paragraph) error
	CreateQuestionFn          func(ctx context.Context, q *lectio.Question) error
	CreateArticleFn           func(ctx context.Context, a *lectio.Article) error
}

func (s *ConfessionService) FindConfessions(ctx context.Context) ([]*lectio.Confession, error) {
	return s.FindConfessionsFn(ctx)
}

func (s *ConfessionService) FindConfessionByCommand(ctx context.Context, command string) (*lectio.Confession, error) {
	return s.FindConfessionByCommandFn(ctx, command)
}

func (s *ConfessionService) FindChapters(ctx context.Context, c *lectio.Confession) ([]*lectio.Chapter, error) {
	return s.FindChaptersFn(ctx, c)
}

func (s *ConfessionService) FindParagraph(ctx context.Context, c *lectio.Confession, chapter, paragraph int) (*lectio.Paragraph, error) {
	return s.FindParagraphFn(ctx, c, chapter, paragraph)
}

func (s *ConfessionService) FindQuestions(ctx context.Context, c *lectio.Confession) ([]*lectio.Question, error) {
	return s.FindQuestionsFn(ctx, c)
}

func (s *ConfessionService) CountQuestions(ctx context.Context, c *lectio.Confession) (int, error) {
	return s.CountQuestionsFn(ctx, c)
}

func (s *ConfessionService) FindQuestion(ctx context.Context, c *lectio.Confession, number int) (*lectio.Question, error) {
	return s.FindQuestionFn(ctx, c, number)
}

func (s *ConfessionService) FindArticles(ctx context.Context, c *lectio.Confession) ([]*lectio.Article, error) {
	return s.FindArticlesFn(ctx, c)
}

func (s *ConfessionService) FindArticle(ctx context.Context, c *lectio.Confession, number int) (*lectio.Article, error) {
	return s.FindArticleFn(ctx, c, number)
}

func (s *ConfessionService) SearchParagraphs(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Paragraph], error) {
	return s.SearchParagraphsFn(ctx, c, terms)
}

func (s *ConfessionService) SearchQuestions(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Question], error) {
	return s.SearchQuestionsFn(ctx, c, terms)
}

func (s *ConfessionService) SearchArticles(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Article], error) {
	return s.SearchArticlesFn(ctx, c, terms)
}

func (s *ConfessionService) CreateConfession(ctx context.Context, c *lectio.Confession) error {
	return s.CreateConfessionFn(ctx, c)
}

func (s *ConfessionService) CreateChapter(ctx context.Context, ch *lectio.Chapter) error {
	return s.CreateChapterFn(ctx, ch)
}

func (s *ConfessionService) CreateParagraph(ctx context.Context, p *lectio.Paragraph) error {
	return s.CreateParagraphFn(ctx, p)
}

func (s *ConfessionService) CreateQuestion(ctx context.Context, q *lectio.Question) error {
	return s.CreateQuestionFn(ctx, q)
}

func (s *ConfessionService) CreateArticle(ctx context.Context, a *lectio.Article) error {
	return s.CreateArticleFn(ctx, a)
}
