package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/lectio"
)

// Compile-time interface verification.
var _ lectio.ConfessionService = (*ConfessionService)(nil)

// ConfessionService implements lectio.ConfessionService using PostgreSQL.
// Searches use plainto_tsquery, which requires every term and stems them
// with the english dictionary.
type ConfessionService struct {
	db *DB
}

// NewConfessionService creates a new ConfessionService.
func NewConfessionService(db *DB) *ConfessionService {
	return &ConfessionService{db: db}
}

type confessionRow struct {
	ID        int64  `db:"id"`
	Command   string `db:"command"`
	Name      string `db:"name"`
	Type      string `db:"type"`
	Numbering string `db:"numbering"`
}

func (r *confessionRow) confession() *lectio.Confession {
	return &lectio.Confession{
		ID:        r.ID,
		Command:   r.Command,
		Name:      r.Name,
		Type:      lectio.ConfessionType(r.Type),
		Numbering: lectio.Numbering(r.Numbering),
	}
}

type chapterRow struct {
	ConfessionID int64  `db:"confession_id"`
	Number       int    `db:"chapter_number"`
	Title        string `db:"title"`
}

type paragraphRow struct {
	ConfessionID  int64          `db:"confession_id"`
	ChapterNumber int            `db:"chapter_number"`
	Number        int            `db:"paragraph_number"`
	Text          string         `db:"text"`
	ChapterTitle  sql.NullString `db:"chapter_title"`
}

func (r *paragraphRow) paragraph() *lectio.Paragraph {
	p := &lectio.Paragraph{
		ConfessionID:  r.ConfessionID,
		ChapterNumber: r.ChapterNumber,
		Number:        r.Number,
		Text:          r.Text,
	}
	if r.ChapterTitle.Valid {
		p.Chapter = &lectio.Chapter{
			ConfessionID: r.ConfessionID,
			Number:       r.ChapterNumber,
			Title:        r.ChapterTitle.String,
		}
	}
	return p
}

type questionRow struct {
	ConfessionID int64  `db:"confession_id"`
	Number       int    `db:"question_number"`
	Text         string `db:"question_text"`
	Answer       string `db:"answer_text"`
}

func (r *questionRow) question() *lectio.Question {
	return &lectio.Question{ConfessionID: r.ConfessionID, Number: r.Number, Text: r.Text, Answer: r.Answer}
}

type articleRow struct {
	ConfessionID int64  `db:"confession_id"`
	Number       int    `db:"article_number"`
	Title        string `db:"title"`
	Text         string `db:"text"`
}

func (r *articleRow) article() *lectio.Article {
	return &lectio.Article{ConfessionID: r.ConfessionID, Number: r.Number, Title: r.Title, Text: r.Text}
}

const confessionColumns = `id, command, name, type, numbering`

// FindConfessions lists all confessions ordered by command.
func (s *ConfessionService) FindConfessions(ctx context.Context) ([]*lectio.Confession, error) {
	var rows []confessionRow
	if err := s.db.db.SelectContext(ctx, &rows, `SELECT `+confessionColumns+` FROM confessions ORDER BY command`); err != nil {
		return nil, err
	}

	confessions := make([]*lectio.Confession, len(rows))
	for i := range rows {
		confessions[i] = rows[i].confession()
	}
	return confessions, nil
}

// FindConfessionByCommand retrieves a confession by its command.
func (s *ConfessionService) FindConfessionByCommand(ctx context.Context, command string) (*lectio.Confession, error) {
	var row confessionRow
	err := s.db.db.GetContext(ctx, &row, `SELECT `+confessionColumns+` FROM confessions WHERE lower(command) = lower($1)`, command)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s is not a known confession", command)
	}
	if err != nil {
		return nil, err
	}
	return row.confession(), nil
}

// FindChapters lists the chapters of c in ascending order.
func (s *ConfessionService) FindChapters(ctx context.Context, c *lectio.Confession) ([]*lectio.Chapter, error) {
	var rows []chapterRow
	if err := s.db.db.SelectContext(ctx, &rows, `
		SELECT confession_id, chapter_number, title
		FROM confession_chapters
		WHERE confession_id = $1
		ORDER BY chapter_number
	`, c.ID); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, lectio.Errorf(lectio.ENOSECTIONS, "%s has no chapters", c.Name)
	}

	chapters := make([]*lectio.Chapter, len(rows))
	for i, r := range rows {
		chapters[i] = &lectio.Chapter{ConfessionID: r.ConfessionID, Number: r.Number, Title: r.Title}
	}
	return chapters, nil
}

const paragraphQuery = `
	SELECT p.confession_id, p.chapter_number, p.paragraph_number, p.text, c.title AS chapter_title
	FROM confession_paragraphs p
	LEFT JOIN confession_chapters c
		ON c.confession_id = p.confession_id AND c.chapter_number = p.chapter_number
`

// FindParagraph retrieves one paragraph with its chapter.
func (s *ConfessionService) FindParagraph(ctx context.Context, c *lectio.Confession, chapter, paragraph int) (*lectio.Paragraph, error) {
	var row paragraphRow
	err := s.db.db.GetContext(ctx, &row, paragraphQuery+`
		WHERE p.confession_id = $1 AND p.chapter_number = $2 AND p.paragraph_number = $3
	`, c.ID, chapter, paragraph)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s has no paragraph %d.%d", c.Name, chapter, paragraph)
	}
	if err != nil {
		return nil, err
	}
	return row.paragraph(), nil
}

const questionQuery = `
	SELECT confession_id, question_number, question_text, answer_text
	FROM confession_questions
`

// FindQuestions lists the questions of c in ascending order.
func (s *ConfessionService) FindQuestions(ctx context.Context, c *lectio.Confession) ([]*lectio.Question, error) {
	var rows []questionRow
	if err := s.db.db.SelectContext(ctx, &rows, questionQuery+`WHERE confession_id = $1 ORDER BY question_number`, c.ID); err != nil {
		return nil, err
	}

	questions := make([]*lectio.Question, len(rows))
	for i := range rows {
		questions[i] = rows[i].question()
	}
	return questions, nil
}

// CountQuestions returns the number of questions in c.
func (s *ConfessionService) CountQuestions(ctx context.Context, c *lectio.Confession) (int, error) {
	var n int
	err := s.db.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM confession_questions WHERE confession_id = $1`, c.ID)
	return n, err
}

// FindQuestion retrieves one question.
func (s *ConfessionService) FindQuestion(ctx context.Context, c *lectio.Confession, number int) (*lectio.Question, error) {
	var row questionRow
	err := s.db.db.GetContext(ctx, &row, questionQuery+`WHERE confession_id = $1 AND question_number = $2`, c.ID, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s has no question %d", c.Name, number)
	}
	if err != nil {
		return nil, err
	}
	return row.question(), nil
}

const articleQuery = `
	SELECT confession_id, article_number, title, text
	FROM confession_articles
`

// FindArticles lists the articles of c in ascending order.
func (s *ConfessionService) FindArticles(ctx context.Context, c *lectio.Confession) ([]*lectio.Article, error) {
	var rows []articleRow
	if err := s.db.db.SelectContext(ctx, &rows, articleQuery+`WHERE confession_id = $1 ORDER BY article_number`, c.ID); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, lectio.Errorf(lectio.ENOSECTIONS, "%s has no articles", c.Name)
	}

	articles := make([]*lectio.Article, len(rows))
	for i := range rows {
		articles[i] = rows[i].article()
	}
	return articles, nil
}

// FindArticle retrieves one article.
func (s *ConfessionService) FindArticle(ctx context.Context, c *lectio.Confession, number int) (*lectio.Article, error) {
	var row articleRow
	err := s.db.db.GetContext(ctx, &row, articleQuery+`WHERE confession_id = $1 AND article_number = $2`, c.ID, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s has no article %d", c.Name, number)
	}
	if err != nil {
		return nil, err
	}
	return row.article(), nil
}

// SearchParagraphs streams paragraphs whose chapter title and text contain
// every term.
func (s *ConfessionService) SearchParagraphs(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Paragraph], error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.db.QueryxContext(ctx, paragraphQuery+`
		WHERE p.confession_id = $1
			AND to_tsvector('english', coalesce(c.title, '') || ' ' || p.text) @@ plainto_tsquery('english', $2)
		ORDER BY p.chapter_number, p.paragraph_number
	`, c.ID, strings.Join(terms, " "))
	if err != nil {
		return nil, err
	}

	return newRowsCursor(rows, (*paragraphRow).paragraph), nil
}

// SearchQuestions streams questions whose question and answer contain
// every term.
func (s *ConfessionService) SearchQuestions(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Question], error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.db.QueryxContext(ctx, questionQuery+`
		WHERE confession_id = $1
			AND to_tsvector('english', question_text || ' ' || answer_text) @@ plainto_tsquery('english', $2)
		ORDER BY question_number
	`, c.ID, strings.Join(terms, " "))
	if err != nil {
		return nil, err
	}

	return newRowsCursor(rows, (*questionRow).question), nil
}

// SearchArticles streams articles whose title and text contain every term.
func (s *ConfessionService) SearchArticles(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Article], error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.db.QueryxContext(ctx, articleQuery+`
		WHERE confession_id = $1
			AND to_tsvector('english', title || ' ' || text) @@ plainto_tsquery('english', $2)
		ORDER BY article_number
	`, c.ID, strings.Join(terms, " "))
	if err != nil {
		return nil, err
	}

	return newRowsCursor(rows, (*articleRow).article), nil
}

// CreateConfession stores a confession and sets its ID.
func (s *ConfessionService) CreateConfession(ctx context.Context, c *lectio.Confession) error {
	if err := c.Validate(); err != nil {
		return err
	}

	err := s.db.db.QueryRowxContext(ctx, `
		INSERT INTO confessions (command, name, type, numbering) VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.Command, c.Name, string(c.Type), string(c.Numbering)).Scan(&c.ID)
	return translate(err, "confession "+c.Command)
}

// CreateChapter stores a chapter.
func (s *ConfessionService) CreateChapter(ctx context.Context, ch *lectio.Chapter) error {
	err := s.db.ExecContext(ctx, `
		INSERT INTO confession_chapters (confession_id, chapter_number, title) VALUES ($1, $2, $3)
	`, ch.ConfessionID, ch.Number, ch.Title)
	return translate(err, "chapter")
}

// CreateParagraph stores a paragraph.
func (s *ConfessionService) CreateParagraph(ctx context.Context, p *lectio.Paragraph) error {
	err := s.db.ExecContext(ctx, `
		INSERT INTO confession_paragraphs (confession_id, chapter_number, paragraph_number, text) VALUES ($1, $2, $3, $4)
	`, p.ConfessionID, p.ChapterNumber, p.Number, p.Text)
	return translate(err, "paragraph")
}

// CreateQuestion stores a question.
func (s *ConfessionService) CreateQuestion(ctx context.Context, q *lectio.Question) error {
	err := s.db.ExecContext(ctx, `
		INSERT INTO confession_questions (confession_id, question_number, question_text, answer_text) VALUES ($1, $2, $3, $4)
	`, q.ConfessionID, q.Number, q.Text, q.Answer)
	return translate(err, "question")
}

// CreateArticle stores an article.
func (s *ConfessionService) CreateArticle(ctx context.Context, a *lectio.Article) error {
	err := s.db.ExecContext(ctx, `
		INSERT INTO confession_articles (confession_id, article_number, title, text) VALUES ($1, $2, $3, $4)
	`, a.ConfessionID, a.Number, a.Title, a.Text)
	return translate(err, "article")
}
