package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/lectio"
)

// Compile-time interface verification.
var _ lectio.ConfessionService = (*ConfessionService)(nil)

// ConfessionService implements lectio.ConfessionService using SQLite.
// Searches use FTS5 with the porter stemmer, so "creations" matches
// "creation".
type ConfessionService struct {
	db *DB
}

// NewConfessionService creates a new ConfessionService.
func NewConfessionService(db *DB) *ConfessionService {
	return &ConfessionService{db: db}
}

func scanConfession(row scanner) (*lectio.Confession, error) {
	var c lectio.Confession
	if err := row.Scan(&c.ID, &c.Command, &c.Name, &c.Type, &c.Numbering); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindConfessions lists all confessions ordered by command.
func (s *ConfessionService) FindConfessions(ctx context.Context) ([]*lectio.Confession, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, command, name, type, numbering FROM confessions ORDER BY command`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var confessions []*lectio.Confession
	for rows.Next() {
		c, err := scanConfession(rows)
		if err != nil {
			return nil, err
		}
		confessions = append(confessions, c)
	}

	return confessions, rows.Err()
}

// FindConfessionByCommand retrieves a confession by its command.
func (s *ConfessionService) FindConfessionByCommand(ctx context.Context, command string) (*lectio.Confession, error) {
	c, err := scanConfession(s.db.QueryRowContext(ctx, `
		SELECT id, command, name, type, numbering FROM confessions WHERE command = ?
	`, command))
	if err == sql.ErrNoRows {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s is not a known confession", command)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindChapters lists the chapters of c in ascending order.
func (s *ConfessionService) FindChapters(ctx context.Context, c *lectio.Confession) ([]*lectio.Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT confession_id, chapter_number, title
		FROM confession_chapters
		WHERE confession_id = ?
		ORDER BY chapter_number
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*lectio.Chapter
	for rows.Next() {
		var ch lectio.Chapter
		if err := rows.Scan(&ch.ConfessionID, &ch.Number, &ch.Title); err != nil {
			return nil, err
		}
		chapters = append(chapters, &ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(chapters) == 0 {
		return nil, lectio.Errorf(lectio.ENOSECTIONS, "%s has no chapters", c.Name)
	}
	return chapters, nil
}

// paragraphQuery selects paragraphs with their chapter joined on the
// composite key. The chapter columns are NULL when no chapter row exists.
const paragraphQuery = `
	SELECT p.confession_id, p.chapter_number, p.paragraph_number, p.text, c.chapter_number, c.title
	FROM confession_paragraphs p
	LEFT JOIN confession_chapters c
		ON c.confession_id = p.confession_id AND c.chapter_number = p.chapter_number
`

func scanParagraph(row scanner) (*lectio.Paragraph, error) {
	var p lectio.Paragraph
	var chapterNumber sql.NullInt64
	var chapterTitle sql.NullString
	if err := row.Scan(&p.ConfessionID, &p.ChapterNumber, &p.Number, &p.Text, &chapterNumber, &chapterTitle); err != nil {
		return nil, err
	}
	if chapterNumber.Valid {
		p.Chapter = &lectio.Chapter{
			ConfessionID: p.ConfessionID,
			Number:       int(chapterNumber.Int64),
			Title:        chapterTitle.String,
		}
	}
	return &p, nil
}

// FindParagraph retrieves one paragraph with its chapter.
func (s *ConfessionService) FindParagraph(ctx context.Context, c *lectio.Confession, chapter, paragraph int) (*lectio.Paragraph, error) {
	p, err := scanParagraph(s.db.QueryRowContext(ctx, paragraphQuery+`
		WHERE p.confession_id = ? AND p.chapter_number = ? AND p.paragraph_number = ?
	`, c.ID, chapter, paragraph))
	if err == sql.ErrNoRows {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s has no paragraph %d.%d", c.Name, chapter, paragraph)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanQuestion(row scanner) (*lectio.Question, error) {
	var q lectio.Question
	if err := row.Scan(&q.ConfessionID, &q.Number, &q.Text, &q.Answer); err != nil {
		return nil, err
	}
	return &q, nil
}

// FindQuestions lists the questions of c in ascending order.
func (s *ConfessionService) FindQuestions(ctx context.Context, c *lectio.Confession) ([]*lectio.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT confession_id, question_number, question_text, answer_text
		FROM confession_questions
		WHERE confession_id = ?
		ORDER BY question_number
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*lectio.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// CountQuestions returns the number of questions in c.
func (s *ConfessionService) CountQuestions(ctx context.Context, c *lectio.Confession) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM confession_questions WHERE confession_id = ?`, c.ID).Scan(&n)
	return n, err
}

// FindQuestion retrieves one question.
func (s *ConfessionService) FindQuestion(ctx context.Context, c *lectio.Confession, number int) (*lectio.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, `
		SELECT confession_id, question_number, question_text, answer_text
		FROM confession_questions
		WHERE confession_id = ? AND question_number = ?
	`, c.ID, number))
	if err == sql.ErrNoRows {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s has no question %d", c.Name, number)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func scanArticle(row scanner) (*lectio.Article, error) {
	var a lectio.Article
	if err := row.Scan(&a.ConfessionID, &a.Number, &a.Title, &a.Text); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindArticles lists the articles of c in ascending order.
func (s *ConfessionService) FindArticles(ctx context.Context, c *lectio.Confession) ([]*lectio.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT confession_id, article_number, title, text
		FROM confession_articles
		WHERE confession_id = ?
		ORDER BY article_number
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*lectio.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		return nil, lectio.Errorf(lectio.ENOSECTIONS, "%s has no articles", c.Name)
	}
	return articles, nil
}

// FindArticle retrieves one article.
func (s *ConfessionService) FindArticle(ctx context.Context, c *lectio.Confession, number int) (*lectio.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx, `
		SELECT confession_id, article_number, title, text
		FROM confession_articles
		WHERE confession_id = ? AND article_number = ?
	`, c.ID, number))
	if err == sql.ErrNoRows {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "%s has no article %d", c.Name, number)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SearchParagraphs streams paragraphs whose chapter title and text contain
// every term.
func (s *ConfessionService) SearchParagraphs(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Paragraph], error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, paragraphQuery+`
		JOIN confession_paragraphs_fts ON confession_paragraphs_fts.rowid = p.id
		WHERE confession_paragraphs_fts MATCH ? AND p.confession_id = ?
		ORDER BY p.chapter_number, p.paragraph_number
	`, matchQuery(terms), c.ID)
	if err != nil {
		return nil, err
	}

	return newRowsCursor(rows, func(rows *sql.Rows) (*lectio.Paragraph, error) {
		return scanParagraph(rows)
	}), nil
}

// SearchQuestions streams questions whose question and answer contain
// every term.
func (s *ConfessionService) SearchQuestions(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Question], error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT q.confession_id, q.question_number, q.question_text, q.answer_text
		FROM confession_questions q
		JOIN confession_questions_fts ON confession_questions_fts.rowid = q.id
		WHERE confession_questions_fts MATCH ? AND q.confession_id = ?
		ORDER BY q.question_number
	`, matchQuery(terms), c.ID)
	if err != nil {
		return nil, err
	}

	return newRowsCursor(rows, func(rows *sql.Rows) (*lectio.Question, error) {
		return scanQuestion(rows)
	}), nil
}

// SearchArticles streams articles whose title and text contain every term.
func (s *ConfessionService) SearchArticles(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Article], error) {
	terms, err := lectio.CleanTerms(terms)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.confession_id, a.article_number, a.title, a.text
		FROM confession_articles a
		JOIN confession_articles_fts ON confession_articles_fts.rowid = a.id
		WHERE confession_articles_fts MATCH ? AND a.confession_id = ?
		ORDER BY a.article_number
	`, matchQuery(terms), c.ID)
	if err != nil {
		return nil, err
	}

	return newRowsCursor(rows, func(rows *sql.Rows) (*lectio.Article, error) {
		return scanArticle(rows)
	}), nil
}

// CreateConfession stores a confession and sets its ID.
func (s *ConfessionService) CreateConfession(ctx context.Context, c *lectio.Confession) error {
	if err := c.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO confessions (command, name, type, numbering) VALUES (?, ?, ?, ?)
	`, c.Command, c.Name, string(c.Type), string(c.Numbering))
	if err != nil {
		return translate(err, "confession "+c.Command)
	}

	c.ID, err = result.LastInsertId()
	return err
}

// CreateChapter stores a chapter.
func (s *ConfessionService) CreateChapter(ctx context.Context, ch *lectio.Chapter) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confession_chapters (confession_id, chapter_number, title) VALUES (?, ?, ?)
	`, ch.ConfessionID, ch.Number, ch.Title)
	return translate(err, "chapter")
}

// CreateParagraph stores a paragraph. Its chapter row may be created
// before or after it.
func (s *ConfessionService) CreateParagraph(ctx context.Context, p *lectio.Paragraph) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confession_paragraphs (confession_id, chapter_number, paragraph_number, text) VALUES (?, ?, ?, ?)
	`, p.ConfessionID, p.ChapterNumber, p.Number, p.Text)
	return translate(err, "paragraph")
}

// CreateQuestion stores a question.
func (s *ConfessionService) CreateQuestion(ctx context.Context, q *lectio.Question) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confession_questions (confession_id, question_number, question_text, answer_text) VALUES (?, ?, ?, ?)
	`, q.ConfessionID, q.Number, q.Text, q.Answer)
	return translate(err, "question")
}

// CreateArticle stores an article.
func (s *ConfessionService) CreateArticle(ctx context.Context, a *lectio.Article) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confession_articles (confession_id, article_number, title, text) VALUES (?, ?, ?, ?)
	`, a.ConfessionID, a.Number, a.Title, a.Text)
	return translate(err, "article")
}
