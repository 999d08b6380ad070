// Package postgres provides PostgreSQL-based storage implementations for
// lectio services. It mirrors the sqlite package for deployments that share
// one database between several bot processes.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/lectio"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DB represents a PostgreSQL connection pool.
type DB struct {
	db  *sqlx.DB
	uri string
}

// NewDB creates a new DB for the given connection URI.
func NewDB(uri string) *DB {
	return &DB{uri: uri}
}

// Open connects and creates the schema if needed.
func (db *DB) Open(ctx context.Context) error {
	if db.uri == "" {
		return lectio.Errorf(lectio.EINVALID, "postgres URI required")
	}

	conn, err := sqlx.ConnectContext(ctx, "postgres", db.uri)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(5 * time.Minute)
	conn.SetConnMaxIdleTime(1 * time.Minute)

	db.db = conn

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := db.db.ExecContext(ctx, query, args...)
	return err
}

// Case-insensitive commands are enforced with unique indexes on lower().
// Full-text search uses the english configuration; questions and articles
// carry GIN expression indexes, paragraphs are matched together with their
// joined chapter title.
const schema = `
	CREATE TABLE IF NOT EXISTS bible_versions (
		id BIGSERIAL PRIMARY KEY,
		command TEXT NOT NULL,
		name TEXT NOT NULL,
		abbreviation TEXT NOT NULL,
		backend_kind TEXT NOT NULL,
		backend_locator TEXT NOT NULL DEFAULT '',
		right_to_left BOOLEAN NOT NULL DEFAULT FALSE,
		book_set BIGINT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS bible_versions_command_idx ON bible_versions (lower(command));

	CREATE TABLE IF NOT EXISTS user_prefs (
		owner_id BIGINT PRIMARY KEY,
		version_id BIGINT REFERENCES bible_versions(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS guild_prefs (
		owner_id BIGINT PRIMARY KEY,
		version_id BIGINT REFERENCES bible_versions(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS confessions (
		id BIGSERIAL PRIMARY KEY,
		command TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('CHAPTERS', 'QA', 'ARTICLES')),
		numbering TEXT NOT NULL CHECK (numbering IN ('ARABIC', 'ROMAN'))
	);
	CREATE UNIQUE INDEX IF NOT EXISTS confessions_command_idx ON confessions (lower(command));

	CREATE TABLE IF NOT EXISTS confession_chapters (
		id BIGSERIAL PRIMARY KEY,
		confession_id BIGINT NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
		chapter_number INTEGER NOT NULL,
		title TEXT NOT NULL,
		UNIQUE (confession_id, chapter_number)
	);

	CREATE TABLE IF NOT EXISTS confession_paragraphs (
		id BIGSERIAL PRIMARY KEY,
		confession_id BIGINT NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
		chapter_number INTEGER NOT NULL,
		paragraph_number INTEGER NOT NULL,
		text TEXT NOT NULL,
		UNIQUE (confession_id, chapter_number, paragraph_number)
	);

	CREATE TABLE IF NOT EXISTS confession_questions (
		id BIGSERIAL PRIMARY KEY,
		confession_id BIGINT NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
		question_number INTEGER NOT NULL,
		question_text TEXT NOT NULL,
		answer_text TEXT NOT NULL,
		UNIQUE (confession_id, question_number)
	);
	CREATE INDEX IF NOT EXISTS confession_questions_search_idx ON confession_questions
		USING GIN (to_tsvector('english', question_text || ' ' || answer_text));

	CREATE TABLE IF NOT EXISTS confession_articles (
		id BIGSERIAL PRIMARY KEY,
		confession_id BIGINT NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
		article_number INTEGER NOT NULL,
		title TEXT NOT NULL,
		text TEXT NOT NULL,
		UNIQUE (confession_id, article_number)
	);
	CREATE INDEX IF NOT EXISTS confession_articles_search_idx ON confession_articles
		USING GIN (to_tsvector('english', title || ' ' || text));
`

// PostgreSQL error classes from appendix A of the manual.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// translate maps constraint violations to application errors. what names
// the entity for the message.
func translate(err error, what string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeUniqueViolation:
		return lectio.Errorf(lectio.ECONFLICT, "%s already exists", what)
	case codeForeignKeyViolation:
		return lectio.Errorf(lectio.ENOTFOUND, "%s refers to a missing row", what)
	case codeCheckViolation:
		return lectio.Errorf(lectio.EINVALID, "%s is invalid", what)
	}
	return err
}
