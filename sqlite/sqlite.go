// Package sqlite provides SQLite-based storage implementations for lectio services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	// Cursors hold this connection until closed.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// dsn returns the connection string for the database. Pragmas in the DSN
// run on every new connection, so a replaced pool connection still waits
// 5 seconds on lock contention and enforces the ON DELETE SET NULL that
// preferences rely on.
func (db *DB) dsn() string {
	return "file:" + db.path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist. Each
// searchable table has an FTS5 shadow keyed by the row id and kept current
// by triggers; paragraphs are indexed together with their chapter title.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS bible_versions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command TEXT NOT NULL UNIQUE COLLATE NOCASE,
			name TEXT NOT NULL,
			abbreviation TEXT NOT NULL,
			backend_kind TEXT NOT NULL,
			backend_locator TEXT NOT NULL DEFAULT '',
			right_to_left INTEGER NOT NULL DEFAULT 0,
			book_set INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_prefs (
			owner_id INTEGER PRIMARY KEY,
			version_id INTEGER REFERENCES bible_versions(id) ON DELETE SET NULL
		);

		CREATE TABLE IF NOT EXISTS guild_prefs (
			owner_id INTEGER PRIMARY KEY,
			version_id INTEGER REFERENCES bible_versions(id) ON DELETE SET NULL
		);

		CREATE TABLE IF NOT EXISTS confessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command TEXT NOT NULL UNIQUE COLLATE NOCASE,
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('CHAPTERS', 'QA', 'ARTICLES')),
			numbering TEXT NOT NULL CHECK (numbering IN ('ARABIC', 'ROMAN'))
		);

		CREATE TABLE IF NOT EXISTS confession_chapters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			confession_id INTEGER NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
			chapter_number INTEGER NOT NULL,
			title TEXT NOT NULL,
			UNIQUE (confession_id, chapter_number)
		);

		CREATE TABLE IF NOT EXISTS confession_paragraphs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			confession_id INTEGER NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
			chapter_number INTEGER NOT NULL,
			paragraph_number INTEGER NOT NULL,
			text TEXT NOT NULL,
			UNIQUE (confession_id, chapter_number, paragraph_number)
		);

		CREATE TABLE IF NOT EXISTS confession_questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			confession_id INTEGER NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
			question_number INTEGER NOT NULL,
			question_text TEXT NOT NULL,
			answer_text TEXT NOT NULL,
			UNIQUE (confession_id, question_number)
		);

		CREATE TABLE IF NOT EXISTS confession_articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			confession_id INTEGER NOT NULL REFERENCES confessions(id) ON DELETE CASCADE,
			article_number INTEGER NOT NULL,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			UNIQUE (confession_id, article_number)
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS confession_paragraphs_fts
			USING fts5(search_text, tokenize = 'porter unicode61');
		CREATE VIRTUAL TABLE IF NOT EXISTS confession_questions_fts
			USING fts5(search_text, tokenize = 'porter unicode61');
		CREATE VIRTUAL TABLE IF NOT EXISTS confession_articles_fts
			USING fts5(search_text, tokenize = 'porter unicode61');

		CREATE TRIGGER IF NOT EXISTS confession_paragraphs_ai AFTER INSERT ON confession_paragraphs BEGIN
			INSERT INTO confession_paragraphs_fts (rowid, search_text)
			VALUES (new.id, COALESCE((
				SELECT title FROM confession_chapters
				WHERE confession_id = new.confession_id AND chapter_number = new.chapter_number
			), '') || ' ' || new.text);
		END;

		CREATE TRIGGER IF NOT EXISTS confession_paragraphs_ad AFTER DELETE ON confession_paragraphs BEGIN
			DELETE FROM confession_paragraphs_fts WHERE rowid = old.id;
		END;

		CREATE TRIGGER IF NOT EXISTS confession_paragraphs_au AFTER UPDATE ON confession_paragraphs BEGIN
			DELETE FROM confession_paragraphs_fts WHERE rowid = old.id;
			INSERT INTO confession_paragraphs_fts (rowid, search_text)
			VALUES (new.id, COALESCE((
				SELECT title FROM confession_chapters
				WHERE confession_id = new.confession_id AND chapter_number = new.chapter_number
			), '') || ' ' || new.text);
		END;

		CREATE TRIGGER IF NOT EXISTS confession_chapters_ai AFTER INSERT ON confession_chapters BEGIN
			DELETE FROM confession_paragraphs_fts WHERE rowid IN (
				SELECT id FROM confession_paragraphs
				WHERE confession_id = new.confession_id AND chapter_number = new.chapter_number
			);
			INSERT INTO confession_paragraphs_fts (rowid, search_text)
			SELECT id, new.title || ' ' || text FROM confession_paragraphs
			WHERE confession_id = new.confession_id AND chapter_number = new.chapter_number;
		END;

		CREATE TRIGGER IF NOT EXISTS confession_chapters_ad AFTER DELETE ON confession_chapters BEGIN
			DELETE FROM confession_paragraphs_fts WHERE rowid IN (
				SELECT id FROM confession_paragraphs
				WHERE confession_id = old.confession_id AND chapter_number = old.chapter_number
			);
			INSERT INTO confession_paragraphs_fts (rowid, search_text)
			SELECT id, ' ' || text FROM confession_paragraphs
			WHERE confession_id = old.confession_id AND chapter_number = old.chapter_number;
		END;

		CREATE TRIGGER IF NOT EXISTS confession_questions_ai AFTER INSERT ON confession_questions BEGIN
			INSERT INTO confession_questions_fts (rowid, search_text)
			VALUES (new.id, new.question_text || ' ' || new.answer_text);
		END;

		CREATE TRIGGER IF NOT EXISTS confession_questions_ad AFTER DELETE ON confession_questions BEGIN
			DELETE FROM confession_questions_fts WHERE rowid = old.id;
		END;

		CREATE TRIGGER IF NOT EXISTS confession_articles_ai AFTER INSERT ON confession_articles BEGIN
			INSERT INTO confession_articles_fts (rowid, search_text)
			VALUES (new.id, new.title || ' ' || new.text);
		END;

		CREATE TRIGGER IF NOT EXISTS confession_articles_ad AFTER DELETE ON confession_articles BEGIN
			DELETE FROM confession_articles_fts WHERE rowid = old.id;
		END;
	`

	_, err := db.db.Exec(schema)
	return err
}
