package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/lectio"
)

// Compile-time interface verification.
var _ lectio.VersionService = (*VersionService)(nil)

// VersionService implements lectio.VersionService using SQLite.
type VersionService struct {
	db *DB
}

// NewVersionService creates a new VersionService.
func NewVersionService(db *DB) *VersionService {
	return &VersionService{db: db}
}

const versionColumns = `id, command, name, abbreviation, backend_kind, backend_locator, right_to_left, book_set`

type scanner interface {
	Scan(dest ...any) error
}

func scanVersion(row scanner) (*lectio.Version, error) {
	var v lectio.Version
	var books int64
	if err := row.Scan(&v.ID, &v.Command, &v.Name, &v.Abbreviation, &v.Backend, &v.Locator, &v.RightToLeft, &books); err != nil {
		return nil, err
	}
	v.Books = lectio.BookMask(books)
	return &v, nil
}

func (s *VersionService) findOne(ctx context.Context, where string, arg, label any) (*lectio.Version, error) {
	v, err := scanVersion(s.db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM bible_versions WHERE `+where, arg))
	if err == sql.ErrNoRows {
		return nil, lectio.Errorf(lectio.EVERSION, "%v is not a supported version", label)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// FindVersionByCommand retrieves a version by its command.
func (s *VersionService) FindVersionByCommand(ctx context.Context, command string) (*lectio.Version, error) {
	return s.findOne(ctx, "command = ?", command, command)
}

// FindVersionByAbbreviation retrieves a version by its abbreviation.
func (s *VersionService) FindVersionByAbbreviation(ctx context.Context, abbr string) (*lectio.Version, error) {
	return s.findOne(ctx, "abbreviation = ? COLLATE NOCASE ORDER BY id LIMIT 1", abbr, abbr)
}

// FindVersionByID retrieves a version by ID.
func (s *VersionService) FindVersionByID(ctx context.Context, id int64) (*lectio.Version, error) {
	return s.findOne(ctx, "id = ?", id, id)
}

// FindVersions lists all versions ordered by command.
func (s *VersionService) FindVersions(ctx context.Context) ([]*lectio.Version, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+versionColumns+` FROM bible_versions ORDER BY command`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []*lectio.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

// CreateVersion stores a new version and sets its ID.
func (s *VersionService) CreateVersion(ctx context.Context, v *lectio.Version) error {
	if err := v.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO bible_versions (command, name, abbreviation, backend_kind, backend_locator, right_to_left, book_set)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, v.Command, v.Name, v.Abbreviation, v.Backend, v.Locator, v.RightToLeft, int64(v.Books))
	if err != nil {
		return translate(err, "version "+v.Command)
	}

	v.ID, err = result.LastInsertId()
	return err
}

// UpdateVersion changes the backend, locator or books of a version.
func (s *VersionService) UpdateVersion(ctx context.Context, command string, upd lectio.VersionUpdate) (*lectio.Version, error) {
	v, err := s.FindVersionByCommand(ctx, command)
	if err != nil {
		return nil, err
	}

	if upd.Backend != nil {
		v.Backend = *upd.Backend
	}
	if upd.Locator != nil {
		v.Locator = *upd.Locator
	}
	if upd.Books != nil {
		v.Books = *upd.Books
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE bible_versions
		SET backend_kind = ?, backend_locator = ?, book_set = ?
		WHERE id = ?
	`, v.Backend, v.Locator, int64(v.Books), v.ID)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// DeleteVersion removes a version. Preferences pointing at it are set to NULL.
func (s *VersionService) DeleteVersion(ctx context.Context, command string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM bible_versions WHERE command = ?", command)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lectio.Errorf(lectio.EVERSION, "%s is not a supported version", command)
	}

	return nil
}
