package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/lectio"
)

// Compile-time interface verification.
var _ lectio.VersionService = (*VersionService)(nil)

// VersionService implements lectio.VersionService using PostgreSQL.
type VersionService struct {
	db *DB
}

// NewVersionService creates a new VersionService.
func NewVersionService(db *DB) *VersionService {
	return &VersionService{db: db}
}

type versionRow struct {
	ID           int64  `db:"id"`
	Command      string `db:"command"`
	Name         string `db:"name"`
	Abbreviation string `db:"abbreviation"`
	Backend      string `db:"backend_kind"`
	Locator      string `db:"backend_locator"`
	RightToLeft  bool   `db:"right_to_left"`
	Books        int64  `db:"book_set"`
}

func (r *versionRow) version() *lectio.Version {
	return &lectio.Version{
		ID:           r.ID,
		Command:      r.Command,
		Name:         r.Name,
		Abbreviation: r.Abbreviation,
		Backend:      r.Backend,
		Locator:      r.Locator,
		RightToLeft:  r.RightToLeft,
		Books:        lectio.BookMask(r.Books),
	}
}

const versionColumns = `id, command, name, abbreviation, backend_kind, backend_locator, right_to_left, book_set`

func (s *VersionService) findOne(ctx context.Context, where string, arg any, label any) (*lectio.Version, error) {
	var row versionRow
	err := s.db.db.GetContext(ctx, &row, `SELECT `+versionColumns+` FROM bible_versions WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lectio.Errorf(lectio.EVERSION, "%v is not a supported version", label)
	}
	if err != nil {
		return nil, err
	}
	return row.version(), nil
}

// FindVersionByCommand retrieves a version by its command.
func (s *VersionService) FindVersionByCommand(ctx context.Context, command string) (*lectio.Version, error) {
	return s.findOne(ctx, "lower(command) = lower($1)", command, command)
}

// FindVersionByAbbreviation retrieves a version by its abbreviation.
func (s *VersionService) FindVersionByAbbreviation(ctx context.Context, abbr string) (*lectio.Version, error) {
	return s.findOne(ctx, "lower(abbreviation) = lower($1) ORDER BY id LIMIT 1", abbr, abbr)
}

// FindVersionByID retrieves a version by ID.
func (s *VersionService) FindVersionByID(ctx context.Context, id int64) (*lectio.Version, error) {
	return s.findOne(ctx, "id = $1", id, id)
}

// FindVersions lists all versions ordered by command.
func (s *VersionService) FindVersions(ctx context.Context) ([]*lectio.Version, error) {
	var rows []versionRow
	if err := s.db.db.SelectContext(ctx, &rows, `SELECT `+versionColumns+` FROM bible_versions ORDER BY command`); err != nil {
		return nil, err
	}

	versions := make([]*lectio.Version, len(rows))
	for i := range rows {
		versions[i] = rows[i].version()
	}
	return versions, nil
}

// CreateVersion stores a new version and sets its ID.
func (s *VersionService) CreateVersion(ctx context.Context, v *lectio.Version) error {
	if err := v.Validate(); err != nil {
		return err
	}

	err := s.db.db.QueryRowxContext(ctx, `
		INSERT INTO bible_versions (command, name, abbreviation, backend_kind, backend_locator, right_to_left, book_set)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, v.Command, v.Name, v.Abbreviation, v.Backend, v.Locator, v.RightToLeft, int64(v.Books)).Scan(&v.ID)
	return translate(err, "version "+v.Command)
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

	if err := s.db.ExecContext(ctx, `
		UPDATE bible_versions
		SET backend_kind = $1, backend_locator = $2, book_set = $3
		WHERE id = $4
	`, v.Backend, v.Locator, int64(v.Books), v.ID); err != nil {
		return nil, err
	}

	return v, nil
}

// DeleteVersion removes a version. Preferences pointing at it are set to NULL.
func (s *VersionService) DeleteVersion(ctx context.Context, command string) error {
	result, err := s.db.db.ExecContext(ctx, "DELETE FROM bible_versions WHERE lower(command) = lower($1)", command)
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
