package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/lectio"
)

// Compile-time interface verification.
var _ lectio.PreferenceService = (*PreferenceService)(nil)

// preferenceTables maps owner kinds to their tables. Both tables share one
// shape, so every query is written once.
var preferenceTables = map[lectio.OwnerKind]string{
	lectio.OwnerUser:  "user_prefs",
	lectio.OwnerGuild: "guild_prefs",
}

// PreferenceService implements lectio.PreferenceService using SQLite.
type PreferenceService struct {
	db *DB
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(db *DB) *PreferenceService {
	return &PreferenceService{db: db}
}

func preferenceTable(kind lectio.OwnerKind) (string, error) {
	table, ok := preferenceTables[kind]
	if !ok {
		return "", lectio.Errorf(lectio.EINVALID, "unknown owner kind %q", kind)
	}
	return table, nil
}

// FindPreference retrieves an owner's preference.
func (s *PreferenceService) FindPreference(ctx context.Context, kind lectio.OwnerKind, ownerID int64) (*lectio.Preference, error) {
	table, err := preferenceTable(kind)
	if err != nil {
		return nil, err
	}

	pref := lectio.Preference{Kind: kind, OwnerID: ownerID}
	var versionID sql.NullInt64
	err = s.db.QueryRowContext(ctx, `SELECT version_id FROM `+table+` WHERE owner_id = ?`, ownerID).Scan(&versionID)
	if err == sql.ErrNoRows {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "no %s preference set", kind)
	}
	if err != nil {
		return nil, err
	}

	if versionID.Valid {
		pref.VersionID = &versionID.Int64
	}
	return &pref, nil
}

// SetPreference creates or replaces an owner's preference in one statement.
func (s *PreferenceService) SetPreference(ctx context.Context, kind lectio.OwnerKind, ownerID, versionID int64) error {
	table, err := preferenceTable(kind)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (owner_id, version_id) VALUES (?, ?)
		ON CONFLICT (owner_id) DO UPDATE SET version_id = excluded.version_id
	`, ownerID, versionID)
	if lectio.ErrorCode(translate(err, "preference")) == lectio.ENOTFOUND {
		return lectio.Errorf(lectio.EVERSION, "version %d does not exist", versionID)
	}
	return err
}

// DeletePreference removes an owner's preference.
func (s *PreferenceService) DeletePreference(ctx context.Context, kind lectio.OwnerKind, ownerID int64) error {
	table, err := preferenceTable(kind)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE owner_id = ?`, ownerID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lectio.Errorf(lectio.ENOTFOUND, "no %s preference set", kind)
	}

	return nil
}
