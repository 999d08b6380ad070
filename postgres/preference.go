package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/lectio"
)

// Compile-time interface verification.
var _ lectio.PreferenceService = (*PreferenceService)(nil)

var preferenceTables = map[lectio.OwnerKind]string{
	lectio.OwnerUser:  "user_prefs",
	lectio.OwnerGuild: "guild_prefs",
}

// PreferenceService implements lectio.PreferenceService using PostgreSQL.
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

	var versionID sql.NullInt64
	err = s.db.db.GetContext(ctx, &versionID, `SELECT version_id FROM `+table+` WHERE owner_id = $1`, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lectio.Errorf(lectio.ENOTFOUND, "no %s preference set", kind)
	}
	if err != nil {
		return nil, err
	}

	pref := &lectio.Preference{Kind: kind, OwnerID: ownerID}
	if versionID.Valid {
		pref.VersionID = &versionID.Int64
	}
	return pref, nil
}

// SetPreference creates or replaces an owner's preference in one statement.
func (s *PreferenceService) SetPreference(ctx context.Context, kind lectio.OwnerKind, ownerID, versionID int64) error {
	table, err := preferenceTable(kind)
	if err != nil {
		return err
	}

	err = s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (owner_id, version_id) VALUES ($1, $2)
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

	result, err := s.db.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE owner_id = $1`, ownerID)
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
