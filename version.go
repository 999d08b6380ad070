package lectio

import (
	"context"
	"strings"
)

// Version is a Bible translation served by one backend.
type Version struct {
	ID           int64    `json:"id"`
	Command      string   `json:"command"`
	Name         string   `json:"name"`
	Abbreviation string   `json:"abbreviation"`
	Backend      string   `json:"backend"`
	Locator      string   `json:"locator"`
	RightToLeft  bool     `json:"rightToLeft"`
	Books        BookMask `json:"books"`
}

// Validate returns an error if the version contains invalid fields.
func (v *Version) Validate() error {
	if v.Command == "" {
		return Errorf(EINVALID, "Version command required")
	}
	if strings.ContainsAny(v.Command, " \t\n") {
		return Errorf(EINVALID, "Version command %q must be a single word", v.Command)
	}
	if v.Name == "" {
		return Errorf(EINVALID, "Version name required")
	}
	if v.Abbreviation == "" {
		return Errorf(EINVALID, "Version abbreviation required")
	}
	if v.Backend == "" {
		return Errorf(EINVALID, "Version backend required")
	}
	if v.Books == 0 {
		return Errorf(EINVALID, "Version must carry at least one book")
	}
	return nil
}

// Covers reports whether the version carries the book of r.
func (v *Version) Covers(r VerseRange) bool {
	return v.Books.Covers(r.Book.Mask())
}

// CheckCoverage returns ECOVERAGE if the version does not carry the book of r.
func (v *Version) CheckCoverage(r VerseRange) error {
	if !v.Covers(r) {
		return Errorf(ECOVERAGE, "%s is not in the %s", r.Book, v.Name)
	}
	return nil
}

// VersionService represents a service for managing versions.
type VersionService interface {
	// FindVersionByCommand retrieves a version by its command.
	// Matching is case-insensitive. Returns EVERSION if none exists.
	FindVersionByCommand(ctx context.Context, command string) (*Version, error)

	// FindVersionByAbbreviation retrieves a version by its abbreviation.
	// Matching is case-insensitive. Returns EVERSION if none exists.
	FindVersionByAbbreviation(ctx context.Context, abbr string) (*Version, error)

	// FindVersionByID retrieves a version by ID.
	// Returns EVERSION if none exists.
	FindVersionByID(ctx context.Context, id int64) (*Version, error)

	// FindVersions lists all versions ordered by command.
	FindVersions(ctx context.Context) ([]*Version, error)

	// CreateVersion stores a new version and sets its ID.
	// Returns ECONFLICT if the command is taken.
	CreateVersion(ctx context.Context, v *Version) error

	// UpdateVersion changes the backend of a version.
	// Returns EVERSION if none exists.
	UpdateVersion(ctx context.Context, command string, upd VersionUpdate) (*Version, error)

	// DeleteVersion removes a version. Preferences pointing at it are cleared.
	// Returns EVERSION if none exists.
	DeleteVersion(ctx context.Context, command string) error
}

// VersionUpdate represents fields that can be updated on a version.
type VersionUpdate struct {
	Backend *string   `json:"backend"`
	Locator *string   `json:"locator"`
	Books   *BookMask `json:"books"`
}
