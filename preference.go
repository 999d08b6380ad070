package lectio

import (
	"context"
)

// DefaultVersionCommand is the version used when neither the user nor the
// guild has chosen one.
const DefaultVersionCommand = "esv"

// OwnerKind distinguishes who owns a preference.
type OwnerKind string

// Owner kinds.
const (
	OwnerUser  OwnerKind = "user"
	OwnerGuild OwnerKind = "guild"
)

// Valid reports whether k is a known kind.
func (k OwnerKind) Valid() bool {
	return k == OwnerUser || k == OwnerGuild
}

// Preference is the version an owner has chosen. VersionID is nil when the
// chosen version has since been deleted.
type Preference struct {
	Kind      OwnerKind `json:"kind"`
	OwnerID   int64     `json:"ownerId"`
	VersionID *int64    `json:"versionId"`
}

// PreferenceService represents a service for managing version preferences.
// One row exists per (kind, owner).
type PreferenceService interface {
	// FindPreference retrieves an owner's preference.
	// Returns ENOTFOUND if the owner has none.
	FindPreference(ctx context.Context, kind OwnerKind, ownerID int64) (*Preference, error)

	// SetPreference creates or replaces an owner's preference.
	SetPreference(ctx context.Context, kind OwnerKind, ownerID, versionID int64) error

	// DeletePreference removes an owner's preference.
	// Returns ENOTFOUND if the owner has none.
	DeletePreference(ctx context.Context, kind OwnerKind, ownerID int64) error
}

// Resolver picks the version for a request: the user's preference, then
// the guild's, then the default. Each step is taken only when the one
// before yields no usable version.
type Resolver struct {
	Preferences    PreferenceService
	Versions       VersionService
	DefaultCommand string
}

// NewResolver returns a Resolver falling back to DefaultVersionCommand.
func NewResolver(prefs PreferenceService, versions VersionService) *Resolver {
	return &Resolver{
		Preferences:    prefs,
		Versions:       versions,
		DefaultCommand: DefaultVersionCommand,
	}
}

// Resolve returns the version for a user in a guild. Either ID may be nil,
// as for direct messages.
func (r *Resolver) Resolve(ctx context.Context, userID, guildID *int64) (*Version, error) {
	if userID != nil {
		v, err := r.preferred(ctx, OwnerUser, *userID)
		if err != nil || v != nil {
			return v, err
		}
	}
	if guildID != nil {
		v, err := r.preferred(ctx, OwnerGuild, *guildID)
		if err != nil || v != nil {
			return v, err
		}
	}
	command := r.DefaultCommand
	if command == "" {
		command = DefaultVersionCommand
	}
	return r.Versions.FindVersionByCommand(ctx, command)
}

// preferred returns nil, nil when the owner has no usable preference.
func (r *Resolver) preferred(ctx context.Context, kind OwnerKind, ownerID int64) (*Version, error) {
	pref, err := r.Preferences.FindPreference(ctx, kind, ownerID)
	if ErrorCode(err) == ENOTFOUND {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if pref.VersionID == nil {
		return nil, nil
	}
	v, err := r.Versions.FindVersionByID(ctx, *pref.VersionID)
	if ErrorCode(err) == EVERSION {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return v, nil
}
