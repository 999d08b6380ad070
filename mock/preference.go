package mock

import (
	"context"

	"github.com/fwojciec/lectio"
)

var _ lectio.PreferenceService = (*PreferenceService)(nil)

// PreferenceService is a mock implementation of lectio.PreferenceService.
type PreferenceService struct {
	FindPreferenceFn   func(ctx context.Context, kind lectio.OwnerKind, ownerID int64) (*lectio.Preference, error)
	SetPreferenceFn    func(ctx context.Context, kind lectio.OwnerKind, ownerID, versionID int64) error
	DeletePreferenceFn func(ctx context.Context, kind lectio.OwnerKind, ownerID int64) error
}

func (s *PreferenceService) FindPreference(ctx context.Context, kind lectio.OwnerKind, ownerID int64) (*lectio.Preference, error) {
	return s.FindPreferenceFn(ctx, kind, ownerID)
}

func (s *PreferenceService) SetPreference(ctx context.Context, kind lectio.OwnerKind, ownerID, versionID int64) error {
	return s.SetPreferenceFn(ctx, kind, ownerID, versionID)
}

func (s *PreferenceService) DeletePreference(ctx context.Context, kind lectio.OwnerKind, ownerID int64) error {
	return s.DeletePreferenceFn(ctx, kind, ownerID)
}
