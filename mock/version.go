package mock

import (
	"context"

	"github.com/fwojciec/lectio"
)

var _ lectio.VersionService = (*VersionService)(nil)

// VersionService is a mock implementation of lectio.VersionService.
type VersionService struct {
	FindVersionByCommandFn      func(ctx context.Context, command string) (*lectio.Version, error)
	FindVersionByAbbreviationFn func(ctx context.Context, abbr string) (*lectio.Version, error)
	FindVersionByIDFn           func(ctx context.Context, id int64) (*lectio.Version, error)
	FindVersionsFn              func(ctx context.Context) ([]*lectio.Version, error)
	CreateVersionFn             func(ctx context.Context, v *lectio.Version) error
	UpdateVersionFn             func(ctx context.Context, command string, upd lectio.VersionUpdate) (*lectio.Version, error)
	DeleteVersionFn             func(ctx context.Context, command string) error
}

func (s *VersionService) FindVersionByCommand(ctx context.Context, command string) (*lectio.Version, error) {
	return s.FindVersionByCommandFn(ctx, command)
}

func (s *VersionService) FindVersionByAbbreviation(ctx context.Context, abbr string) (*lectio.Version, error) {
	return s.FindVersionByAbbreviationFn(ctx, abbr)
}

func (s *VersionService) FindVersionByID(ctx context.Context, id int64) (*lectio.Version, error) {
	return s.FindVersionByIDFn(ctx, id)
}

func (s *VersionService) FindVersions(ctx context.Context) ([]*lectio.Version, error) {
	return s.FindVersionsFn(ctx)
}

func (s *VersionService) CreateVersion(ctx context.Context, v *lectio.Version) error {
	return s.CreateVersionFn(ctx, v)
}

func (s *VersionService) UpdateVersion(ctx context.Context, command string, upd lectio.VersionUpdate) (*lectio.Version, error) {
	return s.UpdateVersionFn(ctx, command, upd)
}

func (s *VersionService) DeleteVersion(ctx context.Context, command string) error {
	return s.DeleteVersionFn(ctx, command)
}
