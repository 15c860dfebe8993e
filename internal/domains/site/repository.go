package site

import "context"

// Repository is the persisted-state access for the site domain. The
// registry snapshot is owned by the host application and only read.
type Repository interface {
	LoadRegistry(ctx context.Context) ([]RegistrySite, error)
	GetSites(ctx context.Context) ([]Site, error)
	SaveSites(ctx context.Context, sites []Site) error
	GetInaccessible(ctx context.Context) ([]InaccessibleEntry, error)
	SaveInaccessible(ctx context.Context, entries []InaccessibleEntry) error
}
