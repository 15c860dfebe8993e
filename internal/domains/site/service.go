package site

import (
	"context"
	"time"
)

// Service is the site domain's business surface.
type Service interface {
	// Sync merges a registry snapshot into the taxonomy cache. A nil
	// snapshot loads the host-owned registry from the store.
	Sync(ctx context.Context, snapshot []RegistrySite) (*SyncResult, error)

	ListSites(ctx context.Context) ([]Site, error)
	GetSite(ctx context.Context, id string) (*Site, error)

	// ReloadSite refetches all three taxonomies. Concurrent reloads of
	// the same site collapse into one upstream round trip.
	ReloadSite(ctx context.Context, id string) (*Site, error)

	CheckConnectivity(ctx context.Context, id string) (*ConnectivityReport, error)
	CreateTag(ctx context.Context, siteID, name string) (*Tag, error)

	// RefreshStale reloads up to maxSites sites whose taxonomy is older
	// than olderThan. Used by the worker.
	RefreshStale(ctx context.Context, olderThan time.Duration, maxSites int) (int, error)

	// PruneBackoff drops backoff entries older than window.
	PruneBackoff(ctx context.Context, window time.Duration) (int, error)
}

// SyncResult summarizes one registry merge.
type SyncResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
	Total   int `json:"total"`
}
