package repository

import (
	"context"
	"fmt"
	"sync"

	"pressroom-backend/internal/domains/site"
	"pressroom-backend/pkg/cache"
)

const (
	// keyRegistry is written by the host application; this backend
	// only reads it.
	keyRegistry     = "sites:main"
	keySites        = "wordpress:sites"
	keyInaccessible = "wordpress:inaccessible-sites"
)

type storeRepository struct {
	store cache.Cache
	mu    sync.Mutex
}

// NewStoreRepository builds the site repository on the shared KV store.
func NewStoreRepository(store cache.Cache) site.Repository {
	return &storeRepository{store: store}
}

func (r *storeRepository) LoadRegistry(ctx context.Context) ([]site.RegistrySite, error) {
	var snapshot []site.RegistrySite
	found, err := r.store.Get(ctx, keyRegistry, &snapshot)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if !found {
		return nil, nil
	}
	return snapshot, nil
}

func (r *storeRepository) GetSites(ctx context.Context) ([]site.Site, error) {
	var sites []site.Site
	found, err := r.store.Get(ctx, keySites, &sites)
	if err != nil {
		return nil, fmt.Errorf("load sites: %w", err)
	}
	if !found {
		return []site.Site{}, nil
	}
	return sites, nil
}

func (r *storeRepository) SaveSites(ctx context.Context, sites []site.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, keySites, sites, 0); err != nil {
		return fmt.Errorf("save sites: %w", err)
	}
	return nil
}

func (r *storeRepository) GetInaccessible(ctx context.Context) ([]site.InaccessibleEntry, error) {
	var entries []site.InaccessibleEntry
	found, err := r.store.Get(ctx, keyInaccessible, &entries)
	if err != nil {
		return nil, fmt.Errorf("load inaccessible sites: %w", err)
	}
	if !found {
		return []site.InaccessibleEntry{}, nil
	}
	return entries, nil
}

func (r *storeRepository) SaveInaccessible(ctx context.Context, entries []site.InaccessibleEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, keyInaccessible, entries, 0); err != nil {
		return fmt.Errorf("save inaccessible sites: %w", err)
	}
	return nil
}
