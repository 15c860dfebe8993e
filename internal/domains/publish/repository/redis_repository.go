package repository

import (
	"context"
	"fmt"
	"sync"

	"pressroom-backend/internal/domains/publish"
	"pressroom-backend/pkg/cache"
)

const keyScheduledPosts = "wordpress:scheduled-posts"

type storeRepository struct {
	store cache.Cache
	mu    sync.Mutex
}

func NewStoreRepository(store cache.Cache) publish.Repository {
	return &storeRepository{store: store}
}

func (r *storeRepository) GetScheduledPosts(ctx context.Context) ([]publish.ScheduledPost, error) {
	var posts []publish.ScheduledPost
	found, err := r.store.Get(ctx, keyScheduledPosts, &posts)
	if err != nil {
		return nil, fmt.Errorf("load scheduled posts: %w", err)
	}
	if !found {
		return []publish.ScheduledPost{}, nil
	}
	return posts, nil
}

func (r *storeRepository) SaveScheduledPosts(ctx context.Context, posts []publish.ScheduledPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, keyScheduledPosts, posts, 0); err != nil {
		return fmt.Errorf("save scheduled posts: %w", err)
	}
	return nil
}
