package repository

import (
	"context"
	"fmt"
	"sync"

	"pressroom-backend/internal/domains/content"
	"pressroom-backend/pkg/cache"
)

const (
	keyIdeas    = "content:ideas"
	keyArticles = "content:articles"
)

type storeRepository struct {
	store cache.Cache
	mu    sync.Mutex
}

func NewStoreRepository(store cache.Cache) content.Repository {
	return &storeRepository{store: store}
}

func (r *storeRepository) GetIdeas(ctx context.Context) ([]content.Idea, error) {
	var ideas []content.Idea
	found, err := r.store.Get(ctx, keyIdeas, &ideas)
	if err != nil {
		return nil, fmt.Errorf("load ideas: %w", err)
	}
	if !found {
		return []content.Idea{}, nil
	}
	return ideas, nil
}

func (r *storeRepository) SaveIdeas(ctx context.Context, ideas []content.Idea) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, keyIdeas, ideas, 0); err != nil {
		return fmt.Errorf("save ideas: %w", err)
	}
	return nil
}

func (r *storeRepository) GetArticles(ctx context.Context) ([]content.Article, error) {
	var articles []content.Article
	found, err := r.store.Get(ctx, keyArticles, &articles)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	if !found {
		return []content.Article{}, nil
	}
	return articles, nil
}

func (r *storeRepository) SaveArticles(ctx context.Context, articles []content.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, keyArticles, articles, 0); err != nil {
		return fmt.Errorf("save articles: %w", err)
	}
	return nil
}
