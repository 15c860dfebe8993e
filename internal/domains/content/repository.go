package content

import "context"

// Repository persists ideas and articles in the shared KV store.
type Repository interface {
	GetIdeas(ctx context.Context) ([]Idea, error)
	SaveIdeas(ctx context.Context, ideas []Idea) error
	GetArticles(ctx context.Context) ([]Article, error)
	SaveArticles(ctx context.Context, articles []Article) error
}
