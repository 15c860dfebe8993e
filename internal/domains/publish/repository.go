package publish

import "context"

// Repository persists scheduled-post records.
type Repository interface {
	GetScheduledPosts(ctx context.Context) ([]ScheduledPost, error)
	SaveScheduledPosts(ctx context.Context, posts []ScheduledPost) error
}
