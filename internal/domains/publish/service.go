package publish

import "context"

// ImageStore is where staged featured images wait (MinIO in
// production).
type ImageStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// ImageProcessor validates and normalizes a featured image before it
// goes to WordPress.
type ImageProcessor interface {
	ValidateImage(data []byte) error
	PrepareFeaturedImage(data []byte) ([]byte, string, error)
}

// Service is the publish orchestrator. Publish and Schedule are
// mutually exclusive by construction: one sends status "publish", the
// other "future" with a date.
type Service interface {
	Publish(ctx context.Context, articleID string, req PublishRequest) (*Result, error)
	Schedule(ctx context.Context, articleID string, req ScheduleRequest) (*Result, error)
	ListScheduled(ctx context.Context) ([]ScheduledPost, error)
}
