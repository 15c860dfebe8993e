package publish

import "time"

// ScheduledPost is the persisted record of a post handed to WordPress
// with a future date. WordPress itself publishes it when the time
// comes; this record exists for operator visibility.
type ScheduledPost struct {
	ArticleID    string    `json:"articleId"`
	SiteID       string    `json:"siteId"`
	PostID       int       `json:"postId"`
	URL          string    `json:"url"`
	ScheduledFor time.Time `json:"scheduledFor"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Result reports one publication. ImageError is set when the featured
// image sub-step failed; the post itself still went out.
type Result struct {
	ArticleID    string     `json:"articleId"`
	SiteID       string     `json:"siteId"`
	PostID       int        `json:"postId"`
	URL          string     `json:"url"`
	Status       string     `json:"status"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	ImageError   string     `json:"imageError,omitempty"`
}
