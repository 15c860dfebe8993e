package wordpress

import "context"

// Credentials is a WordPress application password pair. The password is
// the "application password" generated in wp-admin, not the login password.
type Credentials struct {
	Username    string `json:"username"`
	AppPassword string `json:"appPassword"`
}

func (c Credentials) Empty() bool {
	return c.Username == "" || c.AppPassword == ""
}

// Category mirrors /wp-json/wp/v2/categories entries.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Author mirrors /wp-json/wp/v2/users entries.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tag mirrors /wp-json/wp/v2/tags entries.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Media is the subset of a media response the pipeline needs.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// PostPayload is the body sent to /wp-json/wp/v2/posts. Status is either
// "publish" or "future"; DateGMT is set only for future posts.
type PostPayload struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt,omitempty"`
	Status        string `json:"status"`
	DateGMT       string `json:"date_gmt,omitempty"`
	Categories    []int  `json:"categories,omitempty"`
	Tags          []int  `json:"tags,omitempty"`
	Author        int    `json:"author,omitempty"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

// Post is the subset of a created post the pipeline records.
type Post struct {
	ID     int    `json:"id"`
	Link   string `json:"link"`
	Status string `json:"status"`
}

// Gateway is the outbound WordPress REST surface. All calls take the
// normalized site base URL so one client serves every registered site.
type Gateway interface {
	ListCategories(ctx context.Context, baseURL string, creds Credentials) ([]Category, error)
	ListAuthors(ctx context.Context, baseURL string, creds Credentials) ([]Author, error)
	ListTags(ctx context.Context, baseURL string, creds Credentials) ([]Tag, error)
	CreateTag(ctx context.Context, baseURL string, creds Credentials, name string) (*Tag, error)
	UploadMedia(ctx context.Context, baseURL string, creds Credentials, filename, contentType string, data []byte) (*Media, error)
	CreatePost(ctx context.Context, baseURL string, creds Credentials, payload PostPayload) (*Post, error)
	CheckConnectivity(ctx context.Context, baseURL string, creds Credentials) error
}
