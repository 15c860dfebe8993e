package content

import "time"

// Idea lifecycle. Status literals match the persisted store format.
const (
	IdeaStatusPending  = "pendente"
	IdeaStatusProduced = "produzido"
	IdeaStatusDeleted  = "excluido"
)

// ArticleStatusCompleted is the only article status: articles exist
// once production finishes.
const ArticleStatusCompleted = "Concluído"

// IdeaWordPressData carries the WordPress selections made when the idea
// was created. The publish step uses them as defaults for anything the
// publish request leaves empty.
type IdeaWordPressData struct {
	AuthorID    string   `json:"authorId,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	TagSlugs    []string `json:"tagSlugs,omitempty"`
	TagIDs      []string `json:"tagIds,omitempty"`
}

// Idea field names in the store keep the original Portuguese keys for
// categoria and the deletion date.
type Idea struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description,omitempty"`
	Keywords         []string               `json:"keywords,omitempty"`
	Category         string                 `json:"categoria,omitempty"`
	Tags             []string               `json:"tags,omitempty"`
	SiteID           string                 `json:"siteId,omitempty"`
	WordPress        *IdeaWordPressData     `json:"wordpressData,omitempty"`
	CTA              string                 `json:"cta,omitempty"`
	GenerationParams map[string]interface{} `json:"generationParams,omitempty"`
	Status           string                 `json:"status"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
	DeletedAt        *time.Time             `json:"deletedDate,omitempty"`
}

// PublishRecord is stamped onto an article once it reaches WordPress.
// Exactly one of PublishedAt and ScheduledFor is set.
type PublishRecord struct {
	SiteID       string     `json:"siteId"`
	PostID       int        `json:"postId"`
	URL          string     `json:"url"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

type Article struct {
	ID        string         `json:"id"`
	IdeaID    string         `json:"ideaId"`
	SiteID    string         `json:"siteId,omitempty"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	WordPress *PublishRecord `json:"wordpress,omitempty"`
}

// Published reports whether the article already reached WordPress,
// immediately or via scheduling.
func (a *Article) Published() bool {
	return a.WordPress != nil
}

// PlanUsage is the quota introspection view: limits straight from
// configuration, counts read from the store at call time.
type PlanUsage struct {
	Tier         string `json:"tier"`
	IdeaCount    int    `json:"ideaCount"`
	IdeaLimit    int    `json:"ideaLimit"`
	ArticleCount int    `json:"articleCount"`
	ArticleLimit int    `json:"articleLimit"`
}
