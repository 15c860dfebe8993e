package service

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"pressroom-backend/internal/domains/content"
	"pressroom-backend/internal/domains/publish"
	"pressroom-backend/internal/domains/site"
	"pressroom-backend/internal/infrastructure/wordpress"
)

const dateGMTLayout = "2006-01-02T15:04:05"

type publishService struct {
	articles  content.Repository
	sites     site.Service
	gateway   wordpress.Gateway
	store     publish.ImageStore
	processor publish.ImageProcessor
	repo      publish.Repository

	mu       sync.Mutex
	inflight map[string]bool
}

// NewPublishService wires the orchestrator. store may be nil when no
// object storage is configured; featured images are then skipped.
func NewPublishService(
	articles content.Repository,
	sites site.Service,
	gateway wordpress.Gateway,
	store publish.ImageStore,
	processor publish.ImageProcessor,
	repo publish.Repository,
) publish.Service {
	return &publishService{
		articles:  articles,
		sites:     sites,
		gateway:   gateway,
		store:     store,
		processor: processor,
		repo:      repo,
		inflight:  make(map[string]bool),
	}
}

func (s *publishService) Publish(ctx context.Context, articleID string, req publish.PublishRequest) (*publish.Result, error) {
	return s.run(ctx, articleID, req, nil)
}

func (s *publishService) Schedule(ctx context.Context, articleID string, req publish.ScheduleRequest) (*publish.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	when, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, publish.ErrInvalidDate
	}
	when = when.UTC()
	if !when.After(time.Now().UTC()) {
		return nil, publish.ErrDateNotFuture
	}
	return s.run(ctx, articleID, req.PublishRequest, &when)
}

func (s *publishService) ListScheduled(ctx context.Context) ([]publish.ScheduledPost, error) {
	return s.repo.GetScheduledPosts(ctx)
}

// run is the shared publish/schedule path. scheduledFor nil means
// immediate publication.
func (s *publishService) run(ctx context.Context, articleID string, req publish.PublishRequest, scheduledFor *time.Time) (*publish.Result, error) {
	// A second attempt while one runs is rejected, not joined: the
	// caller must see that their request did nothing.
	if !s.acquire(articleID) {
		return nil, publish.ErrPublishInFlight
	}
	defer s.release(articleID)

	article, err := s.getArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.Published() {
		return nil, publish.ErrAlreadyPublished
	}

	// Selections left empty fall back to what was picked when the idea
	// was created; an explicit request always wins.
	s.applyIdeaDefaults(ctx, article, &req)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	target, err := s.sites.GetSite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if target.Credentials().Empty() {
		return nil, site.ErrMissingCredentials
	}

	result := &publish.Result{
		ArticleID: article.ID,
		SiteID:    target.ID,
	}

	payload := wordpress.PostPayload{
		Title:      article.Title,
		Content:    publish.PrepareContent(article.Content),
		Excerpt:    publish.Excerpt(article.Content, 150),
		Status:     "publish",
		Categories: toIntIDs(req.CategoryIDs),
		Tags:       tagIDsForPayload(req.TagIDs),
	}
	if req.AuthorID != "" {
		if author, err := strconv.Atoi(req.AuthorID); err == nil {
			payload.Author = author
		}
	}
	if scheduledFor != nil {
		payload.Status = "future"
		payload.DateGMT = scheduledFor.Format(dateGMTLayout)
	}

	// Featured image is best effort: a failed upload never blocks the
	// post itself.
	if req.FeaturedImageKey != "" {
		mediaID, imgErr := s.uploadFeaturedImage(ctx, target, req.FeaturedImageKey)
		if imgErr != nil {
			log.Warn().Err(imgErr).
				Str("article_id", article.ID).
				Str("image_key", req.FeaturedImageKey).
				Msg("featured image upload failed, publishing without it")
			result.ImageError = imgErr.Error()
		} else {
			payload.FeaturedMedia = mediaID
		}
	}

	post, err := s.gateway.CreatePost(ctx, target.URL, target.Credentials(), payload)
	if err != nil {
		return nil, err
	}

	result.PostID = post.ID
	result.URL = post.Link
	result.Status = payload.Status

	record := &content.PublishRecord{
		SiteID: target.ID,
		PostID: post.ID,
		URL:    post.Link,
	}
	if scheduledFor != nil {
		record.ScheduledFor = scheduledFor
		result.ScheduledFor = scheduledFor
		if err := s.recordScheduledPost(ctx, article.ID, target.ID, post, *scheduledFor); err != nil {
			log.Error().Err(err).Str("article_id", article.ID).Msg("failed to record scheduled post")
		}
	} else {
		now := time.Now().UTC()
		record.PublishedAt = &now
		result.PublishedAt = &now
	}

	if err := s.stampArticle(ctx, article.ID, record); err != nil {
		// The post exists upstream; surface the stamping failure
		// rather than pretending nothing happened.
		return nil, fmt.Errorf("post %d created but article update failed: %w", post.ID, err)
	}

	log.Info().
		Str("article_id", article.ID).
		Str("site_id", target.ID).
		Int("post_id", post.ID).
		Str("status", payload.Status).
		Msg("article sent to wordpress")
	return result, nil
}

func (s *publishService) uploadFeaturedImage(ctx context.Context, target *site.Site, key string) (int, error) {
	if s.store == nil || s.processor == nil {
		return 0, publish.ErrStorageDisabled
	}

	data, err := s.store.Download(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("download staged image: %w", err)
	}
	if err := s.processor.ValidateImage(data); err != nil {
		return 0, err
	}

	prepared, contentType, err := s.processor.PrepareFeaturedImage(data)
	if err != nil {
		return 0, err
	}

	filename := path.Base(key)
	if path.Ext(filename) != ".jpg" && path.Ext(filename) != ".jpeg" {
		filename += ".jpg"
	}

	media, err := s.gateway.UploadMedia(ctx, target.URL, target.Credentials(), filename, contentType, prepared)
	if err != nil {
		return 0, err
	}
	return media.ID, nil
}

// applyIdeaDefaults fills request fields the caller left empty from the
// article's target site and the selections stored on its idea.
func (s *publishService) applyIdeaDefaults(ctx context.Context, article *content.Article, req *publish.PublishRequest) {
	if req.SiteID == "" {
		req.SiteID = article.SiteID
	}
	if article.IdeaID == "" {
		return
	}

	ideas, err := s.articles.GetIdeas(ctx)
	if err != nil {
		log.Warn().Err(err).Str("idea_id", article.IdeaID).Msg("could not load idea defaults")
		return
	}
	for i := range ideas {
		if ideas[i].ID != article.IdeaID {
			continue
		}
		if req.SiteID == "" {
			req.SiteID = ideas[i].SiteID
		}
		wp := ideas[i].WordPress
		if wp == nil {
			return
		}
		if req.AuthorID == "" {
			req.AuthorID = wp.AuthorID
		}
		if len(req.CategoryIDs) == 0 {
			req.CategoryIDs = wp.CategoryIDs
		}
		if len(req.TagIDs) == 0 {
			req.TagIDs = wp.TagIDs
		}
		return
	}
}

func (s *publishService) getArticle(ctx context.Context, id string) (*content.Article, error) {
	articles, err := s.articles.GetArticles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}
	return nil, content.ErrArticleNotFound
}

func (s *publishService) stampArticle(ctx context.Context, id string, record *content.PublishRecord) error {
	articles, err := s.articles.GetArticles(ctx)
	if err != nil {
		return err
	}
	for i := range articles {
		if articles[i].ID == id {
			articles[i].WordPress = record
			return s.articles.SaveArticles(ctx, articles)
		}
	}
	return content.ErrArticleNotFound
}

func (s *publishService) recordScheduledPost(ctx context.Context, articleID, siteID string, post *wordpress.Post, when time.Time) error {
	posts, err := s.repo.GetScheduledPosts(ctx)
	if err != nil {
		return err
	}
	posts = append(posts, publish.ScheduledPost{
		ArticleID:    articleID,
		SiteID:       siteID,
		PostID:       post.ID,
		URL:          post.Link,
		ScheduledFor: when,
		CreatedAt:    time.Now().UTC(),
	})
	return s.repo.SaveScheduledPosts(ctx, posts)
}

func (s *publishService) acquire(articleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[articleID] {
		return false
	}
	s.inflight[articleID] = true
	return true
}

func (s *publishService) release(articleID string) {
	s.mu.Lock()
	delete(s.inflight, articleID)
	s.mu.Unlock()
}

func toIntIDs(ids []string) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if n, err := strconv.Atoi(id); err == nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// tagIDsForPayload drops provisional ids that never got reconciled;
// WordPress would reject terms it has never issued.
func tagIDsForPayload(ids []string) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if site.IsProvisionalTagID(id) {
			log.Warn().Str("tag_id", id).Msg("skipping unreconciled provisional tag")
			continue
		}
		if n, err := strconv.Atoi(id); err == nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
