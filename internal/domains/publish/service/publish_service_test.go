package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom-backend/internal/domains/content"
	contentrepo "pressroom-backend/internal/domains/content/repository"
	"pressroom-backend/internal/domains/publish"
	publishrepo "pressroom-backend/internal/domains/publish/repository"
	"pressroom-backend/internal/domains/site"
	siterepo "pressroom-backend/internal/domains/site/repository"
	sitesvc "pressroom-backend/internal/domains/site/service"
	"pressroom-backend/internal/infrastructure/wordpress"
	"pressroom-backend/pkg/cache"
)

type stubGateway struct {
	mu          sync.Mutex
	post        *wordpress.Post
	postErr     error
	lastPayload wordpress.PostPayload
	media       *wordpress.Media
	mediaErr    error
	blockPost   chan struct{}
	postCalls   int
}

func (g *stubGateway) ListCategories(ctx context.Context, baseURL string, creds wordpress.Credentials) ([]wordpress.Category, error) {
	return nil, nil
}

func (g *stubGateway) ListAuthors(ctx context.Context, baseURL string, creds wordpress.Credentials) ([]wordpress.Author, error) {
	return nil, nil
}

func (g *stubGateway) ListTags(ctx context.Context, baseURL string, creds wordpress.Credentials) ([]wordpress.Tag, error) {
	return nil, nil
}

func (g *stubGateway) CreateTag(ctx context.Context, baseURL string, creds wordpress.Credentials, name string) (*wordpress.Tag, error) {
	return nil, nil
}

func (g *stubGateway) UploadMedia(ctx context.Context, baseURL string, creds wordpress.Credentials, filename, contentType string, data []byte) (*wordpress.Media, error) {
	if g.mediaErr != nil {
		return nil, g.mediaErr
	}
	return g.media, nil
}

func (g *stubGateway) CreatePost(ctx context.Context, baseURL string, creds wordpress.Credentials, payload wordpress.PostPayload) (*wordpress.Post, error) {
	if g.blockPost != nil {
		<-g.blockPost
	}
	g.mu.Lock()
	g.postCalls++
	g.lastPayload = payload
	g.mu.Unlock()
	if g.postErr != nil {
		return nil, g.postErr
	}
	return g.post, nil
}

func (g *stubGateway) CheckConnectivity(ctx context.Context, baseURL string, creds wordpress.Credentials) error {
	return nil
}

type stubStore struct {
	data map[string][]byte
	err  error
}

func (s *stubStore) Download(ctx context.Context, key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[key], nil
}

type stubProcessor struct{}

func (stubProcessor) ValidateImage(data []byte) error {
	return nil
}

func (stubProcessor) PrepareFeaturedImage(data []byte) ([]byte, string, error) {
	return data, "image/jpeg", nil
}

type harness struct {
	svc         publish.Service
	gateway     *stubGateway
	contentRepo content.Repository
	publishRepo publish.Repository
}

func newHarness(t *testing.T, gw *stubGateway, store publish.ImageStore) *harness {
	t.Helper()

	kv := cache.NewMemoryCache()
	contentRepo := contentrepo.NewStoreRepository(kv)
	siteRepo := siterepo.NewStoreRepository(kv)
	publishRepo := publishrepo.NewStoreRepository(kv)

	require.NoError(t, siteRepo.SaveSites(context.Background(), []site.Site{{
		ID:          "3",
		Name:        "Main Blog",
		URL:         "https://example.com",
		Username:    "editor",
		AppPassword: "pw",
	}}))
	require.NoError(t, contentRepo.SaveIdeas(context.Background(), []content.Idea{{
		ID:     "idea-1",
		Title:  "A finished piece",
		SiteID: "3",
		Status: content.IdeaStatusProduced,
		WordPress: &content.IdeaWordPressData{
			AuthorID:    "5",
			CategoryIDs: []string{"2"},
			TagIDs:      []string{"9"},
		},
	}}))
	require.NoError(t, contentRepo.SaveArticles(context.Background(), []content.Article{{
		ID:      "art-1",
		IdeaID:  "idea-1",
		SiteID:  "3",
		Title:   "A finished piece",
		Content: "# Heading\n\nBody text with **bold** parts.",
		Status:  content.ArticleStatusCompleted,
	}}))

	sites := sitesvc.NewSiteService(siteRepo, gw, 30*time.Minute)
	svc := NewPublishService(contentRepo, sites, gw, store, stubProcessor{}, publishRepo)

	return &harness{
		svc:         svc,
		gateway:     gw,
		contentRepo: contentRepo,
		publishRepo: publishRepo,
	}
}

func okGateway() *stubGateway {
	return &stubGateway{
		post:  &wordpress.Post{ID: 512, Link: "https://example.com/?p=512", Status: "publish"},
		media: &wordpress.Media{ID: 99, SourceURL: "https://example.com/cover.jpg"},
	}
}

func TestPublishSuccess(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	result, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{
		SiteID:      "3",
		CategoryIDs: []string{"2", "7"},
		AuthorID:    "5",
	})
	require.NoError(t, err)

	assert.Equal(t, 512, result.PostID)
	assert.Equal(t, "publish", result.Status)
	require.NotNil(t, result.PublishedAt)
	assert.Nil(t, result.ScheduledFor)

	payload := h.gateway.lastPayload
	assert.Equal(t, "A finished piece", payload.Title)
	assert.Equal(t, []int{2, 7}, payload.Categories)
	assert.Equal(t, 5, payload.Author)
	assert.Contains(t, payload.Content, "<h1>Heading</h1>")
	assert.Contains(t, payload.Content, "<strong>bold</strong>")
	assert.NotEmpty(t, payload.Excerpt)
	assert.Empty(t, payload.DateGMT)

	articles, err := h.contentRepo.GetArticles(context.Background())
	require.NoError(t, err)
	require.NotNil(t, articles[0].WordPress)
	assert.Equal(t, 512, articles[0].WordPress.PostID)
	assert.NotNil(t, articles[0].WordPress.PublishedAt)
}

func TestPublishTwiceRejected(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	_, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{SiteID: "3"})
	require.NoError(t, err)

	_, err = h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{SiteID: "3"})
	assert.ErrorIs(t, err, publish.ErrAlreadyPublished)
	assert.Equal(t, 1, h.gateway.postCalls)
}

func TestPublishSurfacesCredentialError(t *testing.T) {
	gw := okGateway()
	gw.postErr = &wordpress.APIError{Kind: wordpress.KindCredentials, StatusCode: 401, Message: "invalid credentials"}
	h := newHarness(t, gw, nil)

	_, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{SiteID: "3"})
	require.Error(t, err)
	assert.Equal(t, wordpress.KindCredentials, wordpress.KindOf(err))

	// Nothing stamped on failure.
	articles, err := h.contentRepo.GetArticles(context.Background())
	require.NoError(t, err)
	assert.Nil(t, articles[0].WordPress)
}

func TestScheduleRejectsPastDate(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	_, err := h.svc.Schedule(context.Background(), "art-1", publish.ScheduleRequest{
		PublishRequest: publish.PublishRequest{SiteID: "3"},
		Date:           time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, publish.ErrDateNotFuture)
	assert.Equal(t, 0, h.gateway.postCalls)
}

func TestScheduleRejectsUnparseableDate(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	_, err := h.svc.Schedule(context.Background(), "art-1", publish.ScheduleRequest{
		PublishRequest: publish.PublishRequest{SiteID: "3"},
		Date:           "tomorrow at nine",
	})
	assert.ErrorIs(t, err, publish.ErrInvalidDate)
}

func TestScheduleSuccess(t *testing.T) {
	gw := okGateway()
	gw.post.Status = "future"
	h := newHarness(t, gw, nil)

	when := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	result, err := h.svc.Schedule(context.Background(), "art-1", publish.ScheduleRequest{
		PublishRequest: publish.PublishRequest{SiteID: "3"},
		Date:           when.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, "future", result.Status)
	assert.Nil(t, result.PublishedAt)
	require.NotNil(t, result.ScheduledFor)
	assert.True(t, result.ScheduledFor.Equal(when))

	payload := h.gateway.lastPayload
	assert.Equal(t, "future", payload.Status)
	assert.Equal(t, when.Format("2006-01-02T15:04:05"), payload.DateGMT)

	scheduled, err := h.publishRepo.GetScheduledPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, "art-1", scheduled[0].ArticleID)
	assert.Equal(t, 512, scheduled[0].PostID)

	articles, err := h.contentRepo.GetArticles(context.Background())
	require.NoError(t, err)
	require.NotNil(t, articles[0].WordPress)
	assert.Nil(t, articles[0].WordPress.PublishedAt)
	assert.NotNil(t, articles[0].WordPress.ScheduledFor)
}

func TestConcurrentPublishRejectedNotJoined(t *testing.T) {
	gw := okGateway()
	gw.blockPost = make(chan struct{})
	h := newHarness(t, gw, nil)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{SiteID: "3"})
		done <- err
	}()

	<-started
	time.Sleep(20 * time.Millisecond)

	_, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{SiteID: "3"})
	assert.ErrorIs(t, err, publish.ErrPublishInFlight)

	close(gw.blockPost)
	require.NoError(t, <-done)
}

func TestFeaturedImageFailureIsNonFatal(t *testing.T) {
	h := newHarness(t, okGateway(), &stubStore{err: errors.New("object not found")})

	result, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{
		SiteID:           "3",
		FeaturedImageKey: "staging/cover.png",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ImageError)
	assert.Equal(t, 512, result.PostID)
	assert.Zero(t, h.gateway.lastPayload.FeaturedMedia)
}

func TestFeaturedImageAttachedOnSuccess(t *testing.T) {
	store := &stubStore{data: map[string][]byte{"staging/cover.png": {0x89, 0x50}}}
	h := newHarness(t, okGateway(), store)

	result, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{
		SiteID:           "3",
		FeaturedImageKey: "staging/cover.png",
	})
	require.NoError(t, err)

	assert.Empty(t, result.ImageError)
	assert.Equal(t, 99, h.gateway.lastPayload.FeaturedMedia)
}

func TestProvisionalTagsNeverReachThePayload(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	provisional := "1756600000000"
	_, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{
		SiteID: "3",
		TagIDs: []string{"9", provisional, "12"},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{9, 12}, h.gateway.lastPayload.Tags)
}

func TestPublishFallsBackToIdeaSelections(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	// Empty request: site, author, categories, and tags all come from
	// the idea created for this article.
	result, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{})
	require.NoError(t, err)
	assert.Equal(t, "3", result.SiteID)

	payload := h.gateway.lastPayload
	assert.Equal(t, 5, payload.Author)
	assert.Equal(t, []int{2}, payload.Categories)
	assert.Equal(t, []int{9}, payload.Tags)
}

func TestPublishExplicitSelectionBeatsIdeaDefaults(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	_, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{
		SiteID:      "3",
		CategoryIDs: []string{"7"},
	})
	require.NoError(t, err)

	payload := h.gateway.lastPayload
	assert.Equal(t, []int{7}, payload.Categories)
	// Fields the request left empty still fall back.
	assert.Equal(t, 5, payload.Author)
}

func TestPublishWithoutAnySiteRejected(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	// An article whose idea never picked a site needs an explicit one.
	require.NoError(t, h.contentRepo.SaveArticles(context.Background(), []content.Article{{
		ID:      "art-2",
		Title:   "Orphan piece",
		Content: "Body",
		Status:  content.ArticleStatusCompleted,
	}}))

	_, err := h.svc.Publish(context.Background(), "art-2", publish.PublishRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "siteId")
	assert.Equal(t, 0, h.gateway.postCalls)
}

func TestPublishUnknownArticle(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	_, err := h.svc.Publish(context.Background(), "missing", publish.PublishRequest{SiteID: "3"})
	assert.ErrorIs(t, err, content.ErrArticleNotFound)
}

func TestPublishUnknownSite(t *testing.T) {
	h := newHarness(t, okGateway(), nil)

	_, err := h.svc.Publish(context.Background(), "art-1", publish.PublishRequest{SiteID: "404"})
	assert.ErrorIs(t, err, site.ErrSiteNotFound)
}
