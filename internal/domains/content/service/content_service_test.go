package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom-backend/internal/config"
	"pressroom-backend/internal/domains/content"
	"pressroom-backend/internal/domains/content/repository"
	"pressroom-backend/pkg/cache"
)

type fakeGenerator struct {
	result *content.GeneratedArticle
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, idea content.Idea) (*content.GeneratedArticle, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &content.GeneratedArticle{
		Title:   idea.Title,
		Content: "# " + idea.Title + "\n\nGenerated body.",
	}, nil
}

func newTestService(t *testing.T, gen *fakeGenerator, plan config.PlanConfig) (content.Service, content.Repository) {
	t.Helper()
	repo := repository.NewStoreRepository(cache.NewMemoryCache())
	return NewContentService(repo, gen, plan), repo
}

func freePlan(ideaLimit, articleLimit int) config.PlanConfig {
	return config.PlanConfig{Tier: "free", IdeaLimit: ideaLimit, ArticleLimit: articleLimit}
}

func createIdea(t *testing.T, svc content.Service, title string) *content.Idea {
	t.Helper()
	idea, err := svc.CreateIdea(context.Background(), content.CreateIdeaRequest{Title: title})
	require.NoError(t, err)
	return idea
}

func TestCreateIdea(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, freePlan(5, 5))

	idea := createIdea(t, svc, "How to brew coffee")
	assert.NotEmpty(t, idea.ID)
	assert.Equal(t, content.IdeaStatusPending, idea.Status)

	ideas, err := svc.ListIdeas(context.Background())
	require.NoError(t, err)
	assert.Len(t, ideas, 1)
}

func TestCreateIdeaValidation(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, freePlan(5, 5))

	_, err := svc.CreateIdea(context.Background(), content.CreateIdeaRequest{Title: ""})
	require.Error(t, err)

	_, err = svc.CreateIdea(context.Background(), content.CreateIdeaRequest{Title: "ab"})
	require.Error(t, err)
}

func TestIdeaQuotaBlocksCreationAtLimit(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, freePlan(2, 5))

	createIdea(t, svc, "First idea")
	createIdea(t, svc, "Second idea")

	_, err := svc.CreateIdea(context.Background(), content.CreateIdeaRequest{Title: "Third idea"})
	assert.ErrorIs(t, err, content.ErrIdeaQuotaExceeded)
}

func TestDeletedIdeasFreeQuota(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, freePlan(1, 5))

	idea := createIdea(t, svc, "Short-lived idea")
	require.NoError(t, svc.DeleteIdea(context.Background(), idea.ID))

	// Quota counts live ideas only, so a new one fits.
	createIdea(t, svc, "Replacement idea")
}

func TestUnlimitedPlanSkipsQuota(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, config.PlanConfig{Tier: "pro"})

	for i := 0; i < 10; i++ {
		createIdea(t, svc, "Idea number with some padding")
	}

	ideas, err := svc.ListIdeas(context.Background())
	require.NoError(t, err)
	assert.Len(t, ideas, 10)
}

func TestDeleteIdeaIsSoft(t *testing.T) {
	svc, repo := newTestService(t, &fakeGenerator{}, freePlan(5, 5))
	idea := createIdea(t, svc, "Disposable idea")

	require.NoError(t, svc.DeleteIdea(context.Background(), idea.ID))

	_, err := svc.GetIdea(context.Background(), idea.ID)
	assert.ErrorIs(t, err, content.ErrIdeaNotFound)

	// Still in the store, flagged deleted with a deletion stamp.
	stored, err := repo.GetIdeas(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, content.IdeaStatusDeleted, stored[0].Status)
	assert.NotNil(t, stored[0].DeletedAt)
}

func TestDeleteProducedIdeaKeepsArticle(t *testing.T) {
	svc, repo := newTestService(t, &fakeGenerator{}, freePlan(5, 5))
	idea := createIdea(t, svc, "Produced idea")

	article, err := svc.ProduceArticle(context.Background(), idea.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteIdea(context.Background(), idea.ID))

	// The idea is gone from listings but the article survives.
	_, err = svc.GetIdea(context.Background(), idea.ID)
	assert.ErrorIs(t, err, content.ErrIdeaNotFound)

	got, err := svc.GetArticle(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, idea.ID, got.IdeaID)

	stored, err := repo.GetIdeas(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, content.IdeaStatusDeleted, stored[0].Status)
	assert.NotNil(t, stored[0].DeletedAt)
}

func TestCreateIdeaCarriesPublicationDefaults(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, freePlan(5, 5))

	idea, err := svc.CreateIdea(context.Background(), content.CreateIdeaRequest{
		Title:    "Espresso deep dive",
		Category: "News",
		Tags:     []string{"coffee"},
		SiteID:   "3",
		CTA:      "Subscribe for more",
		WordPress: &content.IdeaWordPressData{
			AuthorID:    "5",
			CategoryIDs: []string{"2"},
			TagIDs:      []string{"9"},
			TagSlugs:    []string{"coffee"},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetIdea(context.Background(), idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", got.SiteID)
	assert.Equal(t, "News", got.Category)
	assert.Equal(t, "Subscribe for more", got.CTA)
	require.NotNil(t, got.WordPress)
	assert.Equal(t, []string{"2"}, got.WordPress.CategoryIDs)

	// Production carries the target site onto the article.
	article, err := svc.ProduceArticle(context.Background(), idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", article.SiteID)
}

func TestProduceArticle(t *testing.T) {
	gen := &fakeGenerator{result: &content.GeneratedArticle{Title: "Final title", Content: "<p>Body</p>"}}
	svc, _ := newTestService(t, gen, freePlan(5, 5))
	idea := createIdea(t, svc, "Raw idea")

	article, err := svc.ProduceArticle(context.Background(), idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final title", article.Title)
	assert.Equal(t, content.ArticleStatusCompleted, article.Status)
	assert.Equal(t, idea.ID, article.IdeaID)
	assert.False(t, article.Published())

	got, err := svc.GetIdea(context.Background(), idea.ID)
	require.NoError(t, err)
	assert.Equal(t, content.IdeaStatusProduced, got.Status)
}

func TestProduceArticleTwiceRejected(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen, freePlan(5, 5))
	idea := createIdea(t, svc, "One-shot idea")

	_, err := svc.ProduceArticle(context.Background(), idea.ID)
	require.NoError(t, err)

	_, err = svc.ProduceArticle(context.Background(), idea.ID)
	assert.ErrorIs(t, err, content.ErrIdeaAlreadyProduced)
	assert.Equal(t, 1, gen.calls)
}

func TestArticleQuotaBlocksProduction(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, freePlan(5, 1))

	first := createIdea(t, svc, "First article idea")
	second := createIdea(t, svc, "Second article idea")

	_, err := svc.ProduceArticle(context.Background(), first.ID)
	require.NoError(t, err)

	_, err = svc.ProduceArticle(context.Background(), second.ID)
	assert.ErrorIs(t, err, content.ErrArticleQuotaExceeded)

	// The idea stays pending when production is blocked.
	got, err := svc.GetIdea(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, content.IdeaStatusPending, got.Status)
}

func TestGenerationFailureLeavesIdeaPending(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model overloaded")}
	svc, _ := newTestService(t, gen, freePlan(5, 5))
	idea := createIdea(t, svc, "Unlucky idea")

	_, err := svc.ProduceArticle(context.Background(), idea.ID)
	assert.ErrorIs(t, err, content.ErrGenerationFailed)

	got, err := svc.GetIdea(context.Background(), idea.ID)
	require.NoError(t, err)
	assert.Equal(t, content.IdeaStatusPending, got.Status)

	articles, err := svc.ListArticles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestUsageCountsAtCallTime(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{}, freePlan(5, 5))

	idea := createIdea(t, svc, "Tracked idea")
	_, err := svc.ProduceArticle(context.Background(), idea.ID)
	require.NoError(t, err)

	usage, err := svc.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, usage.IdeaCount)
	assert.Equal(t, 1, usage.ArticleCount)
	assert.Equal(t, 5, usage.IdeaLimit)
	assert.Equal(t, "free", usage.Tier)
}
