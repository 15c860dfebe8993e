package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pressroom-backend/internal/config"
	"pressroom-backend/internal/domains/content"
)

type contentService struct {
	repo      content.Repository
	generator content.Generator
	plan      config.PlanConfig
}

func NewContentService(repo content.Repository, generator content.Generator, plan config.PlanConfig) content.Service {
	return &contentService{
		repo:      repo,
		generator: generator,
		plan:      plan,
	}
}

func (s *contentService) CreateIdea(ctx context.Context, req content.CreateIdeaRequest) (*content.Idea, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ideas, err := s.repo.GetIdeas(ctx)
	if err != nil {
		return nil, err
	}

	// Quota is a pure read against the current count; nothing is
	// reserved or cached.
	if s.plan.IdeaLimit > 0 && countActiveIdeas(ideas) >= s.plan.IdeaLimit {
		return nil, content.ErrIdeaQuotaExceeded
	}

	now := time.Now().UTC()
	idea := content.Idea{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Description:      req.Description,
		Keywords:         req.Keywords,
		Category:         req.Category,
		Tags:             req.Tags,
		SiteID:           req.SiteID,
		WordPress:        req.WordPress,
		CTA:              req.CTA,
		GenerationParams: req.GenerationParams,
		Status:           content.IdeaStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	ideas = append(ideas, idea)
	if err := s.repo.SaveIdeas(ctx, ideas); err != nil {
		return nil, err
	}

	log.Info().Str("idea_id", idea.ID).Msg("idea created")
	return &idea, nil
}

func (s *contentService) ListIdeas(ctx context.Context) ([]content.Idea, error) {
	ideas, err := s.repo.GetIdeas(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]content.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if idea.Status != content.IdeaStatusDeleted {
			visible = append(visible, idea)
		}
	}
	return visible, nil
}

func (s *contentService) GetIdea(ctx context.Context, id string) (*content.Idea, error) {
	ideas, err := s.repo.GetIdeas(ctx)
	if err != nil {
		return nil, err
	}

	for i := range ideas {
		if ideas[i].ID == id && ideas[i].Status != content.IdeaStatusDeleted {
			return &ideas[i], nil
		}
	}
	return nil, content.ErrIdeaNotFound
}

// DeleteIdea is a soft delete: the idea flips to the deleted status,
// gets a deletion stamp, and disappears from listings. Deleting a
// produced idea leaves its article untouched; the article keeps its
// IdeaID as a dangling reference.
func (s *contentService) DeleteIdea(ctx context.Context, id string) error {
	ideas, err := s.repo.GetIdeas(ctx)
	if err != nil {
		return err
	}

	for i := range ideas {
		if ideas[i].ID != id || ideas[i].Status == content.IdeaStatusDeleted {
			continue
		}

		now := time.Now().UTC()
		ideas[i].Status = content.IdeaStatusDeleted
		ideas[i].DeletedAt = &now
		ideas[i].UpdatedAt = now
		return s.repo.SaveIdeas(ctx, ideas)
	}
	return content.ErrIdeaNotFound
}

func (s *contentService) ProduceArticle(ctx context.Context, ideaID string) (*content.Article, error) {
	ideas, err := s.repo.GetIdeas(ctx)
	if err != nil {
		return nil, err
	}

	ideaIdx := -1
	for i := range ideas {
		if ideas[i].ID == ideaID {
			ideaIdx = i
			break
		}
	}
	if ideaIdx < 0 || ideas[ideaIdx].Status == content.IdeaStatusDeleted {
		return nil, content.ErrIdeaNotFound
	}
	if ideas[ideaIdx].Status == content.IdeaStatusProduced {
		return nil, content.ErrIdeaAlreadyProduced
	}
	if ideas[ideaIdx].Status != content.IdeaStatusPending {
		return nil, content.ErrIdeaNotPending
	}

	articles, err := s.repo.GetArticles(ctx)
	if err != nil {
		return nil, err
	}
	if s.plan.ArticleLimit > 0 && len(articles) >= s.plan.ArticleLimit {
		return nil, content.ErrArticleQuotaExceeded
	}

	generated, err := s.generator.Generate(ctx, ideas[ideaIdx])
	if err != nil {
		log.Error().Err(err).Str("idea_id", ideaID).Msg("article generation failed")
		return nil, fmt.Errorf("%w: %v", content.ErrGenerationFailed, err)
	}

	article := content.Article{
		ID:        uuid.NewString(),
		IdeaID:    ideaID,
		SiteID:    ideas[ideaIdx].SiteID,
		Title:     generated.Title,
		Content:   generated.Content,
		Status:    content.ArticleStatusCompleted,
		CreatedAt: time.Now().UTC(),
	}

	articles = append(articles, article)
	if err := s.repo.SaveArticles(ctx, articles); err != nil {
		return nil, err
	}

	ideas[ideaIdx].Status = content.IdeaStatusProduced
	ideas[ideaIdx].UpdatedAt = article.CreatedAt
	if err := s.repo.SaveIdeas(ctx, ideas); err != nil {
		return nil, err
	}

	log.Info().
		Str("idea_id", ideaID).
		Str("article_id", article.ID).
		Msg("article produced")
	return &article, nil
}

func (s *contentService) ListArticles(ctx context.Context) ([]content.Article, error) {
	return s.repo.GetArticles(ctx)
}

func (s *contentService) GetArticle(ctx context.Context, id string) (*content.Article, error) {
	articles, err := s.repo.GetArticles(ctx)
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

func (s *contentService) Usage(ctx context.Context) (*content.PlanUsage, error) {
	ideas, err := s.repo.GetIdeas(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := s.repo.GetArticles(ctx)
	if err != nil {
		return nil, err
	}

	return &content.PlanUsage{
		Tier:         s.plan.Tier,
		IdeaCount:    countActiveIdeas(ideas),
		IdeaLimit:    s.plan.IdeaLimit,
		ArticleCount: len(articles),
		ArticleLimit: s.plan.ArticleLimit,
	}, nil
}

func countActiveIdeas(ideas []content.Idea) int {
	n := 0
	for _, idea := range ideas {
		if idea.Status != content.IdeaStatusDeleted {
			n++
		}
	}
	return n
}
