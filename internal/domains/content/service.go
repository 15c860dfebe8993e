package content

import "context"

// GeneratedArticle is what the generation service hands back.
type GeneratedArticle struct {
	Title   string
	Content string
}

// Generator is the external article-generation service. It is a black
// box from this backend's point of view.
type Generator interface {
	Generate(ctx context.Context, idea Idea) (*GeneratedArticle, error)
}

// Service is the content pipeline: ideas in, articles out.
type Service interface {
	CreateIdea(ctx context.Context, req CreateIdeaRequest) (*Idea, error)
	ListIdeas(ctx context.Context) ([]Idea, error)
	GetIdea(ctx context.Context, id string) (*Idea, error)
	DeleteIdea(ctx context.Context, id string) error

	// ProduceArticle turns a pending idea into a finished article and
	// flips the idea to produced. One production per idea.
	ProduceArticle(ctx context.Context, ideaID string) (*Article, error)

	ListArticles(ctx context.Context) ([]Article, error)
	GetArticle(ctx context.Context, id string) (*Article, error)

	// Usage reads quota limits and current counts at call time.
	Usage(ctx context.Context) (*PlanUsage, error)
}
