package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pressroom-backend/internal/config"
	"pressroom-backend/internal/domains/content"
)

// HTTPGenerator calls the external article-generation service. The
// service itself is a black box: titles and body text go in, finished
// copy comes out.
type HTTPGenerator struct {
	url        string
	httpClient *http.Client
}

func NewHTTPGenerator(cfg config.GeneratorConfig) *HTTPGenerator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPGenerator{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ content.Generator = (*HTTPGenerator)(nil)

type generateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

type generateResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, idea content.Idea) (*content.GeneratedArticle, error) {
	if g.url == "" {
		return nil, fmt.Errorf("generator URL is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Title:       idea.Title,
		Description: idea.Description,
		Keywords:    idea.Keywords,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call generation service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation response: %w", err)
	}
	if result.Content == "" {
		return nil, fmt.Errorf("generation service returned empty content")
	}

	title := result.Title
	if title == "" {
		title = idea.Title
	}

	return &content.GeneratedArticle{Title: title, Content: result.Content}, nil
}
