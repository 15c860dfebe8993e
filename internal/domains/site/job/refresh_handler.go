package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"pressroom-backend/internal/domains/site"
	"pressroom-backend/internal/shared"
)

// RefreshStaleTaxonomyHandler reloads sites whose taxonomy has gone
// stale so publish-time category and author pickers stay accurate.
type RefreshStaleTaxonomyHandler struct {
	service    site.Service
	staleAfter time.Duration
}

func NewRefreshStaleTaxonomyHandler(service site.Service, staleAfter time.Duration) *RefreshStaleTaxonomyHandler {
	return &RefreshStaleTaxonomyHandler{service: service, staleAfter: staleAfter}
}

func (h *RefreshStaleTaxonomyHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.RefreshStaleTaxonomyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal refresh payload: %w", err)
	}

	refreshed, err := h.service.RefreshStale(ctx, h.staleAfter, payload.MaxSites)
	if err != nil {
		return fmt.Errorf("refresh stale taxonomy: %w", err)
	}

	log.Info().Int("refreshed", refreshed).Msg("stale taxonomy refresh completed")
	return nil
}

// CleanupBackoffHandler prunes expired connectivity backoff entries.
type CleanupBackoffHandler struct {
	service site.Service
	window  time.Duration
}

func NewCleanupBackoffHandler(service site.Service, window time.Duration) *CleanupBackoffHandler {
	return &CleanupBackoffHandler{service: service, window: window}
}

func (h *CleanupBackoffHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	removed, err := h.service.PruneBackoff(ctx, h.window)
	if err != nil {
		return fmt.Errorf("prune backoff entries: %w", err)
	}

	log.Info().Int("removed", removed).Msg("backoff cleanup completed")
	return nil
}
