package main

import (
	"github.com/hibiken/asynq"

	sitejob "pressroom-backend/internal/domains/site/job"
	"pressroom-backend/internal/shared"
	"pressroom-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	refreshStaleTaxonomy *sitejob.RefreshStaleTaxonomyHandler
	cleanupBackoff       *sitejob.CleanupBackoffHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		refreshStaleTaxonomy: sitejob.NewRefreshStaleTaxonomyHandler(
			c.SiteService,
			c.Config.Jobs.TaxonomyStaleAfter,
		),
		cleanupBackoff: sitejob.NewCleanupBackoffHandler(
			c.SiteService,
			c.Config.Jobs.BackoffWindow,
		),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeRefreshStaleTaxonomy, h.refreshStaleTaxonomy.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupBackoff, h.cleanupBackoff.ProcessTask)
}
