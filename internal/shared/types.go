package shared

// Task types for the asynq worker.
const (
	TypeRefreshStaleTaxonomy = "site:refresh_stale_taxonomy"
	TypeCleanupBackoff       = "site:cleanup_backoff"
)

// Queue names, highest priority first.
const (
	QueueSites   = "sites"
	QueueDefault = "default"
	QueueLow     = "low"
)

// RefreshStaleTaxonomyPayload configures one refresh sweep.
type RefreshStaleTaxonomyPayload struct {
	// MaxSites caps how many stale sites one run reloads.
	MaxSites int `json:"maxSites"`
}

// CleanupBackoffPayload configures one backoff-prune run.
type CleanupBackoffPayload struct{}
