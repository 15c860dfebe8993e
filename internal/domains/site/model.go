package site

import (
	"strconv"
	"time"

	"pressroom-backend/internal/infrastructure/wordpress"
)

// ConnectivityStatus classifies what the last contact with a site found.
type ConnectivityStatus string

const (
	StatusOK              ConnectivityStatus = "ok"
	StatusOutdated        ConnectivityStatus = "outdated"
	StatusCredentialError ConnectivityStatus = "credential_error"
	StatusPermissionError ConnectivityStatus = "permission_error"
	StatusBlocked         ConnectivityStatus = "blocked"
	StatusUnreachable     ConnectivityStatus = "unreachable"
	StatusUnknown         ConnectivityStatus = "unknown"
)

// TaxonomyStaleAfter is how old a taxonomy snapshot may get before a
// connectivity check reports the site as outdated. Outdated is not a
// failure, it is a recommendation to reload.
const TaxonomyStaleAfter = 48 * time.Hour

// Category and Author are cached taxonomy entries. Ids are canonical
// decimal strings regardless of how the source encoded them.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Provisional tag ids are millisecond timestamps, always above this
// floor. Real WordPress term ids never get near it.
const provisionalIDFloor = 1_000_000_000

// IsProvisionalTagID reports whether id was assigned locally while a
// createTag call was still in flight.
func IsProvisionalTagID(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	return err == nil && n > provisionalIDFloor
}

// Site is one cached registry entry plus its taxonomy snapshot.
type Site struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	URL          string             `json:"url"`
	Username     string             `json:"username"`
	AppPassword  string             `json:"appPassword"`
	Categories   []Category         `json:"categories"`
	Authors      []Author           `json:"authors"`
	Tags         []Tag              `json:"tags"`
	Status       ConnectivityStatus `json:"status"`
	Degraded     bool               `json:"degraded"`
	LastSyncedAt *time.Time         `json:"lastSyncedAt,omitempty"`
}

func (s *Site) Credentials() wordpress.Credentials {
	return wordpress.Credentials{Username: s.Username, AppPassword: s.AppPassword}
}

// HasTaxonomy reports whether the site carries any cached taxonomy
// worth protecting during a registry merge.
func (s *Site) HasTaxonomy() bool {
	return len(s.Categories) > 0 || len(s.Authors) > 0 || len(s.Tags) > 0
}

// RegistrySite is one entry of the externally owned registry snapshot.
// The id is left untyped because registry producers disagree on whether
// ids are strings or numbers.
type RegistrySite struct {
	ID          interface{} `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Username    string      `json:"username"`
	AppPassword string      `json:"appPassword"`
}

// InaccessibleEntry is a backoff record for a site that failed its last
// connectivity check.
type InaccessibleEntry struct {
	SiteID     string             `json:"siteId"`
	Status     ConnectivityStatus `json:"status"`
	RecordedAt time.Time          `json:"recordedAt"`
}

// ConnectivityReport is the result of an explicit connectivity check.
type ConnectivityReport struct {
	SiteID    string             `json:"siteId"`
	Status    ConnectivityStatus `json:"status"`
	Retryable bool               `json:"retryable"`
	Message   string             `json:"message"`
	CheckedAt time.Time          `json:"checkedAt"`
}

// Placeholder taxonomy used when a site's reads degrade. Every
// WordPress install has category 1 and user 1.
func PlaceholderCategories() []Category {
	return []Category{{ID: "1", Name: "uncategorized"}}
}

func PlaceholderAuthors() []Author {
	return []Author{{ID: "1", Name: "admin"}}
}
