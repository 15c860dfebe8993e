package site

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SyncRequest optionally carries an explicit registry snapshot. With no
// body the sync falls back to the host-owned registry key.
type SyncRequest struct {
	Sites []RegistrySite `json:"sites"`
}

// SiteResponse is the API view of a cached site. The application
// password never leaves the backend.
type SiteResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	URL          string             `json:"url"`
	Username     string             `json:"username"`
	Categories   []Category         `json:"categories"`
	Authors      []Author           `json:"authors"`
	Tags         []Tag              `json:"tags"`
	Status       ConnectivityStatus `json:"status"`
	Degraded     bool               `json:"degraded"`
	LastSyncedAt *string            `json:"lastSyncedAt,omitempty"`
}

func NewSiteResponse(s Site) SiteResponse {
	resp := SiteResponse{
		ID:         s.ID,
		Name:       s.Name,
		URL:        s.URL,
		Username:   s.Username,
		Categories: s.Categories,
		Authors:    s.Authors,
		Tags:       s.Tags,
		Status:     s.Status,
		Degraded:   s.Degraded,
	}
	if s.LastSyncedAt != nil {
		ts := s.LastSyncedAt.UTC().Format("2006-01-02T15:04:05Z")
		resp.LastSyncedAt = &ts
	}
	return resp
}

// CreateTagRequest names the tag to create on the remote site.
type CreateTagRequest struct {
	Name string `json:"name"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("tag name is required"),
			validation.Length(1, 100).Error("tag name must be between 1 and 100 characters"),
		),
	)
}
