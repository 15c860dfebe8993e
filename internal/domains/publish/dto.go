package publish

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PublishRequest selects where and how an article goes out. Taxonomy
// ids are canonical strings, matching the cached site taxonomy. Fields
// left empty fall back to the selections stored on the article's idea,
// so Validate runs after those defaults are applied.
type PublishRequest struct {
	SiteID           string   `json:"siteId"`
	CategoryIDs      []string `json:"categoryIds"`
	TagIDs           []string `json:"tagIds"`
	AuthorID         string   `json:"authorId"`
	FeaturedImageKey string   `json:"featuredImageKey"`
}

func (r PublishRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SiteID, validation.Required.Error("siteId is required")),
	)
}

// ScheduleRequest adds the future publication date, RFC 3339,
// interpreted in UTC.
type ScheduleRequest struct {
	PublishRequest
	Date string `json:"date"`
}

// Validate only covers the date here; the embedded request is checked
// later with idea defaults in place.
func (r ScheduleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required.Error("date is required")),
	)
}
