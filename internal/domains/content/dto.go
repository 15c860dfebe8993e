package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateIdeaRequest struct {
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Keywords         []string               `json:"keywords"`
	Category         string                 `json:"categoria"`
	Tags             []string               `json:"tags"`
	SiteID           string                 `json:"siteId"`
	WordPress        *IdeaWordPressData     `json:"wordpressData"`
	CTA              string                 `json:"cta"`
	GenerationParams map[string]interface{} `json:"generationParams"`
}

func (r CreateIdeaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 200).Error("title must be between 3 and 200 characters"),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2000).Error("description must be at most 2000 characters"),
		),
		validation.Field(&r.Keywords,
			validation.Length(0, 20).Error("at most 20 keywords"),
		),
		validation.Field(&r.Tags,
			validation.Length(0, 20).Error("at most 20 tags"),
		),
	)
}
