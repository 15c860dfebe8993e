package content

import (
	"errors"
	"net/http"
)

var (
	ErrIdeaNotFound         = errors.New("idea not found")
	ErrIdeaNotPending       = errors.New("idea is not pending")
	ErrIdeaAlreadyProduced  = errors.New("idea was already produced")
	ErrIdeaQuotaExceeded    = errors.New("idea quota exceeded for current plan")
	ErrArticleNotFound      = errors.New("article not found")
	ErrArticleQuotaExceeded = errors.New("article quota exceeded for current plan")
	ErrGenerationFailed     = errors.New("article generation failed")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrIdeaNotFound), errors.Is(err, ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrIdeaNotPending), errors.Is(err, ErrIdeaAlreadyProduced):
		return http.StatusConflict
	case errors.Is(err, ErrIdeaQuotaExceeded), errors.Is(err, ErrArticleQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrIdeaNotFound):
		return "Idea not found"
	case errors.Is(err, ErrIdeaNotPending):
		return "Only pending ideas can be used here"
	case errors.Is(err, ErrIdeaAlreadyProduced):
		return "This idea was already produced into an article"
	case errors.Is(err, ErrIdeaQuotaExceeded):
		return "Your plan's idea limit has been reached"
	case errors.Is(err, ErrArticleNotFound):
		return "Article not found"
	case errors.Is(err, ErrArticleQuotaExceeded):
		return "Your plan's article limit has been reached"
	case errors.Is(err, ErrGenerationFailed):
		return "The article generation service failed, try again later"
	default:
		return "Internal server error"
	}
}
