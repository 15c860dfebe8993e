package site

import (
	"errors"
	"net/http"
)

var (
	ErrSiteNotFound       = errors.New("site not found")
	ErrMissingCredentials = errors.New("site has no credentials configured")
	ErrEmptyRegistry      = errors.New("registry snapshot is empty")
	ErrSiteInBackoff      = errors.New("site is in connectivity backoff")
	ErrTagNameRequired    = errors.New("tag name is required")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrSiteNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmptyRegistry), errors.Is(err, ErrTagNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrSiteInBackoff):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrSiteNotFound):
		return "Site not found"
	case errors.Is(err, ErrMissingCredentials):
		return "The site has no username or application password configured"
	case errors.Is(err, ErrEmptyRegistry):
		return "The registry snapshot contains no sites"
	case errors.Is(err, ErrSiteInBackoff):
		return "The site failed a recent connectivity check, try again later"
	case errors.Is(err, ErrTagNameRequired):
		return "Tag name is required"
	default:
		return "Internal server error"
	}
}
