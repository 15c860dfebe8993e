package publish

import (
	"errors"
	"net/http"
)

var (
	ErrAlreadyPublished = errors.New("article was already published or scheduled")
	ErrPublishInFlight  = errors.New("a publication for this article is already running")
	ErrInvalidDate      = errors.New("schedule date is invalid")
	ErrDateNotFuture    = errors.New("schedule date must be in the future")
	ErrStorageDisabled  = errors.New("media storage is not configured")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrAlreadyPublished), errors.Is(err, ErrPublishInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrDateNotFuture):
		return http.StatusBadRequest
	case errors.Is(err, ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyPublished):
		return "This article was already published or scheduled"
	case errors.Is(err, ErrPublishInFlight):
		return "A publication for this article is already in progress"
	case errors.Is(err, ErrInvalidDate):
		return "The schedule date could not be parsed, use RFC 3339"
	case errors.Is(err, ErrDateNotFuture):
		return "The schedule date must be strictly in the future"
	case errors.Is(err, ErrStorageDisabled):
		return "Media storage is not configured on this deployment"
	default:
		return "Internal server error"
	}
}
