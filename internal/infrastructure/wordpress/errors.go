package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a gateway failure so callers can decide between
// surfacing, degrading, and retrying without string matching.
type Kind string

const (
	KindCredentials  Kind = "credentials"
	KindPermissions  Kind = "permissions"
	KindBadRequest   Kind = "bad_request"
	KindServerError  Kind = "server_error"
	KindTimeout      Kind = "timeout"
	KindConnectivity Kind = "connectivity"
	KindBlocked      Kind = "blocked"
	KindCanceled     Kind = "canceled"
)

// APIError is the structured error returned by every gateway call.
type APIError struct {
	Kind       Kind
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("wordpress %s: %s (status %d, %s)", e.Kind, e.Message, e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("wordpress %s: %s (%s)", e.Kind, e.Message, e.Endpoint)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind, or "" when err is not a gateway error.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsRetryable reports whether the failure class is worth retrying later.
// Credential, permission, and blocked failures need operator action first.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindTimeout, KindConnectivity, KindServerError:
		return true
	default:
		return false
	}
}

// HTTPStatus maps a failure kind onto the status the API should answer with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindCredentials:
		return http.StatusUnauthorized
	case KindPermissions, KindBlocked:
		return http.StatusForbidden
	case KindBadRequest:
		return http.StatusBadRequest
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindConnectivity, KindServerError:
		return http.StatusBadGateway
	case KindCanceled:
		// Client closed request, the nginx convention.
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage is the operator-facing description per failure kind.
func UserMessage(kind Kind) string {
	switch kind {
	case KindCredentials:
		return "WordPress rejected the credentials. Check the username and application password."
	case KindPermissions:
		return "The WordPress user lacks permission for this operation."
	case KindBadRequest:
		return "WordPress rejected the request as invalid."
	case KindServerError:
		return "The WordPress site returned a server error."
	case KindTimeout:
		return "The WordPress site took too long to respond."
	case KindConnectivity:
		return "Could not reach the WordPress site."
	case KindBlocked:
		return "The request was blocked, likely by a security plugin or CORS policy on the site."
	case KindCanceled:
		return "The request was canceled before the site answered."
	default:
		return "Unexpected WordPress error."
	}
}

// wpErrorBody is WordPress's standard JSON error envelope.
type wpErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classifyResponse turns a non-2xx response into a typed error.
// A 4xx/5xx whose body is not the JSON error envelope is treated as
// blocked: security plugins answer with HTML challenge pages.
func classifyResponse(status int, endpoint string, body []byte) *APIError {
	var wpErr wpErrorBody
	jsonBody := json.Unmarshal(body, &wpErr) == nil && wpErr.Code != ""

	message := wpErr.Message
	if message == "" {
		message = http.StatusText(status)
	}

	apiErr := &APIError{
		StatusCode: status,
		Endpoint:   endpoint,
		Message:    message,
	}

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Kind = KindCredentials
	case status >= 500:
		apiErr.Kind = KindServerError
	case !jsonBody:
		apiErr.Kind = KindBlocked
	case status == http.StatusForbidden:
		apiErr.Kind = KindPermissions
	default:
		apiErr.Kind = KindBadRequest
	}
	return apiErr
}

// classifyTransport turns a request/dial failure into a typed error.
func classifyTransport(err error, endpoint string) *APIError {
	apiErr := &APIError{
		Endpoint: endpoint,
		Message:  err.Error(),
		Err:      err,
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		apiErr.Kind = KindTimeout
	case errors.Is(err, context.Canceled):
		// The caller gave up, not the site. Keeping this apart from
		// timeout stops cancellations from marking sites unreachable.
		apiErr.Kind = KindCanceled
	case errors.As(err, &netErr) && netErr.Timeout():
		apiErr.Kind = KindTimeout
	default:
		apiErr.Kind = KindConnectivity
	}
	return apiErr
}
