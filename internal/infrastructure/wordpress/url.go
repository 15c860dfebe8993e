package wordpress

import (
	"net/url"
	"strings"
)

// NormalizeBaseURL canonicalizes an operator-entered site URL:
// whitespace and trailing slashes are stripped, a missing scheme
// defaults to https, and anything that is not an http(s) URL with a
// dotted hostname is rejected.
func NormalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimRight(trimmed, "/")
	if trimmed == "" {
		return "", badURL(raw, "empty URL")
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", badURL(raw, "unparseable URL")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", badURL(raw, "scheme must be http or https")
	}

	host := parsed.Hostname()
	if host == "" || !strings.Contains(host, ".") {
		return "", badURL(raw, "hostname must contain a dot")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.Fragment = ""
	parsed.RawQuery = ""

	return parsed.String(), nil
}

func badURL(raw, reason string) *APIError {
	return &APIError{
		Kind:     KindBadRequest,
		Endpoint: raw,
		Message:  "invalid site URL: " + reason,
	}
}
