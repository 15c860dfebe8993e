package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second

	apiBase = "/wp-json/wp/v2"
)

// Client is the HTTP implementation of Gateway. Timeouts are applied
// per call through the request context: reads are quick, post and media
// creation get the longer write timeout.
type Client struct {
	httpClient   *http.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewClient(readTimeout, writeTimeout time.Duration) *Client {
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Client{
		httpClient:   &http.Client{},
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (c *Client) ListCategories(ctx context.Context, baseURL string, creds Credentials) ([]Category, error) {
	endpoint := baseURL + apiBase + "/categories?per_page=100"
	var categories []Category
	if err := c.getJSON(ctx, endpoint, creds, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListAuthors(ctx context.Context, baseURL string, creds Credentials) ([]Author, error) {
	// context=edit lists every user the credentials can see, not just
	// ones with published posts.
	endpoint := baseURL + apiBase + "/users?per_page=100&context=edit"
	var authors []Author
	if err := c.getJSON(ctx, endpoint, creds, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (c *Client) ListTags(ctx context.Context, baseURL string, creds Credentials) ([]Tag, error) {
	endpoint := baseURL + apiBase + "/tags?per_page=100"
	var tags []Tag
	if err := c.getJSON(ctx, endpoint, creds, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, baseURL string, creds Credentials, name string) (*Tag, error) {
	endpoint := baseURL + apiBase + "/tags"

	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tag request: %w", err)
	}

	var tag Tag
	if err := c.doJSON(ctx, http.MethodPost, endpoint, creds, bytes.NewReader(body), "application/json", nil, c.writeTimeout, &tag); err != nil {
		return nil, err
	}

	log.Debug().Str("site", baseURL).Int("tag_id", tag.ID).Msg("created wordpress tag")
	return &tag, nil
}

func (c *Client) UploadMedia(ctx context.Context, baseURL string, creds Credentials, filename, contentType string, data []byte) (*Media, error) {
	endpoint := baseURL + apiBase + "/media"

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filename),
	}

	var media Media
	if err := c.doJSON(ctx, http.MethodPost, endpoint, creds, bytes.NewReader(data), contentType, headers, c.writeTimeout, &media); err != nil {
		return nil, err
	}

	log.Debug().Str("site", baseURL).Int("media_id", media.ID).Msg("uploaded wordpress media")
	return &media, nil
}

func (c *Client) CreatePost(ctx context.Context, baseURL string, creds Credentials, payload PostPayload) (*Post, error) {
	endpoint := baseURL + apiBase + "/posts"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post payload: %w", err)
	}

	var post Post
	if err := c.doJSON(ctx, http.MethodPost, endpoint, creds, bytes.NewReader(body), "application/json", nil, c.writeTimeout, &post); err != nil {
		return nil, err
	}

	log.Info().
		Str("site", baseURL).
		Int("post_id", post.ID).
		Str("status", post.Status).
		Msg("created wordpress post")
	return &post, nil
}

// CheckConnectivity issues the smallest authenticated read the API
// offers. A nil return means both the site and the credentials are fine.
func (c *Client) CheckConnectivity(ctx context.Context, baseURL string, creds Credentials) error {
	endpoint := baseURL + apiBase + "/categories?per_page=1&context=edit"
	var categories []Category
	return c.getJSON(ctx, endpoint, creds, &categories)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, creds Credentials, dest interface{}) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, creds, nil, "", nil, c.readTimeout, dest)
}

// doJSON runs one request and decodes the JSON response into dest.
// Transport failures and non-2xx statuses come back as *APIError.
func (c *Client) doJSON(
	ctx context.Context,
	method, endpoint string,
	creds Credentials,
	body io.Reader,
	contentType string,
	headers map[string]string,
	timeout time.Duration,
	dest interface{},
) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, body)
	if err != nil {
		return &APIError{Kind: KindBadRequest, Endpoint: endpoint, Message: err.Error(), Err: err}
	}

	req.Header.Set("Authorization", "Basic "+basicAuth(creds))
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(err, endpoint)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classifyResponse(resp.StatusCode, endpoint, respBody)
		log.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("kind", string(apiErr.Kind)).
			Msg("wordpress request failed")
		return apiErr
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		// A 2xx that is not JSON means something intercepted the
		// request before it reached the REST API.
		return &APIError{
			Kind:       KindBlocked,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    "response is not valid JSON",
			Err:        err,
		}
	}
	return nil
}

func basicAuth(creds Credentials) string {
	return base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.AppPassword))
}
