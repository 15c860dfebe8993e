package wordpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() Credentials {
	return Credentials{Username: "editor", AppPassword: "abcd efgh ijkl"}
}

func TestListCategories(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/wp-json/wp/v2/categories", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Category{
			{ID: 1, Name: "Uncategorized"},
			{ID: 7, Name: "News"},
		})
	}))
	defer server.Close()

	client := NewClient(0, 0)
	categories, err := client.ListCategories(context.Background(), server.URL, testCreds())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "News", categories[1].Name)
	assert.Contains(t, gotAuth, "Basic ")
}

func TestListAuthorsRequestsEditContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/users", r.URL.Path)
		assert.Equal(t, "edit", r.URL.Query().Get("context"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Author{{ID: 5, Name: "Alice"}})
	}))
	defer server.Close()

	client := NewClient(0, 0)
	authors, err := client.ListAuthors(context.Background(), server.URL, testCreds())

	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Alice", authors[0].Name)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{
			name:     "401 maps to credentials",
			status:   http.StatusUnauthorized,
			body:     `{"code":"rest_cannot_access","message":"Invalid credentials."}`,
			wantKind: KindCredentials,
		},
		{
			name:     "403 json envelope maps to permissions",
			status:   http.StatusForbidden,
			body:     `{"code":"rest_forbidden","message":"Sorry, you are not allowed to do that."}`,
			wantKind: KindPermissions,
		},
		{
			name:     "403 html body maps to blocked",
			status:   http.StatusForbidden,
			body:     `<html><body>Access denied by security plugin</body></html>`,
			wantKind: KindBlocked,
		},
		{
			name:     "500 maps to server error even with html body",
			status:   http.StatusInternalServerError,
			body:     `<html>Internal Server Error</html>`,
			wantKind: KindServerError,
		},
		{
			name:     "400 json envelope maps to bad request",
			status:   http.StatusBadRequest,
			body:     `{"code":"rest_invalid_param","message":"Invalid parameter."}`,
			wantKind: KindBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(0, 0)
			_, err := client.ListTags(context.Background(), server.URL, testCreds())

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestNonJSONSuccessIsBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance page</html>"))
	}))
	defer server.Close()

	client := NewClient(0, 0)
	_, err := client.ListAuthors(context.Background(), server.URL, testCreds())

	require.Error(t, err)
	assert.Equal(t, KindBlocked, KindOf(err))
}

func TestSlowReadIsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(50*time.Millisecond, 50*time.Millisecond)
	_, err := client.ListCategories(context.Background(), server.URL, testCreds())

	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.True(t, IsRetryable(err))
}

func TestCanceledRequestIsNotTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	client := NewClient(time.Second, time.Second)
	_, err := client.ListCategories(ctx, server.URL, testCreds())

	require.Error(t, err)
	assert.Equal(t, KindCanceled, KindOf(err))
	assert.False(t, IsRetryable(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnreachableHostIsConnectivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(0, 0)
	_, err := client.ListCategories(context.Background(), baseURL, testCreds())

	require.Error(t, err)
	assert.Equal(t, KindConnectivity, KindOf(err))
	assert.True(t, IsRetryable(err))
}

func TestCreateTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/wp-json/wp/v2/tags", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "golang", body["name"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Tag{ID: 42, Name: "golang", Slug: "golang"})
	}))
	defer server.Close()

	client := NewClient(0, 0)
	tag, err := client.CreateTag(context.Background(), server.URL, testCreds(), "golang")

	require.NoError(t, err)
	assert.Equal(t, 42, tag.ID)
	assert.Equal(t, "golang", tag.Slug)
}

func TestUploadMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/media", r.URL.Path)
		assert.Equal(t, `attachment; filename="cover.jpg"`, r.Header.Get("Content-Disposition"))
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Media{ID: 99, SourceURL: "https://example.com/cover.jpg"})
	}))
	defer server.Close()

	client := NewClient(0, 0)
	media, err := client.UploadMedia(context.Background(), server.URL, testCreds(), "cover.jpg", "image/jpeg", []byte{0xff, 0xd8})

	require.NoError(t, err)
	assert.Equal(t, 99, media.ID)
}

func TestCreatePost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload PostPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		assert.Equal(t, "future", payload.Status)
		assert.Equal(t, "2031-05-01T09:00:00", payload.DateGMT)
		assert.Equal(t, []int{3, 7}, payload.Categories)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Post{ID: 512, Link: "https://example.com/?p=512", Status: "future"})
	}))
	defer server.Close()

	client := NewClient(0, 0)
	post, err := client.CreatePost(context.Background(), server.URL, testCreds(), PostPayload{
		Title:      "Scheduled piece",
		Content:    "<p>Body</p>",
		Status:     "future",
		DateGMT:    "2031-05-01T09:00:00",
		Categories: []int{3, 7},
	})

	require.NoError(t, err)
	assert.Equal(t, 512, post.ID)
	assert.Equal(t, "future", post.Status)
}
