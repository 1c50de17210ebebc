package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"newsbot/core/config"
)

func testConfig(baseURL string) config.NewsConfig {
	return config.NewsConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Language:       "en",
		Country:        "us",
		PageSize:       20,
		TimeoutSeconds: 5,
	}
}

func TestEverythingBuildsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/everything", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "golang", q.Get("q"))
		require.Equal(t, "en", q.Get("language"))
		require.Equal(t, "20", q.Get("pageSize"))
		require.Equal(t, "test-key", q.Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"source": {"name": "Wire"}, "title": "First", "description": "one", "url": "https://a.example/1", "publishedAt": "2025-08-30T10:00:00Z"},
				{"source": {"name": "Wire"}, "title": "Second", "description": "two", "url": "https://a.example/2", "publishedAt": "2025-08-30T11:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	articles, err := client.Everything(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "First", articles[0].Title)
	require.Equal(t, "Wire", articles[0].Source.Name)
}

func TestTopHeadlinesBuildsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/top-headlines", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "us", q.Get("country"))
		require.Empty(t, q.Get("q"))

		w.Write([]byte(`{"status": "ok", "totalResults": 0, "articles": []}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	articles, err := client.TopHeadlines(context.Background())
	require.NoError(t, err)
	require.Empty(t, articles)
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","code":"apiKeyInvalid"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Everything(context.Background(), "golang")
	require.Error(t, err)
	require.Contains(t, err.Error(), "newsapi error")
}

func TestFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.TopHeadlines(context.Background())
	require.Error(t, err)
}
