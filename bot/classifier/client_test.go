package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"newsbot/core/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.ClassifierConfig{
		APIKey:         "sk-test",
		BaseURL:        baseURL,
		Model:          "gpt-4o",
		MaxTokens:      50,
		TimeoutSeconds: 5,
	})
}

func TestClassifyRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
			N         int `json:"n"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o", req.Model)
		require.Equal(t, 50, req.MaxTokens)
		require.Equal(t, 2, req.N)
		require.Len(t, req.Messages, 3)
		require.Equal(t, "system", req.Messages[0].Role)
		require.Equal(t, "user", req.Messages[1].Role)
		require.Equal(t, "first item", req.Messages[1].Content)

		w.Write([]byte(`{"choices": [
			{"index": 0, "message": {"role": "assistant", "content": "Relevant"}},
			{"index": 1, "message": {"role": "assistant", "content": "Not Relevant"}}
		]}`))
	}))
	defer srv.Close()

	verdicts, err := testClient(srv.URL).Classify(context.Background(), "instruction", []string{"first item", "second item"})
	require.NoError(t, err)
	require.Equal(t, []string{"Relevant", "Not Relevant"}, verdicts)
}

func TestClassifyOrdersByChoiceIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [
			{"index": 1, "message": {"role": "assistant", "content": "second"}},
			{"index": 0, "message": {"role": "assistant", "content": "first"}}
		]}`))
	}))
	defer srv.Close()

	verdicts, err := testClient(srv.URL).Classify(context.Background(), "instruction", []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, verdicts)
}

func TestClassifyCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "Relevant"}}]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Classify(context.Background(), "instruction", []string{"a", "b"})
	require.ErrorIs(t, err, ErrCountMismatch)
}

func TestClassifyHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Classify(context.Background(), "instruction", []string{"a"})
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestClassifyNoItems(t *testing.T) {
	verdicts, err := testClient("http://unused.invalid").Classify(context.Background(), "instruction", nil)
	require.NoError(t, err)
	require.Nil(t, verdicts)
}
