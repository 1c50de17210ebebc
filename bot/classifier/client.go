// Package classifier asks a chat-completion model to label items one by one
// and pairs its verdicts back with the inputs by position.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"newsbot/core/config"
)

// ErrCountMismatch is returned when the API produces a different number of
// choices than items were sent. Positional pairing is meaningless then, so
// callers must not use a partial result.
var ErrCountMismatch = errors.New("classifier: choice count does not match item count")

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("classifier: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	N           int           `json:"n,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Index   int         `json:"index"`
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client is a focused chat-completions client. One request carries a shared
// system instruction plus one user message per item, asking the API for as
// many choices as there are items.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a Client from the classifier section of the configuration.
func NewClient(cfg config.ClassifierConfig) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Classify sends the system instruction plus one user message per item and
// returns the verdict texts ordered by choice index, one per item. A count
// mismatch yields ErrCountMismatch.
func (c *Client) Classify(ctx context.Context, system string, items []string) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	messages := make([]chatMessage, 0, len(items)+1)
	messages = append(messages, chatMessage{Role: "system", Content: system})
	for _, item := range items {
		messages = append(messages, chatMessage{Role: "user", Content: item})
	}

	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
		N:         len(items),
	})
	if err != nil {
		return nil, fmt.Errorf("classifier: marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("classifier: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, URL: url, Body: string(buf)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("classifier: read response body: %w", err)
	}

	var payload chatResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("classifier: decode response: %w", err)
	}
	if len(payload.Choices) != len(items) {
		return nil, fmt.Errorf("%w: got %d choices for %d items", ErrCountMismatch, len(payload.Choices), len(items))
	}

	sort.Slice(payload.Choices, func(i, j int) bool {
		return payload.Choices[i].Index < payload.Choices[j].Index
	})
	verdicts := make([]string, len(payload.Choices))
	for i, choice := range payload.Choices {
		verdicts[i] = choice.Message.Content
	}
	return verdicts, nil
}
