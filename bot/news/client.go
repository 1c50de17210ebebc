// Package news fetches articles from the NewsAPI.org REST API.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsbot/core/config"
	"newsbot/core/logger"
)

// Article is one item of a NewsAPI response.
type Article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

type response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// Client calls the NewsAPI endpoints with a fixed language, country and page
// size. Values come from configuration and match the upstream defaults.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	country    string
	pageSize   int
	httpClient *http.Client
}

// NewClient builds a Client from the news section of the configuration.
func NewClient(cfg config.NewsConfig) *Client {
	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  cfg.BaseURL,
		language: cfg.Language,
		country:  cfg.Country,
		pageSize: cfg.PageSize,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Everything searches all articles matching the query.
func (c *Client) Everything(ctx context.Context, query string) ([]Article, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("language", c.language)
	params.Add("pageSize", strconv.Itoa(c.pageSize))
	return c.fetch(ctx, "everything", params)
}

// TopHeadlines returns the current top headlines for the configured country.
func (c *Client) TopHeadlines(ctx context.Context) ([]Article, error) {
	params := url.Values{}
	params.Add("country", c.country)
	params.Add("pageSize", strconv.Itoa(c.pageSize))
	return c.fetch(ctx, "top-headlines", params)
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]Article, error) {
	params.Add("apiKey", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error: %s", resp.Status)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}

	logger.Debug(ctx, "svc.news", "news.fetched",
		slog.String("endpoint", endpoint),
		slog.Int("count", len(result.Articles)),
		slog.Duration("duration", logger.Took(start)),
	)
	return result.Articles, nil
}
