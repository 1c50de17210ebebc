// Package feed assembles a personalized article feed: stored interests decide
// whether to fetch at all, then the classifier trims the raw articles.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newsbot/bot/interests"
	"newsbot/bot/news"
	"newsbot/core/logger"
)

// ErrNoInterests signals that the user has no stored interests yet. No fetch
// or classification happens in that case.
var ErrNoInterests = errors.New("feed: no interests set")

// Fetcher is the slice of the news client the service needs.
type Fetcher interface {
	Everything(ctx context.Context, query string) ([]news.Article, error)
	TopHeadlines(ctx context.Context) ([]news.Article, error)
}

// Relevancer trims a fetched batch down to the relevant articles.
type Relevancer interface {
	Relevant(ctx context.Context, interests []string, articles []news.Article) []news.Article
}

// Service produces the filtered feed for a user.
type Service struct {
	store        interests.Store
	fetcher      Fetcher
	filter       Relevancer
	defaultQuery string
}

// NewService wires the interest store, the news client and the relevance filter.
func NewService(store interests.Store, fetcher Fetcher, filter Relevancer, defaultQuery string) *Service {
	if defaultQuery == "" {
		defaultQuery = "latest"
	}
	return &Service{store: store, fetcher: fetcher, filter: filter, defaultQuery: defaultQuery}
}

// Search returns the relevant articles matching the query. An empty or blank
// query falls back to the default search term. Users without interests get
// ErrNoInterests before any network call.
func (s *Service) Search(ctx context.Context, userID int64, query string) ([]news.Article, error) {
	stored, err := s.loadInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	q := strings.TrimSpace(query)
	if q == "" {
		q = s.defaultQuery
	}
	articles, err := s.fetcher.Everything(ctx, q)
	if err != nil {
		articles = s.degrade(ctx, userID, err)
	}
	return s.trim(ctx, userID, stored, articles), nil
}

// Top returns the relevant articles among the current top headlines.
func (s *Service) Top(ctx context.Context, userID int64) ([]news.Article, error) {
	stored, err := s.loadInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	articles, err := s.fetcher.TopHeadlines(ctx)
	if err != nil {
		articles = s.degrade(ctx, userID, err)
	}
	return s.trim(ctx, userID, stored, articles), nil
}

// degrade maps an article-source failure to an empty batch. The user then
// sees the same "nothing relevant" outcome as an empty search result.
func (s *Service) degrade(ctx context.Context, userID int64, err error) []news.Article {
	logger.Warn(ctx, "svc.feed", "fetch.degraded",
		slog.Int64("user_id", userID),
		slog.String("err", err.Error()),
	)
	return nil
}

func (s *Service) loadInterests(ctx context.Context, userID int64) ([]string, error) {
	stored, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("feed: load interests: %w", err)
	}
	if len(stored) == 0 {
		return nil, ErrNoInterests
	}
	return stored, nil
}

func (s *Service) trim(ctx context.Context, userID int64, stored []string, articles []news.Article) []news.Article {
	relevant := s.filter.Relevant(ctx, stored, articles)
	logger.Info(ctx, "svc.feed", "feed.built",
		slog.Int64("user_id", userID),
		slog.Int("articles", len(articles)),
		slog.Int("relevant", len(relevant)),
		slog.Int("interests", len(stored)),
	)
	return relevant
}
