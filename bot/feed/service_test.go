package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"newsbot/bot/interests"
	"newsbot/bot/news"
)

type stubFetcher struct {
	everything  []news.Article
	top         []news.Article
	err         error
	gotQuery    string
	topCalls    int
	searchCalls int
}

func (s *stubFetcher) Everything(_ context.Context, query string) ([]news.Article, error) {
	s.searchCalls++
	s.gotQuery = query
	return s.everything, s.err
}

func (s *stubFetcher) TopHeadlines(_ context.Context) ([]news.Article, error) {
	s.topCalls++
	return s.top, s.err
}

type stubFilter struct {
	out   []news.Article
	calls int
}

func (s *stubFilter) Relevant(_ context.Context, _ []string, _ []news.Article) []news.Article {
	s.calls++
	return s.out
}

func seedStore(t *testing.T, values ...string) *interests.MemoryStore {
	t.Helper()
	store := interests.NewMemoryStore()
	if len(values) > 0 {
		require.NoError(t, store.Set(context.Background(), 1, values))
	}
	return store
}

func articles(titles ...string) []news.Article {
	out := make([]news.Article, len(titles))
	for i, title := range titles {
		out[i].Title = title
	}
	return out
}

func TestSearchFiltersFetchedArticles(t *testing.T) {
	fetcher := &stubFetcher{everything: articles("A", "B", "C")}
	filter := &stubFilter{out: articles("B")}
	svc := NewService(seedStore(t, "tech"), fetcher, filter, "latest")

	got, err := svc.Search(context.Background(), 1, "golang")
	require.NoError(t, err)
	require.Equal(t, articles("B"), got)
	require.Equal(t, "golang", fetcher.gotQuery)
	require.Equal(t, 1, filter.calls)
}

func TestSearchDefaultsBlankQuery(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := NewService(seedStore(t, "tech"), fetcher, &stubFilter{}, "latest")

	_, err := svc.Search(context.Background(), 1, "   ")
	require.NoError(t, err)
	require.Equal(t, "latest", fetcher.gotQuery)
}

func TestTopUsesHeadlines(t *testing.T) {
	fetcher := &stubFetcher{top: articles("H")}
	filter := &stubFilter{out: articles("H")}
	svc := NewService(seedStore(t, "tech"), fetcher, filter, "latest")

	got, err := svc.Top(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, articles("H"), got)
	require.Equal(t, 1, fetcher.topCalls)
	require.Zero(t, fetcher.searchCalls)
}

func TestNoInterestsShortCircuits(t *testing.T) {
	fetcher := &stubFetcher{everything: articles("A")}
	filter := &stubFilter{}
	svc := NewService(seedStore(t), fetcher, filter, "latest")

	_, err := svc.Search(context.Background(), 1, "golang")
	require.ErrorIs(t, err, ErrNoInterests)
	require.Zero(t, fetcher.searchCalls)
	require.Zero(t, filter.calls)

	_, err = svc.Top(context.Background(), 1)
	require.ErrorIs(t, err, ErrNoInterests)
	require.Zero(t, fetcher.topCalls)
}

func TestFetchErrorDegradesToEmpty(t *testing.T) {
	boom := errors.New("newsapi error: 500")
	fetcher := &stubFetcher{err: boom}
	svc := NewService(seedStore(t, "tech"), fetcher, &stubFilter{}, "latest")

	got, err := svc.Search(context.Background(), 1, "golang")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStoreErrorIsWrapped(t *testing.T) {
	boom := errors.New("db down")
	store := interests.NewMemoryStore()
	store.FailWith = boom
	svc := NewService(store, &stubFetcher{}, &stubFilter{}, "latest")

	_, err := svc.Top(context.Background(), 1)
	require.ErrorIs(t, err, boom)
}
