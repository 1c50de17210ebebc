package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"newsbot/bot/news"
)

type stubVerdicts struct {
	verdicts  []string
	err       error
	gotSystem string
	gotItems  []string
	callCount int
}

func (s *stubVerdicts) Classify(_ context.Context, system string, items []string) ([]string, error) {
	s.callCount++
	s.gotSystem = system
	s.gotItems = items
	return s.verdicts, s.err
}

func makeArticles(titles ...string) []news.Article {
	articles := make([]news.Article, len(titles))
	for i, title := range titles {
		articles[i].Title = title
		articles[i].Description = "about " + title
	}
	return articles
}

func TestRelevantKeepsByPosition(t *testing.T) {
	stub := &stubVerdicts{verdicts: []string{"Not Relevant", "Relevant", "Relevant"}}
	filter := NewFilter(stub)

	got := filter.Relevant(context.Background(), []string{"sports", "tech"}, makeArticles("A", "B", "C"))

	require.Len(t, got, 2)
	require.Equal(t, "B", got[0].Title)
	require.Equal(t, "C", got[1].Title)
}

func TestRelevantBuildsPrompts(t *testing.T) {
	stub := &stubVerdicts{verdicts: []string{"Relevant"}}
	filter := NewFilter(stub)

	filter.Relevant(context.Background(), []string{"sports", "tech"}, makeArticles("A"))

	require.Contains(t, stub.gotSystem, "Filter the following articles based on these interests: sports, tech.")
	require.Equal(t, []string{"A about A"}, stub.gotItems)
}

func TestRelevantAmbiguousVerdictExcludes(t *testing.T) {
	stub := &stubVerdicts{verdicts: []string{"Relevant, though arguably Not Relevant"}}
	filter := NewFilter(stub)

	got := filter.Relevant(context.Background(), []string{"tech"}, makeArticles("A"))
	require.Empty(t, got)
}

func TestRelevantClassifierErrorYieldsEmpty(t *testing.T) {
	stub := &stubVerdicts{err: errors.New("upstream down")}
	filter := NewFilter(stub)

	got := filter.Relevant(context.Background(), []string{"tech"}, makeArticles("A", "B"))
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestRelevantCountMismatchYieldsEmpty(t *testing.T) {
	stub := &stubVerdicts{verdicts: []string{"Relevant"}}
	filter := NewFilter(stub)

	got := filter.Relevant(context.Background(), []string{"tech"}, makeArticles("A", "B"))
	require.Empty(t, got)
}

func TestRelevantNoArticlesSkipsClassifier(t *testing.T) {
	stub := &stubVerdicts{}
	filter := NewFilter(stub)

	got := filter.Relevant(context.Background(), []string{"tech"}, nil)
	require.Empty(t, got)
	require.Zero(t, stub.callCount)
}
