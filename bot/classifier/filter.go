package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsbot/bot/news"
	"newsbot/core/logger"
)

const systemInstructionFmt = "Filter the following articles based on these interests: %s. " +
	"For each article, respond with 'Relevant' if it matches any of the interests, " +
	"or 'Not Relevant' if it does not."

// Verdicts is the classification backend the filter runs on.
type Verdicts interface {
	Classify(ctx context.Context, system string, items []string) ([]string, error)
}

// Filter keeps the articles the model judged relevant to the user's
// interests. Verdicts pair with articles by position, so the filter refuses
// to use a response whose choice count differs from the article count.
type Filter struct {
	client Verdicts
}

// NewFilter wraps a classification client.
func NewFilter(client Verdicts) *Filter {
	return &Filter{client: client}
}

// Relevant returns the subset of articles whose verdict reads relevant.
// An article passes only when its verdict contains "Relevant" and does not
// contain "Not Relevant"; an ambiguous verdict excludes the article. Any
// classification failure degrades to an empty result, never an error, so a
// broken upstream reads as "no relevant news" to the user.
func (f *Filter) Relevant(ctx context.Context, interests []string, articles []news.Article) []news.Article {
	if len(articles) == 0 {
		return []news.Article{}
	}

	system := fmt.Sprintf(systemInstructionFmt, strings.Join(interests, ", "))
	items := make([]string, len(articles))
	for i, article := range articles {
		items[i] = article.Title + " " + article.Description
	}

	start := time.Now()
	verdicts, err := f.client.Classify(ctx, system, items)
	if err != nil {
		logger.Error(ctx, "svc.classifier", "filter.fail",
			slog.Int("articles", len(articles)),
			slog.String("err", err.Error()),
		)
		return []news.Article{}
	}
	if len(verdicts) != len(articles) {
		logger.Error(ctx, "svc.classifier", "filter.mismatch",
			slog.Int("articles", len(articles)),
			slog.Int("count", len(verdicts)),
		)
		return []news.Article{}
	}

	kept := make([]news.Article, 0, len(articles))
	for i, verdict := range verdicts {
		if strings.Contains(verdict, "Relevant") && !strings.Contains(verdict, "Not Relevant") {
			kept = append(kept, articles[i])
		}
	}

	logger.Info(ctx, "svc.classifier", "filter.done",
		slog.Int("articles", len(articles)),
		slog.Int("relevant", len(kept)),
		slog.Duration("duration", logger.Took(start)),
	)
	return kept
}
