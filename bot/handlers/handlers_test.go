package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"newsbot/bot/news"
	tg "newsbot/core/telegram"
)

type noopFlows struct{}

func (noopFlows) BeginAdd(int64) string    { return "" }
func (noopFlows) BeginRemove(int64) string { return "" }
func (noopFlows) Cancel(int64)             {}
func (noopFlows) HandleText(context.Context, int64, string) (string, error) {
	return "", nil
}
func (noopFlows) List(context.Context, int64) (string, error) { return "", nil }

type noopFeed struct{}

func (noopFeed) Search(context.Context, int64, string) ([]news.Article, error) { return nil, nil }
func (noopFeed) Top(context.Context, int64) ([]news.Article, error)            { return nil, nil }

func TestRegisterWiresAllCommands(t *testing.T) {
	reg := tg.NewRegistry()
	New(noopFlows{}, noopFeed{}).Register(reg)

	for _, name := range []string{"/start", "/help", "/interests", "/addinterest", "/removeinterest", "/news", "/topnews"} {
		key, cmd, ok := reg.LookupCommand(name)
		require.True(t, ok, name)
		require.Equal(t, name, key)
		require.NotNil(t, cmd.Handler, name)
	}

	require.Len(t, reg.ListCommands(true), 7)
}

func TestRenderArticle(t *testing.T) {
	article := news.Article{Title: "Go 1.25", Description: "What changed", URL: "https://example.com/go"}
	require.Equal(t, "Go 1.25\nWhat changed\nhttps://example.com/go", renderArticle(article))

	article.Description = ""
	require.Equal(t, "Go 1.25\nNo summary available.\nhttps://example.com/go", renderArticle(article))
}
