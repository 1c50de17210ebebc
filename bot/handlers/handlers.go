// Package handlers binds the bot commands and conversation states to the
// interest and feed services.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"newsbot/bot/feed"
	"newsbot/bot/interests"
	"newsbot/bot/news"
	"newsbot/core/logger"
	tg "newsbot/core/telegram"
	"newsbot/core/telegram/commands"
	tghelpers "newsbot/core/telegram/helpers"
	"newsbot/core/telegram/state"
)

const (
	replyStart      = "Hello, master!"
	replyRejected   = "Sorry, you are not authorized to use this bot."
	replyNoRelevant = "No relevant news found based on your interests."
	replyNoSetup    = "You have no interests set. Use /addinterest to set your interests."
	replyNoSummary  = "No summary available."

	replyHelp = "This bot allows specific authorized users to interact with it. Use /start to initiate interaction, " +
		"/news to get news updates, /interests to manage your interests, " +
		"/addinterest to add an interest, /removeinterest to remove an interest."
)

// InterestFlows is the slice of the interest service the handlers need.
type InterestFlows interface {
	BeginAdd(userID int64) string
	BeginRemove(userID int64) string
	Cancel(userID int64)
	HandleText(ctx context.Context, userID int64, text string) (string, error)
	List(ctx context.Context, userID int64) (string, error)
}

// Feed delivers the filtered article batches.
type Feed interface {
	Search(ctx context.Context, userID int64, query string) ([]news.Article, error)
	Top(ctx context.Context, userID int64) ([]news.Article, error)
}

// Handlers owns the command and conversation handlers of the bot.
type Handlers struct {
	interests InterestFlows
	feed      Feed
}

// New builds the handler set over the given services.
func New(flows InterestFlows, feedSvc Feed) *Handlers {
	return &Handlers{interests: flows, feed: feedSvc}
}

// Register adds all bot commands to the registry and hooks the conversation
// states into the FSM dispatch table.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Start interacting with the bot",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.Help,
		Description: "Show available commands",
	})
	reg.RegisterCommand("/interests", commands.Command{
		Handler:     h.Interests,
		Description: "List your interests",
	})
	reg.RegisterCommand("/addinterest", commands.Command{
		Handler:     h.AddInterest,
		Description: "Add an interest",
	})
	reg.RegisterCommand("/removeinterest", commands.Command{
		Handler:     h.RemoveInterest,
		Description: "Remove an interest",
	})
	reg.RegisterCommand("/news", commands.Command{
		Handler:     h.News,
		Description: "Get news matching an optional query",
	})
	reg.RegisterCommand("/topnews", commands.Command{
		Handler:     h.TopNews,
		Description: "Get top headlines",
	})

	state.RegisterHandler(interests.StateAwaitingAdd, h.ConversationText)
	state.RegisterHandler(interests.StateAwaitingRemove, h.ConversationText)
}

// Rejected replies to users outside the allow-list. It is wired as the access
// middleware rejection callback.
func (h *Handlers) Rejected(c tele.Context) error {
	return tghelpers.SendText(c, replyRejected)
}

// Start greets an authorized user. The allow-list gate has already run.
func (h *Handlers) Start(c tele.Context) error {
	h.interests.Cancel(c.Sender().ID)
	return tghelpers.SendText(c, replyStart)
}

// Help lists what the bot can do.
func (h *Handlers) Help(c tele.Context) error {
	h.interests.Cancel(c.Sender().ID)
	return tghelpers.SendText(c, replyHelp)
}

// Interests replies with the numbered interest list.
func (h *Handlers) Interests(c tele.Context) error {
	userID := c.Sender().ID
	h.interests.Cancel(userID)

	reply, err := h.interests.List(tghelpers.BuildContext(c), userID)
	if sendErr := tghelpers.SendText(c, reply); sendErr != nil {
		return sendErr
	}
	return err
}

// AddInterest opens the add-interest conversation.
func (h *Handlers) AddInterest(c tele.Context) error {
	return tghelpers.SendText(c, h.interests.BeginAdd(c.Sender().ID))
}

// RemoveInterest opens the remove-interest conversation.
func (h *Handlers) RemoveInterest(c tele.Context) error {
	return tghelpers.SendText(c, h.interests.BeginRemove(c.Sender().ID))
}

// ConversationText consumes the next text message of an active add or remove
// flow. The FSM router dispatches here for both awaiting states.
func (h *Handlers) ConversationText(c tele.Context) error {
	reply, err := h.interests.HandleText(tghelpers.BuildContext(c), c.Sender().ID, c.Text())
	if reply == "" {
		return err
	}
	if sendErr := tghelpers.SendText(c, reply); sendErr != nil {
		return sendErr
	}
	return err
}

// News fetches and filters articles for an optional search query given after
// the command.
func (h *Handlers) News(c tele.Context) error {
	userID := c.Sender().ID
	h.interests.Cancel(userID)

	ctx := tghelpers.BuildContext(c)
	query := strings.TrimSpace(c.Message().Payload)
	articles, err := h.feed.Search(ctx, userID, query)
	return h.deliver(c, ctx, articles, err)
}

// TopNews fetches and filters the current top headlines.
func (h *Handlers) TopNews(c tele.Context) error {
	userID := c.Sender().ID
	h.interests.Cancel(userID)

	ctx := tghelpers.BuildContext(c)
	articles, err := h.feed.Top(ctx, userID)
	return h.deliver(c, ctx, articles, err)
}

func (h *Handlers) deliver(c tele.Context, ctx context.Context, articles []news.Article, err error) error {
	if err != nil {
		if errors.Is(err, feed.ErrNoInterests) {
			return tghelpers.SendText(c, replyNoSetup)
		}
		logger.Error(ctx, "tg", "news.deliver.fail",
			slog.String("err", err.Error()),
		)
		if sendErr := tghelpers.SendText(c, interests.ReplyFailure); sendErr != nil {
			return sendErr
		}
		return err
	}
	if len(articles) == 0 {
		return tghelpers.SendText(c, replyNoRelevant)
	}
	for _, article := range articles {
		if sendErr := tghelpers.SendText(c, renderArticle(article)); sendErr != nil {
			return sendErr
		}
	}
	return nil
}

func renderArticle(article news.Article) string {
	summary := article.Description
	if summary == "" {
		summary = replyNoSummary
	}
	return article.Title + "\n" + summary + "\n" + article.URL
}
