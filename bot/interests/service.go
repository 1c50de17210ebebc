package interests

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newsbot/core/logger"
	"newsbot/core/telegram/state"
)

// Conversation states for the add/remove flows.
const (
	StateAwaitingAdd    state.State = "awaiting_add_interest"
	StateAwaitingRemove state.State = "awaiting_remove_interest"
)

// User-facing replies. The texts are part of the bot's contract with its
// (small, allow-listed) audience, so they live in one place.
const (
	PromptAdd       = "Please provide the interest you want to add."
	PromptRemove    = "Please provide the interest you want to remove."
	ReplyNoneSet    = "You have no interests set."
	ReplyFailure    = "Something went wrong, please try again."
	replyAddedFmt   = "Added interest: %s"
	replyRemovedFmt = "Removed interest: %s"
)

// Sessions is the slice of the FSM manager the service needs.
type Sessions interface {
	SetState(userID int64, st state.State)
	GetState(userID int64) state.State
	ClearState(userID int64)
}

// Service walks a user through the add/remove interest conversations and
// renders the interest list. One instance serves all users; per-user
// conversation state lives in the session manager.
type Service struct {
	store    Store
	sessions Sessions
}

// NewService wires the interest store and the session manager.
func NewService(store Store, sessions Sessions) *Service {
	return &Service{store: store, sessions: sessions}
}

// BeginAdd opens the add-interest conversation and returns the prompt to send.
func (s *Service) BeginAdd(userID int64) string {
	s.sessions.SetState(userID, StateAwaitingAdd)
	return PromptAdd
}

// BeginRemove opens the remove-interest conversation and returns the prompt to send.
func (s *Service) BeginRemove(userID int64) string {
	s.sessions.SetState(userID, StateAwaitingRemove)
	return PromptRemove
}

// Cancel drops any pending conversation for the user. Command handlers call
// it on entry so a new command always preempts an awaiting flow.
func (s *Service) Cancel(userID int64) {
	s.sessions.ClearState(userID)
}

// HandleText consumes the next text message while a conversation is active.
// The awaiting state is always exited, whatever the payload: an empty or
// whitespace-only message skips the store call but still ends the flow.
// The returned reply is empty when nothing should be sent.
func (s *Service) HandleText(ctx context.Context, userID int64, text string) (string, error) {
	current := s.sessions.GetState(userID)
	s.sessions.ClearState(userID)

	interest := strings.TrimSpace(text)

	switch current {
	case StateAwaitingAdd:
		if interest == "" {
			return "", nil
		}
		if err := s.store.Add(ctx, userID, interest); err != nil {
			logger.Error(ctx, "svc.interests", "add.fail",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
			return ReplyFailure, err
		}
		logger.Info(ctx, "svc.interests", "add.ok",
			slog.Int64("user_id", userID),
			slog.String("payload", logger.SanitizeLimit(interest, 128)),
		)
		return fmt.Sprintf(replyAddedFmt, interest), nil

	case StateAwaitingRemove:
		if interest == "" {
			return "", nil
		}
		if err := s.store.Remove(ctx, userID, interest); err != nil {
			logger.Error(ctx, "svc.interests", "remove.fail",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
			return ReplyFailure, err
		}
		logger.Info(ctx, "svc.interests", "remove.ok",
			slog.Int64("user_id", userID),
			slog.String("payload", logger.SanitizeLimit(interest, 128)),
		)
		return fmt.Sprintf(replyRemovedFmt, interest), nil
	}

	return "", nil
}

// List renders the stored interests as a numbered list.
func (s *Service) List(ctx context.Context, userID int64) (string, error) {
	values, err := s.store.Get(ctx, userID)
	if err != nil {
		logger.Error(ctx, "svc.interests", "list.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return ReplyFailure, err
	}
	if len(values) == 0 {
		return ReplyNoneSet, nil
	}
	var b strings.Builder
	b.WriteString("Your interests are:\n")
	for i, v := range values {
		fmt.Fprintf(&b, "%d. %s\n", i+1, v)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
