package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"newsbot/core/logger"
	tghelpers "newsbot/core/telegram/helpers"
)

// AccessOptions defines how the allow-list gate behaves.
type AccessOptions struct {
	// IsAllowed decides whether a sender may use the bot; a nil predicate
	// denies everyone.
	IsAllowed func(userID int64) bool
	// OnReject handles updates from everyone else; when nil the update is dropped.
	OnReject tele.HandlerFunc
}

// AllowlistMiddleware rejects updates from senders outside the configured
// allow-list before any downstream handler runs. The check is a pure lookup;
// rejected users never reach bot state or external calls.
func AllowlistMiddleware(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return nil
			}
			if opts.IsAllowed != nil && opts.IsAllowed(user.ID) {
				return next(c)
			}
			ctx := tghelpers.BuildContext(c)
			logger.Warn(ctx, "tg", "access.denied",
				slog.Int64("user_id", user.ID),
				slog.String("username", logger.SanitizeLimit(user.Username, 64)),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
