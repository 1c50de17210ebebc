package telegram

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "newsbot/core/config"
	"newsbot/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared middleware chain: recover, optional
// rate limiting, the access allow-list gate, update logging, and message
// counters. The access gate runs before logging-independent handlers so an
// unauthorized update never reaches bot state.
func DefaultMiddlewares(cfg *coreconfig.Config, onRejected tele.HandlerFunc) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}

	if cfg != nil {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		if interval > 0 {
			ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
			for _, t := range cfg.RateLimit.ExcludeUpdates {
				ex[strings.ToLower(t)] = struct{}{}
			}
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
					Interval: interval,
					Exclude:  ex,
				}),
			})
		}

		mws = append(mws, Middleware{
			Name: "access",
			Use: middleware.AllowlistMiddleware(middleware.AccessOptions{
				IsAllowed: cfg.Access.IsAllowed,
				OnReject:  onRejected,
			}),
		})
	}

	mws = append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)

	return mws
}
