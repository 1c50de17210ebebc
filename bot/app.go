// Package bot assembles the news assistant: storage, news and classifier
// clients, conversation services and Telegram wiring.
package bot

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"newsbot/bot/classifier"
	"newsbot/bot/feed"
	"newsbot/bot/handlers"
	"newsbot/bot/interests"
	"newsbot/bot/news"
	coreconfig "newsbot/core/config"
	tg "newsbot/core/telegram"
	"newsbot/core/telegram/router"
	"newsbot/core/telegram/state"
)

// App holds the assembled bot components.
type App struct {
	cfg      *coreconfig.Config
	registry *tg.Registry
	sessions state.Manager
	handlers *handlers.Handlers
}

// New wires the services over the given database handle and registers all
// commands and conversation states.
func New(cfg *coreconfig.Config, db *sqlx.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config provided")
	}
	if db == nil {
		return nil, fmt.Errorf("bot: nil database handle provided")
	}

	sessions := state.NewMemoryManager()
	store := interests.NewPostgresStore(db)

	interestSvc := interests.NewService(store, sessions)
	newsClient := news.NewClient(cfg.News)
	filter := classifier.NewFilter(classifier.NewClient(cfg.Classifier))
	feedSvc := feed.NewService(store, newsClient, filter, cfg.News.DefaultQuery)

	h := handlers.New(interestSvc, feedSvc)
	registry := tg.NewRegistry()
	h.Register(registry)

	return &App{
		cfg:      cfg,
		registry: registry,
		sessions: sessions,
		handlers: h,
	}, nil
}

// TelegramRunOptions exposes the full bot wiring to the runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.TextRoutes(a.sessions, a.registry, router.TextOptions{})...)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg, a.handlers.Rejected),
		Routes:      routes,
	}, nil
}
