package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"newsbot/core/database"
	"newsbot/core/logger"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// AccessConfig declares the static set of users allowed to talk to the bot.
// Anyone else receives a fixed rejection reply and no handler runs.
type AccessConfig struct {
	AllowedUserIDs []int64 `yaml:"allowed_user_ids" envconfig:"ALLOWED_USER_IDS"`
}

// NewsConfig configures the NewsAPI article source.
type NewsConfig struct {
	APIKey         string `yaml:"api_key" envconfig:"NEWSAPI_API_KEY"`
	BaseURL        string `yaml:"base_url" envconfig:"NEWSAPI_BASE_URL"`
	DefaultQuery   string `yaml:"default_query" envconfig:"NEWS_DEFAULT_QUERY"`
	Language       string `yaml:"language" envconfig:"NEWS_LANGUAGE"`
	Country        string `yaml:"country" envconfig:"NEWS_COUNTRY"`
	PageSize       int    `yaml:"page_size" envconfig:"NEWS_PAGE_SIZE"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"NEWS_TIMEOUT_SECONDS"`
}

// ClassifierConfig configures the OpenAI-compatible relevance classifier.
type ClassifierConfig struct {
	APIKey         string `yaml:"api_key" envconfig:"OPENAI_API_KEY"`
	BaseURL        string `yaml:"base_url" envconfig:"OPENAI_BASE_URL"`
	Model          string `yaml:"model" envconfig:"CLASSIFIER_MODEL"`
	MaxTokens      int    `yaml:"max_tokens" envconfig:"CLASSIFIER_MAX_TOKENS"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"CLASSIFIER_TIMEOUT_SECONDS"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateInlineQuery identifies inline query updates for rate limit exclusions.
	UpdateInlineQuery = "inline_query"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
// - "inline_query": inline query updates
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the bot configuration. It is built once in main and passed
// by reference into each component; nothing reads it from a global.
type Config struct {
	Telegram   TelegramConfig   `yaml:"telegram"`
	Webhook    WebhookConfig    `yaml:"webhook"`
	Access     AccessConfig     `yaml:"access"`
	Database   database.Config  `yaml:"database"`
	News       NewsConfig       `yaml:"news"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Logging    logger.Config    `yaml:"logging"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if len(cfg.Access.AllowedUserIDs) == 0 {
		return fmt.Errorf("access.allowed_user_ids must not be empty")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if err := normalizeNews(&cfg.News); err != nil {
		return err
	}
	if err := normalizeClassifier(&cfg.Classifier); err != nil {
		return err
	}

	allowed := map[string]struct{}{
		UpdateCallback:    {},
		UpdateMessage:     {},
		UpdateInlineQuery: {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, inline_query", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}

func normalizeNews(n *NewsConfig) error {
	if strings.TrimSpace(n.APIKey) == "" {
		return fmt.Errorf("news.api_key is required")
	}
	if n.BaseURL == "" {
		n.BaseURL = "https://newsapi.org/v2"
	}
	n.BaseURL = strings.TrimRight(n.BaseURL, "/")
	if n.DefaultQuery == "" {
		n.DefaultQuery = "latest"
	}
	if n.Language == "" {
		n.Language = "en"
	}
	if n.Country == "" {
		n.Country = "us"
	}
	if n.PageSize <= 0 {
		n.PageSize = 20
	}
	if n.PageSize > 100 {
		return fmt.Errorf("news.page_size must be <= 100")
	}
	if n.TimeoutSeconds <= 0 {
		n.TimeoutSeconds = 30
	}
	return nil
}

func normalizeClassifier(c *ClassifierConfig) error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("classifier.api_key is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = "gpt-4o"
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 50
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 60
	}
	return nil
}

// IsAllowed reports whether userID is on the static allow-list.
func (a AccessConfig) IsAllowed(userID int64) bool {
	for _, id := range a.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
