package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Access.AllowedUserIDs = []int64{1}
	cfg.News.APIKey = "news-key"
	cfg.Classifier.APIKey = "sk-test"
	return cfg
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))

	require.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)

	require.Equal(t, "https://newsapi.org/v2", cfg.News.BaseURL)
	require.Equal(t, "latest", cfg.News.DefaultQuery)
	require.Equal(t, "en", cfg.News.Language)
	require.Equal(t, "us", cfg.News.Country)
	require.Equal(t, 20, cfg.News.PageSize)
	require.Equal(t, 30, cfg.News.TimeoutSeconds)

	require.Equal(t, "https://api.openai.com/v1", cfg.Classifier.BaseURL)
	require.Equal(t, "gpt-4o", cfg.Classifier.Model)
	require.Equal(t, 50, cfg.Classifier.MaxTokens)
	require.Equal(t, 60, cfg.Classifier.TimeoutSeconds)
}

func TestNormalizeRequiredFields(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	require.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Access.AllowedUserIDs = nil
	require.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.News.APIKey = " "
	require.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Classifier.APIKey = ""
	require.Error(t, Normalize(cfg))
}

func TestNormalizeRunModeAliasAndWebhook(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	require.NoError(t, Normalize(cfg))
	require.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	require.Error(t, Normalize(cfg))

	cfg.Webhook.URL = "https://bot.example.com/telegram"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	require.NoError(t, Normalize(cfg))
}

func TestNormalizeTrimsBaseURLs(t *testing.T) {
	cfg := validConfig()
	cfg.News.BaseURL = "https://proxy.example.com/v2/"
	cfg.Classifier.BaseURL = "https://proxy.example.com/v1/"
	require.NoError(t, Normalize(cfg))
	require.Equal(t, "https://proxy.example.com/v2", cfg.News.BaseURL)
	require.Equal(t, "https://proxy.example.com/v1", cfg.Classifier.BaseURL)
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"Callback", "message"}
	require.NoError(t, Normalize(cfg))
	require.Equal(t, []string{"callback", "message"}, cfg.RateLimit.ExcludeUpdates)

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"bogus"}
	require.Error(t, Normalize(cfg))
}

func TestIsAllowed(t *testing.T) {
	access := AccessConfig{AllowedUserIDs: []int64{10, 20}}
	require.True(t, access.IsAllowed(10))
	require.False(t, access.IsAllowed(30))
}

func TestNormalizePageSizeBound(t *testing.T) {
	cfg := validConfig()
	cfg.News.PageSize = 101
	require.Error(t, Normalize(cfg))
}
