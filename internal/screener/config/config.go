package config

import (
	"golang-idx-screener/pkg/config"
)

// TradingView holds the configuration for the TradingView scanner API.
type TradingView struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Scheduler holds configuration for the scheduled auto-scan.
type Scheduler struct {
	Enabled        bool   `mapstructure:"enabled"`
	CronExpression string `mapstructure:"cron_expression"`
	Mode           string `mapstructure:"mode"`
}

// Config holds the full configuration for the screener service.
type Config struct {
	App         config.App    `mapstructure:"app"`
	Logger      config.Logger `mapstructure:"logger"`
	Redis       config.Redis  `mapstructure:"redis"`
	API         config.API    `mapstructure:"api"`
	TradingView TradingView   `mapstructure:"tradingview"`
	Telegram    Telegram      `mapstructure:"telegram"`
	Scheduler   Scheduler     `mapstructure:"scheduler"`
}

// Load loads the screener configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.TradingView.BaseURL == "" {
		cfg.TradingView.BaseURL = "https://scanner.tradingview.com"
	}
	if cfg.TradingView.MaxRequestPerMinute <= 0 {
		cfg.TradingView.MaxRequestPerMinute = 10
	}
	return &cfg, nil
}
