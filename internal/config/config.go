package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is read once at startup and
// immutable afterwards.
type Config struct {
	IntervalSec       int     `yaml:"interval_sec" envconfig:"INTERVAL_SEC"`
	OnlyUSDT          bool    `yaml:"only_usdt" envconfig:"ONLY_USDT"`
	TopN              int     `yaml:"top_n" envconfig:"TOP_N"`
	MinQuoteVolumeUSD float64 `yaml:"min_quote_volume_usd" envconfig:"MIN_QUOTE_VOLUME_USD"`

	MinVolSurge    float64 `yaml:"min_vol_surge" envconfig:"MIN_VOL_SURGE"`
	MinMomentum15m float64 `yaml:"min_momentum_15m" envconfig:"MIN_MOMENTUM_15M"`
	MaxFundingHot  float64 `yaml:"max_funding_hot" envconfig:"MAX_FUNDING_HOT"`
	MinOIGrowth    float64 `yaml:"min_oi_growth" envconfig:"MIN_OI_GROWTH"`

	SymbolDelayMS int `yaml:"symbol_delay_ms" envconfig:"SYMBOL_DELAY_MS"`

	EnableTelegram   bool   `yaml:"enable_telegram" envconfig:"ENABLE_TELEGRAM"`
	TelegramBotToken string `yaml:"telegram_bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `yaml:"telegram_chat_id" envconfig:"TELEGRAM_CHAT_ID"`

	SignalsFile      string `yaml:"signals_file" envconfig:"SIGNALS_FILE"`
	MaxSignalEntries int    `yaml:"max_signal_entries" envconfig:"MAX_SIGNAL_ENTRIES"`
	SQLitePath       string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`

	DigestCron string `yaml:"digest_cron" envconfig:"DIGEST_CRON"`
	LogLevel   string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	SpotBaseURL    string `yaml:"spot_base_url" envconfig:"BINANCE_SPOT_URL"`
	FuturesBaseURL string `yaml:"futures_base_url" envconfig:"BINANCE_FUTURES_URL"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		IntervalSec:       60,
		OnlyUSDT:          true,
		TopN:              60,
		MinQuoteVolumeUSD: 3_000_000,
		MinVolSurge:       2.0,
		MinMomentum15m:    0.2,
		MaxFundingHot:     0.05,
		MinOIGrowth:       1.0,
		SymbolDelayMS:     80,
		SignalsFile:       "data/signals.json",
		MaxSignalEntries:  5000,
		DigestCron:        "0 0 8 * * *",
		LogLevel:          "info",
		SpotBaseURL:       "https://api.binance.com",
		FuturesBaseURL:    "https://fapi.binance.com",
	}
}

// Load builds the configuration: defaults, then an optional YAML file, then
// environment variable overrides. A missing config file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.IntervalSec <= 0 {
		return fmt.Errorf("interval_sec must be positive")
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive")
	}
	if c.MaxSignalEntries <= 0 {
		return fmt.Errorf("max_signal_entries must be positive")
	}
	if c.SymbolDelayMS < 0 {
		return fmt.Errorf("symbol_delay_ms must not be negative")
	}
	if c.EnableTelegram && (c.TelegramBotToken == "" || c.TelegramChatID == "") {
		return fmt.Errorf("telegram enabled but bot token or chat id is missing")
	}
	return nil
}
