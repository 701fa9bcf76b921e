package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Input      InputConfig      `envconfig:"INPUT"`
	Pipeline   PipelineConfig   `envconfig:"PIPELINE"`
	Model      ModelConfig      `envconfig:"MODEL"`
	Export     ExportConfig     `envconfig:"EXPORT"`
	Database   DatabaseConfig   `envconfig:"DATABASE"`
	ClickHouse ClickHouseConfig `envconfig:"CLICKHOUSE"`
	Telegram   TelegramConfig   `envconfig:"TELEGRAM"`
	Logging    LoggingConfig    `envconfig:"LOGGING"`
}

// InputConfig points at the already-fetched collaborator batches.
type InputConfig struct {
	PostsFile string `envconfig:"INPUT_POSTS_FILE" default:"data/reddit_posts.json"`
	TicksFile string `envconfig:"INPUT_TICKS_FILE" default:"data/bitcoin_prices.json"`
}

// PipelineConfig represents aggregation and prediction parameters
type PipelineConfig struct {
	Asset      string        `envconfig:"PIPELINE_ASSET" default:"BTC"`
	RecentDays int           `envconfig:"PIPELINE_RECENT_DAYS" default:"2"`
	TimeSteps  int           `envconfig:"PIPELINE_TIME_STEPS" default:"2"`
	Interval   time.Duration `envconfig:"PIPELINE_INTERVAL" default:"0"` // 0 = run once
}

// ModelConfig points at the externally fitted scaler and model sidecars.
type ModelConfig struct {
	ScalerFile   string   `envconfig:"MODEL_SCALER_FILE" default:"model/scaler.json"`
	WeightsFile  string   `envconfig:"MODEL_WEIGHTS_FILE" default:"model/weights.json"`
	FeatureOrder []string `envconfig:"MODEL_FEATURE_ORDER" required:"false"`
}

// ExportConfig represents optional CSV export destinations
type ExportConfig struct {
	Enabled     bool   `envconfig:"EXPORT_ENABLED" default:"false"`
	RedditFile  string `envconfig:"EXPORT_REDDIT_FILE" default:"out/reddit_daily.csv"`
	PriceFile   string `envconfig:"EXPORT_PRICE_FILE" default:"out/price_daily.csv"`
	FeatureFile string `envconfig:"EXPORT_FEATURE_FILE" default:"out/features.csv"`
}

// DatabaseConfig represents prediction history database parameters
type DatabaseConfig struct {
	Enabled        bool   `envconfig:"DB_ENABLED" default:"false"`
	Host           string `envconfig:"DB_HOST" default:"localhost"`
	Port           int    `envconfig:"DB_PORT" default:"5432"`
	User           string `envconfig:"DB_USER" default:"predictor"`
	Password       string `envconfig:"DB_PASSWORD" required:"false"`
	Name           string `envconfig:"DB_NAME" default:"predictor"`
	SSLMode        string `envconfig:"DB_SSL_MODE" default:"disable"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_PATH" default:"migrations"`
}

// ClickHouseConfig represents tick/feature archival parameters
type ClickHouseConfig struct {
	Enabled bool   `envconfig:"CLICKHOUSE_ENABLED" default:"false"`
	DSN     string `envconfig:"CLICKHOUSE_DSN" default:"clickhouse://localhost:9000/predictor"`
}

// TelegramConfig represents prediction alert parameters
type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"false"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" required:"false"`
}

// LoggingConfig represents logging parameters
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" required:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Pipeline.RecentDays < 2 {
		return fmt.Errorf("PIPELINE_RECENT_DAYS must be at least 2, got %d", c.Pipeline.RecentDays)
	}
	if c.Pipeline.TimeSteps < 1 {
		return fmt.Errorf("PIPELINE_TIME_STEPS must be at least 1, got %d", c.Pipeline.TimeSteps)
	}
	if c.Pipeline.TimeSteps > c.Pipeline.RecentDays {
		return fmt.Errorf("PIPELINE_TIME_STEPS (%d) cannot exceed PIPELINE_RECENT_DAYS (%d)",
			c.Pipeline.TimeSteps, c.Pipeline.RecentDays)
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
