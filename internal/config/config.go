package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PLOTBOT_TELEGRAM_BOT_TOKEN.
const EnvPrefix = "PLOTBOT"

// Config represents the complete application configuration
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Render   RenderConfig   `mapstructure:"render"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TelegramConfig holds bot connection settings
type TelegramConfig struct {
	BotToken      string        `mapstructure:"bot_token"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	UpdateTimeout int           `mapstructure:"update_timeout"`
	Debug         bool          `mapstructure:"debug"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	FilePath    string        `mapstructure:"file_path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
	BackupDir   string        `mapstructure:"backup_dir"`
}

// RenderConfig holds image settings. Width and height are in inches.
type RenderConfig struct {
	Width         float64 `mapstructure:"width"`
	Height        float64 `mapstructure:"height"`
	Format        string  `mapstructure:"format"`
	ContourGrid   int     `mapstructure:"contour_grid"`
	ContourLevels int     `mapstructure:"contour_levels"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file, a .env file in the
// working directory and PLOTBOT_* environment variables, in increasing order
// of precedence. An empty path skips the config file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
// Every key needs a default so AutomaticEnv can override it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay", "1s")
	v.SetDefault("telegram.update_timeout", 60)
	v.SetDefault("telegram.debug", false)

	v.SetDefault("storage.file_path", "./data/plotbot.db")
	v.SetDefault("storage.busy_timeout", "5s")
	v.SetDefault("storage.backup_dir", "./data/backups")

	v.SetDefault("render.width", 8.0)
	v.SetDefault("render.height", 8.0)
	v.SetDefault("render.format", "png")
	v.SetDefault("render.contour_grid", 50)
	v.SetDefault("render.contour_levels", 8)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks the settings every command needs. The bot token is
// checked separately by ValidateBot since offline commands do not use it.
func (c *Config) Validate() error {
	if c.Storage.FilePath == "" {
		return fmt.Errorf("storage.file_path is required")
	}
	if c.Storage.BusyTimeout < 0 {
		return fmt.Errorf("storage.busy_timeout must not be negative")
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive")
	}
	validFormats := map[string]bool{"png": true, "svg": true, "jpg": true, "pdf": true}
	if !validFormats[c.Render.Format] {
		return fmt.Errorf("render.format must be one of: png, svg, jpg, pdf")
	}
	if c.Render.ContourGrid < 2 {
		return fmt.Errorf("render.contour_grid must be at least 2")
	}
	if c.Render.ContourLevels < 1 {
		return fmt.Errorf("render.contour_levels must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// ValidateBot checks the settings needed to connect to Telegram.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required (or set %s_TELEGRAM_BOT_TOKEN)", EnvPrefix)
	}
	if c.Telegram.MaxRetries < 1 {
		return fmt.Errorf("telegram.max_retries must be at least 1")
	}
	if c.Telegram.RetryDelay < 0 {
		return fmt.Errorf("telegram.retry_delay must not be negative")
	}
	if c.Telegram.UpdateTimeout < 1 {
		return fmt.Errorf("telegram.update_timeout must be at least 1 second")
	}
	return nil
}
