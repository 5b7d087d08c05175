package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			BotToken:      "test_token",
			MaxRetries:    3,
			RetryDelay:    time.Second,
			UpdateTimeout: 60,
		},
		Storage: StorageConfig{
			FilePath:    "./data/test.db",
			BusyTimeout: 5 * time.Second,
		},
		Render: RenderConfig{
			Width:         8,
			Height:        8,
			Format:        "png",
			ContourGrid:   50,
			ContourLevels: 8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestLoadAndValidate(t *testing.T) {
	content := `
telegram:
  bot_token: "test_token"
  max_retries: 5
  retry_delay: 2s

storage:
  file_path: "./data/test.db"

render:
  width: 6
  contour_grid: 30

logging:
  level: "debug"
  format: "text"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Telegram.BotToken != "test_token" {
		t.Errorf("Unexpected bot token: %s", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.MaxRetries != 5 {
		t.Errorf("Unexpected max retries: %d", cfg.Telegram.MaxRetries)
	}
	if cfg.Telegram.RetryDelay != 2*time.Second {
		t.Errorf("Unexpected retry delay: %v", cfg.Telegram.RetryDelay)
	}
	if cfg.Telegram.UpdateTimeout != 60 {
		t.Errorf("Expected default update timeout 60, got %d", cfg.Telegram.UpdateTimeout)
	}
	if cfg.Render.Width != 6 || cfg.Render.Height != 8 {
		t.Errorf("Unexpected render size: %vx%v", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.ContourGrid != 30 || cfg.Render.ContourLevels != 8 {
		t.Errorf("Unexpected contour settings: %d/%d", cfg.Render.ContourGrid, cfg.Render.ContourLevels)
	}
	if cfg.Storage.BusyTimeout != 5*time.Second {
		t.Errorf("Expected default busy timeout, got %v", cfg.Storage.BusyTimeout)
	}

	if err := cfg.ValidateBot(); err != nil {
		t.Fatalf("ValidateBot failed: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("PLOTBOT_TELEGRAM_BOT_TOKEN", "from_env")
	t.Setenv("PLOTBOT_STORAGE_FILE_PATH", ":memory:")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Telegram.BotToken != "from_env" {
		t.Errorf("Expected token from env, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Storage.FilePath != ":memory:" {
		t.Errorf("Expected file path from env, got %q", cfg.Storage.FilePath)
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Fatalf("ValidateBot failed: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLOTBOT_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected env to win, got %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		bot    bool
		want   string
	}{
		{"valid", func(*Config) {}, true, ""},
		{"missing file path", func(c *Config) { c.Storage.FilePath = "" }, false, "storage.file_path"},
		{"zero width", func(c *Config) { c.Render.Width = 0 }, false, "render.width"},
		{"unknown image format", func(c *Config) { c.Render.Format = "bmp" }, false, "render.format"},
		{"tiny contour grid", func(c *Config) { c.Render.ContourGrid = 1 }, false, "render.contour_grid"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, false, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, false, "logging.format"},
		{"token not needed offline", func(c *Config) { c.Telegram.BotToken = "" }, false, ""},
		{"missing token", func(c *Config) { c.Telegram.BotToken = "" }, true, "telegram.bot_token"},
		{"no retries", func(c *Config) { c.Telegram.MaxRetries = 0 }, true, "telegram.max_retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			var err error
			if tt.bot {
				err = cfg.ValidateBot()
			} else {
				err = cfg.Validate()
			}
			if tt.want == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
