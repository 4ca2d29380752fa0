package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	os.Unsetenv("AKTIENDUELL_API_PORT")
	os.Unsetenv("AKTIENDUELL_LOGGING_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Data defaults
	if cfg.Data.TablePath != "stock_data.csv" {
		t.Errorf("Data.TablePath: got %q, want %q", cfg.Data.TablePath, "stock_data.csv")
	}

	// Asset defaults
	if cfg.Assets.Dir != "assets" {
		t.Errorf("Assets.Dir: got %q, want %q", cfg.Assets.Dir, "assets")
	}
	if cfg.Assets.FontRegular != "" {
		t.Errorf("Assets.FontRegular: got %q, want empty (embedded fallback)", cfg.Assets.FontRegular)
	}

	// Render defaults
	if cfg.Render.OutputDir != "static/generated" {
		t.Errorf("Render.OutputDir: got %q, want %q", cfg.Render.OutputDir, "static/generated")
	}

	// Fetch defaults
	if cfg.Fetch.BatchSize != 40 {
		t.Errorf("Fetch.BatchSize: got %d, want 40", cfg.Fetch.BatchSize)
	}
	if cfg.Fetch.Workers != 6 {
		t.Errorf("Fetch.Workers: got %d, want 6", cfg.Fetch.Workers)
	}
	if cfg.Fetch.Cooldown != 3*time.Second {
		t.Errorf("Fetch.Cooldown: got %v, want 3s", cfg.Fetch.Cooldown)
	}
	if cfg.Fetch.MaxAttempts != 3 {
		t.Errorf("Fetch.MaxAttempts: got %d, want 3", cfg.Fetch.MaxAttempts)
	}
	if cfg.Fetch.BackoffBase != 500*time.Millisecond {
		t.Errorf("Fetch.BackoffBase: got %v, want 500ms", cfg.Fetch.BackoffBase)
	}
	if cfg.Fetch.MinUpdatedQuote != 0.80 {
		t.Errorf("Fetch.MinUpdatedQuote: got %f, want 0.80", cfg.Fetch.MinUpdatedQuote)
	}

	// Janitor defaults
	if cfg.Janitor.MaxAge != 24*time.Hour {
		t.Errorf("Janitor.MaxAge: got %v, want 24h", cfg.Janitor.MaxAge)
	}
	if cfg.Janitor.Interval != time.Hour {
		t.Errorf("Janitor.Interval: got %v, want 1h", cfg.Janitor.Interval)
	}

	// API defaults
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host: got %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port: got %d, want 8080", cfg.API.Port)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "text")
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
data:
  table_path: "/data/stocks.csv"
assets:
  dir: "/srv/assets"
  font_regular: "/srv/assets/fonts/Inter-Regular.ttf"
render:
  output_dir: "/srv/out"
fetch:
  batch_size: 20
  workers: 3
  cooldown: 5s
janitor:
  max_age: 12h
api:
  port: 9090
logging:
  level: "debug"
  format: "json"
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Data.TablePath != "/data/stocks.csv" {
		t.Errorf("Data.TablePath: got %q", cfg.Data.TablePath)
	}
	if cfg.Assets.FontRegular != "/srv/assets/fonts/Inter-Regular.ttf" {
		t.Errorf("Assets.FontRegular: got %q", cfg.Assets.FontRegular)
	}
	if cfg.Fetch.BatchSize != 20 || cfg.Fetch.Workers != 3 {
		t.Errorf("Fetch: got batch=%d workers=%d", cfg.Fetch.BatchSize, cfg.Fetch.Workers)
	}
	if cfg.Fetch.Cooldown != 5*time.Second {
		t.Errorf("Fetch.Cooldown: got %v, want 5s", cfg.Fetch.Cooldown)
	}
	if cfg.Janitor.MaxAge != 12*time.Hour {
		t.Errorf("Janitor.MaxAge: got %v, want 12h", cfg.Janitor.MaxAge)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d, want 9090", cfg.API.Port)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging: got %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}

	// Unset keys keep their defaults.
	if cfg.Fetch.MaxAttempts != 3 {
		t.Errorf("Fetch.MaxAttempts default lost: got %d", cfg.Fetch.MaxAttempts)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
