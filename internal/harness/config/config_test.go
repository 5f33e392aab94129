package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/nullmap-go/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Map.Shards != DefaultShards {
		t.Errorf("Map.Shards = %d, want %d", cfg.Map.Shards, DefaultShards)
	}
	if cfg.Map.ForbidZeroKeys {
		t.Error("ForbidZeroKeys should be false by default")
	}
	if cfg.Workload.Goroutines != DefaultGoroutines {
		t.Errorf("Workload.Goroutines = %d, want %d", cfg.Workload.Goroutines, DefaultGoroutines)
	}
	if cfg.Workload.Rounds != DefaultRounds {
		t.Errorf("Workload.Rounds = %d, want %d", cfg.Workload.Rounds, DefaultRounds)
	}
	if cfg.Workload.NullRatio != DefaultNullRatio {
		t.Errorf("Workload.NullRatio = %v, want %v", cfg.Workload.NullRatio, DefaultNullRatio)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"zero shards", func(c *Config) { c.Map.Shards = 0 }, "map.shards"},
		{"one goroutine", func(c *Config) { c.Workload.Goroutines = 1 }, "workload.goroutines"},
		{"zero rounds", func(c *Config) { c.Workload.Rounds = 0 }, "workload.rounds"},
		{"zero workers", func(c *Config) { c.Workload.Workers = 0 }, "workload.workers"},
		{"negative rate", func(c *Config) { c.Workload.Rate = -1 }, "workload.rate"},
		{"negative duration", func(c *Config) { c.Workload.Duration = -time.Second }, "workload.duration"},
		{"zero keys", func(c *Config) { c.Workload.Keys = 0 }, "workload.keys"},
		{"null ratio above one", func(c *Config) { c.Workload.NullRatio = 1.5 }, "workload.null_ratio"},
		{"metrics path", func(c *Config) {
			c.Metrics.Addr = ":9090"
			c.Metrics.Path = "metrics"
		}, "metrics.path"},
		{"negative rate limit", func(c *Config) { c.Metrics.RateLimit = -1 }, "metrics.rate_limit"},
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() error = nil, want error")
			}
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Verify() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("Verify() error = %q, want mention of %q", err, tt.wantKey)
			}
		})
	}
}

func TestVerify_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Map.Shards = 0
	cfg.Log.Level = "loud"

	err := Verify(cfg)
	if err == nil {
		t.Fatal("Verify() error = nil, want error")
	}
	for _, key := range []string{"map.shards", "log.level"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Verify() error = %q, want mention of %q", err, key)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nullmap.yaml")
	content := `
map:
  shards: 64
workload:
  duration: 30s
  null_ratio: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("NULLMAP_WORKLOAD__WORKERS", "12")

	cfg, loader, err := Load(path, map[string]any{"log.level": "debug"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loader == nil {
		t.Fatal("Load() returned nil loader")
	}

	if cfg.Map.Shards != 64 {
		t.Errorf("Map.Shards = %d, want 64", cfg.Map.Shards)
	}
	if cfg.Workload.Duration != 30*time.Second {
		t.Errorf("Workload.Duration = %v, want 30s", cfg.Workload.Duration)
	}
	if cfg.Workload.Workers != 12 {
		t.Errorf("Workload.Workers = %d, want 12", cfg.Workload.Workers)
	}
	if cfg.Workload.Rounds != DefaultRounds {
		t.Errorf("Workload.Rounds = %d, want default %d", cfg.Workload.Rounds, DefaultRounds)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_Invalid(t *testing.T) {
	_, _, err := Load("", map[string]any{"workload.null_ratio": 2.0})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nullmap.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, loader, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Reload(loader)
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}
