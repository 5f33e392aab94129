package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Map struct {
		Shards int `koanf:"shards"`
	} `koanf:"map"`
	Workload struct {
		Goroutines int     `koanf:"goroutines"`
		NullRatio  float64 `koanf:"null_ratio"`
	} `koanf:"workload"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nullmap.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.FilePath() != "/path/to/config.yaml" {
		t.Errorf("FilePath() = %q, want %q", l.FilePath(), "/path/to/config.yaml")
	}
}

func TestLoader_Load_File(t *testing.T) {
	path := writeConfig(t, `
map:
  shards: 64
workload:
  goroutines: 8
  null_ratio: 0.25
log:
  level: debug
`)

	var cfg testConfig
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Map.Shards != 64 {
		t.Errorf("Shards = %d, want 64", cfg.Map.Shards)
	}
	if cfg.Workload.Goroutines != 8 {
		t.Errorf("Goroutines = %d, want 8", cfg.Workload.Goroutines)
	}
	if cfg.Workload.NullRatio != 0.25 {
		t.Errorf("NullRatio = %v, want 0.25", cfg.Workload.NullRatio)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	var cfg testConfig
	err := NewLoader(WithConfigFile("/nonexistent/nullmap.yaml")).Load(&cfg)
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoader_Load_Env(t *testing.T) {
	t.Setenv("NULLMAP_WORKLOAD__NULL_RATIO", "0.5")
	t.Setenv("NULLMAP_LOG__LEVEL", "warn")

	l := NewLoader()
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := l.GetString("workload.null_ratio"); got != "0.5" {
		t.Errorf("GetString(workload.null_ratio) = %q, want %q", got, "0.5")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoader_Load_EnvCustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_MAP__SHARDS", "32")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := l.GetInt("map.shards"); got != 32 {
		t.Errorf("GetInt(map.shards) = %d, want 32", got)
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeConfig(t, `
map:
  shards: 64
workload:
  goroutines: 8
log:
  level: info
`)
	t.Setenv("NULLMAP_WORKLOAD__GOROUTINES", "16")

	l := NewLoader(
		WithDefaults(map[string]any{
			"map.shards":          16,
			"workload.goroutines": 4,
			"workload.null_ratio": 0.1,
			"log.level":           "error",
		}),
		WithConfigFile(path),
		WithOverrides(map[string]any{"log.level": "debug"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Map.Shards != 64 {
		t.Errorf("Shards = %d, want 64 (file should override default)", cfg.Map.Shards)
	}
	if cfg.Workload.Goroutines != 16 {
		t.Errorf("Goroutines = %d, want 16 (env should override file)", cfg.Workload.Goroutines)
	}
	if cfg.Workload.NullRatio != 0.1 {
		t.Errorf("NullRatio = %v, want 0.1 (default should remain)", cfg.Workload.NullRatio)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want %q (override should win)", cfg.Log.Level, "debug")
	}
}

func TestLoader_Reload(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")

	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var reloaded testConfig
	if err := l.Reload(&reloaded); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if reloaded.Log.Level != "debug" {
		t.Errorf("Level after Reload() = %q, want %q", reloaded.Log.Level, "debug")
	}
}

func TestLoader_Reload_KeepsPreviousOnError(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")

	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("log: [unclosed\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var reloaded testConfig
	if err := l.Reload(&reloaded); err == nil {
		t.Fatal("Reload() error = nil, want parse error")
	}
	if got := l.GetString("log.level"); got != "info" {
		t.Errorf("GetString(log.level) = %q, want %q", got, "info")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{
		"map": map[string]any{"shards": 8},
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if got := l.GetInt("map.shards"); got != 8 {
		t.Errorf("GetInt(map.shards) = %d, want 8", got)
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") error = %v, want nil", err)
	}
}

func TestLoader_IsLoaded(t *testing.T) {
	l := NewLoader()
	if l.IsLoaded() {
		t.Error("IsLoaded() = true before Load()")
	}

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false after Load()")
	}
}

func TestLoader_AllAndKeys(t *testing.T) {
	l := NewLoader(WithOverrides(map[string]any{
		"map.shards": 4,
		"log.level":  "info",
	}))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	all := l.All()
	if _, ok := all["map.shards"]; !ok {
		t.Errorf("All() = %v, want map.shards key", all)
	}

	keys := l.Keys()
	found := false
	for _, k := range keys {
		if k == "log.level" {
			found = true
		}
	}
	if !found {
		t.Errorf("Keys() = %v, want log.level", keys)
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := mapProvider(nil).ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v, want %v", err, ErrReadBytesNotSupported)
	}
}
