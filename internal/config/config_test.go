package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labyrinth.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Maze.Width != 10 || cfg.Maze.Height != 10 || !cfg.Maze.UseRandomSeed {
		t.Errorf("unexpected maze section: %+v", cfg.Maze)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected file backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".labyrinth")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("maze:\n  width: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Maze.Width != 7 || cfg.Maze.Height != 10 {
		t.Errorf("expected 7x10 from user config, got %dx%d", cfg.Maze.Width, cfg.Maze.Height)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
maze:
  width: 25
  height: 12
  seed: 42
  use_random_seed: false
storage:
  backend: sqlite
  path: /tmp/l.db
server:
  idle_timeout: 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Maze.Width != 25 || cfg.Maze.Height != 12 || cfg.Maze.Seed != 42 || cfg.Maze.UseRandomSeed {
		t.Errorf("unexpected maze section: %+v", cfg.Maze)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Path != "/tmp/l.db" {
		t.Errorf("unexpected storage section: %+v", cfg.Storage)
	}
	// Omitted keys keep their defaults.
	if cfg.Storage.Key != "gameData" || cfg.Server.SSHAddr != ":2222" {
		t.Errorf("defaults lost: key=%q ssh=%q", cfg.Storage.Key, cfg.Server.SSHAddr)
	}
	if cfg.Server.IdleTimeout != 5*time.Minute {
		t.Errorf("expected 5m idle timeout, got %v", cfg.Server.IdleTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
	if _, err := Load(writeConfig(t, "maze: [not, a, map]")); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoadPresetOverridesSize(t *testing.T) {
	cfg, err := Load(writeConfig(t, "maze:\n  width: 7\n  preset: large\n"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Maze.Width != 25 || cfg.Maze.Height != 25 {
		t.Errorf("expected 25x25 from preset, got %dx%d", cfg.Maze.Width, cfg.Maze.Height)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvWidth, "30")
	t.Setenv(EnvHeight, "40")
	t.Setenv(EnvSeed, "-17")
	t.Setenv(EnvBackend, "redis")
	t.Setenv(EnvRedisAddr, "localhost:6379")
	t.Setenv(EnvMongoURI, "mongodb://db")
	t.Setenv(EnvStoragePath, "/data/save.json")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Maze.Width != 30 || cfg.Maze.Height != 40 {
		t.Errorf("size not overridden: %+v", cfg.Maze)
	}
	if cfg.Maze.Seed != -17 || cfg.Maze.UseRandomSeed {
		t.Errorf("explicit seed must disable random seeding: %+v", cfg.Maze)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.Redis.Addr != "localhost:6379" ||
		cfg.Storage.Mongo.URI != "mongodb://db" || cfg.Storage.Path != "/data/save.json" {
		t.Errorf("storage not overridden: %+v", cfg.Storage)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	for _, key := range []string{EnvWidth, EnvHeight, EnvSeed} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "ten")
			cfg := Default()
			if err := ApplyEnv(&cfg); err == nil {
				t.Errorf("expected error for %s=ten", key)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset SizePreset
		side   int
	}{
		{SizeSmall, 5},
		{SizeNormal, 10},
		{SizeLarge, 25},
		{SizeHuge, 100},
		{"giant", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			if got := tt.preset.Side(); got != tt.side {
				t.Errorf("Side() = %d, want %d", got, tt.side)
			}
			cfg := Default()
			ApplyPreset(&cfg, tt.preset)
			want := tt.side
			if want == 0 {
				want = 10
			}
			if cfg.Maze.Width != want || cfg.Maze.Height != want {
				t.Errorf("ApplyPreset() gave %dx%d, want %dx%d", cfg.Maze.Width, cfg.Maze.Height, want, want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		dims    bool
	}{
		{"default", func(*Config) {}, false, false},
		{"min", func(c *Config) { c.Maze.Width, c.Maze.Height = 5, 5 }, false, false},
		{"max", func(c *Config) { c.Maze.Width, c.Maze.Height = 100, 100 }, false, false},
		{"too narrow", func(c *Config) { c.Maze.Width = 4 }, true, true},
		{"too tall", func(c *Config) { c.Maze.Height = 101 }, true, true},
		{"bad preset", func(c *Config) { c.Maze.Preset = "giant" }, true, false},
		{"bad backend", func(c *Config) { c.Storage.Backend = "floppy" }, true, false},
		{"sqlite backend", func(c *Config) { c.Storage.Backend = "sqlite" }, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.dims && !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Maze.Seed = 9
	cfg.Maze.UseRandomSeed = false
	cfg.Storage.Redis = RedisConfig{Addr: "r:1", Password: "pw", DB: 3}

	p := cfg.Params()
	if p.Width != 10 || p.Height != 10 || p.Seed != 9 || p.UseRandomSeed {
		t.Errorf("Params() = %+v", p)
	}

	o := cfg.Storage.Options()
	if o.Path != cfg.Storage.Path || o.Key != "gameData" || o.RedisAddr != "r:1" ||
		o.RedisPassword != "pw" || o.RedisDB != 3 || o.MongoDatabase != "labyrinth" {
		t.Errorf("Options() = %+v", o)
	}
}
