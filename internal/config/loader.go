package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override YAML values.
const (
	EnvWidth       = "LABYRINTH_WIDTH"
	EnvHeight      = "LABYRINTH_HEIGHT"
	EnvSeed        = "LABYRINTH_SEED"
	EnvPreset      = "LABYRINTH_PRESET"
	EnvBackend     = "LABYRINTH_BACKEND"
	EnvStoragePath = "LABYRINTH_STORAGE_PATH"
	EnvRedisAddr   = "LABYRINTH_REDIS_ADDR"
	EnvMongoURI    = "LABYRINTH_MONGO_URI"
)

// Load loads the labyrinth configuration and applies environment overrides.
// Search order: customPath -> ~/.labyrinth/config.yaml -> ./configs/labyrinth.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadYAML(customPath)
	if err != nil {
		return cfg, err
	}

	// .env is optional
	_ = godotenv.Load()

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Maze.Preset != "" {
		ApplyPreset(&cfg, cfg.Maze.Preset)
	}
	return cfg, nil
}

func loadYAML(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/labyrinth.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default, so omitted keys keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with LABYRINTH_* variables. Setting a seed turns
// random seeding off.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvWidth); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvWidth, err)
		}
		cfg.Maze.Width = n
	}
	if v, ok := os.LookupEnv(EnvHeight); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvHeight, err)
		}
		cfg.Maze.Height = n
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvSeed, err)
		}
		cfg.Maze.Seed = seed
		cfg.Maze.UseRandomSeed = false
	}
	if v, ok := os.LookupEnv(EnvPreset); ok {
		cfg.Maze.Preset = SizePreset(v)
	}
	if v, ok := os.LookupEnv(EnvBackend); ok {
		cfg.Storage.Backend = v
	}
	if v, ok := os.LookupEnv(EnvStoragePath); ok {
		cfg.Storage.Path = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok {
		cfg.Storage.Redis.Addr = v
	}
	if v, ok := os.LookupEnv(EnvMongoURI); ok {
		cfg.Storage.Mongo.URI = v
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".labyrinth", filename)
}
