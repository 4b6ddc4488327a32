// Package config provides YAML-based configuration loading, size presets
// and environment overrides for the labyrinth.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-labyrinth/internal/persist"
	_ "github.com/vovakirdan/tui-labyrinth/internal/storage" // registers the sqlite backend
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

// ErrInvalidDimensions is returned by Validate for sizes outside 5..100.
var ErrInvalidDimensions = world.ErrInvalidDimensions

// Config is the full labyrinth configuration.
type Config struct {
	Maze    MazeConfig    `yaml:"maze"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// MazeConfig holds the generation parameters.
type MazeConfig struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	Seed          int64      `yaml:"seed"`
	UseRandomSeed bool       `yaml:"use_random_seed"`
	Preset        SizePreset `yaml:"preset"` // overrides width/height when set
}

// StorageConfig selects and configures the snapshot medium.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // file, sqlite, gdata, redis, mongo, memory
	Path    string      `yaml:"path"`
	Key     string      `yaml:"key"`
	AppName string      `yaml:"app_name"`
	Redis   RedisConfig `yaml:"redis"`
	Mongo   MongoConfig `yaml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// ServerConfig configures the SSH and HTTP front ends.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	HTTPAddr    string        `yaml:"http_addr"`
	RunsDB      string        `yaml:"runs_db"` // sqlite database for finished runs
}

// Params converts the maze section into generator parameters.
func (c Config) Params() world.Params {
	return world.Params{
		Width:         c.Maze.Width,
		Height:        c.Maze.Height,
		Seed:          c.Maze.Seed,
		UseRandomSeed: c.Maze.UseRandomSeed,
	}
}

// Options converts the storage section into medium options.
func (s StorageConfig) Options() persist.Options {
	return persist.Options{
		Path:            s.Path,
		Key:             s.Key,
		AppName:         s.AppName,
		RedisAddr:       s.Redis.Addr,
		RedisPassword:   s.Redis.Password,
		RedisDB:         s.Redis.DB,
		MongoURI:        s.Mongo.URI,
		MongoDatabase:   s.Mongo.Database,
		MongoCollection: s.Mongo.Collection,
	}
}

// Validate checks dimensions, preset and backend name.
func (c Config) Validate() error {
	if c.Maze.Preset != "" && !c.Maze.Preset.Valid() {
		return fmt.Errorf("config: unknown size preset %q", c.Maze.Preset)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Storage.Backend != "" && !persist.Exists(c.Storage.Backend) {
		return fmt.Errorf("config: unknown storage backend %q (have %v)", c.Storage.Backend, persist.Backends())
	}
	return nil
}
