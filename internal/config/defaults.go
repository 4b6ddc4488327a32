package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/labyrinth.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/labyrinth.yaml.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Width:         10,
			Height:        10,
			UseRandomSeed: true,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    "~/.labyrinth/gameData.json",
			Key:     "gameData",
			AppName: "labyrinth",
			Mongo: MongoConfig{
				Database:   "labyrinth",
				Collection: "saves",
			},
		},
		Server: ServerConfig{
			SSHAddr:     ":2222",
			HostKey:     "~/.labyrinth/ssh_host_ed25519",
			IdleTimeout: 30 * time.Minute,
			HTTPAddr:    ":8080",
			RunsDB:      "~/.labyrinth/labyrinth.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
