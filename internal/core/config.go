package core

// RuntimeConfig contains the settings a viewer is started with.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Ticks per second driving the enemy and status timers
	// EnemyEvery is the number of ticks between enemy steps. Zero keeps the
	// enemy still.
	EnemyEvery int
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   10,
		EnemyEvery: 8,
	}
}
