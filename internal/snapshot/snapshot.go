// Package snapshot defines the persisted world-state record and its codecs.
//
// Only the seed, the grid size and the actor state are stored. The grid
// itself is never serialized; restoring a snapshot regenerates the maze from
// the seed at the recorded size.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
)

// ErrCorrupt is returned when a record exists but does not decode into the
// schema. It is fatal for a load; no partial restore is attempted.
var ErrCorrupt = errors.New("snapshot: corrupt record")

// Environment holds the presentation toggles that survive a save.
type Environment struct {
	IsNight        bool `json:"isNight" yaml:"isNight" bson:"isNight"`
	IsFoggy        bool `json:"isFoggy" yaml:"isFoggy" bson:"isFoggy"`
	IsFlashlightOn bool `json:"isFlashlightOn" yaml:"isFlashlightOn" bson:"isFlashlightOn"`
	IsMusicPlaying bool `json:"isMusicPlaying" yaml:"isMusicPlaying" bson:"isMusicPlaying"`
}

// DefaultEnvironment is daylight, clear air, flashlight off, music on.
func DefaultEnvironment() Environment {
	return Environment{IsMusicPlaying: true}
}

// Snapshot is the complete state needed to resume a session.
type Snapshot struct {
	Seed                   int64     `json:"seed" yaml:"seed" bson:"seed"`
	Width                  int       `json:"width,omitempty" yaml:"width,omitempty" bson:"width,omitempty"`
	Height                 int       `json:"height,omitempty" yaml:"height,omitempty" bson:"height,omitempty"`
	PlayerPosition         core.Vec3 `json:"playerPosition" yaml:"playerPosition" bson:"playerPosition"`
	EnemyPosition          core.Vec3 `json:"enemyPosition" yaml:"enemyPosition" bson:"enemyPosition"`
	CollectiblePosition    core.Vec3 `json:"collectiblePosition" yaml:"collectiblePosition" bson:"collectiblePosition"`
	Score                  int       `json:"score" yaml:"score" bson:"score"`
	PlayerHoldsCollectible bool      `json:"playerHoldsCollectible" yaml:"playerHoldsCollectible" bson:"playerHoldsCollectible"`

	Environment `yaml:",inline" bson:",inline"`
}

// Validate checks the invariants a decoded record must satisfy.
func (s Snapshot) Validate() error {
	for name, v := range map[string]core.Vec3{
		"playerPosition":      s.PlayerPosition,
		"enemyPosition":       s.EnemyPosition,
		"collectiblePosition": s.CollectiblePosition,
	} {
		if !v.Finite() {
			return fmt.Errorf("%w: %s is not finite", ErrCorrupt, name)
		}
	}
	if s.Width == 0 && s.Height == 0 {
		return nil
	}
	for name, v := range map[string]int{"width": s.Width, "height": s.Height} {
		if v < maze.MinSize || v > maze.MaxSize {
			return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrCorrupt, name, v, maze.MinSize, maze.MaxSize)
		}
	}
	return nil
}

// Sized reports whether the record carries its grid size. Records without
// one are restored at the generator's configured size.
func (s Snapshot) Sized() bool {
	return s.Width != 0 || s.Height != 0
}

// Fits reports an ErrCorrupt error when an actor position lies outside a
// width x height grid. The collectible position is ignored while held.
func (s Snapshot) Fits(width, height int) error {
	check := map[string]core.Vec3{
		"playerPosition": s.PlayerPosition,
		"enemyPosition":  s.EnemyPosition,
	}
	if !s.PlayerHoldsCollectible {
		check["collectiblePosition"] = s.CollectiblePosition
	}
	for name, v := range check {
		cell := maze.CellOf(v)
		if cell.X < 0 || cell.Y < 0 || cell.X >= width || cell.Y >= height {
			return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrCorrupt, name, cell, width, height)
		}
	}
	return nil
}
