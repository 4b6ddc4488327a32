// Package world runs one generation pass: it carves the maze, reports wall
// geometry, picks the door and places the actors, all from one seeded stream.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-labyrinth/internal/maze"
)

// ErrInvalidDimensions is returned when width or height falls outside
// [maze.MinSize, maze.MaxSize].
var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// Params are the generation parameters exposed to callers.
type Params struct {
	Width         int
	Height        int
	Seed          int64
	UseRandomSeed bool // draw a fresh seed at generation time and overwrite Seed
}

// DefaultParams returns a 10x10 maze with a random seed.
func DefaultParams() Params {
	return Params{Width: 10, Height: 10, UseRandomSeed: true}
}

// Validate rejects dimensions outside the supported range.
func (p Params) Validate() error {
	if p.Width < maze.MinSize || p.Width > maze.MaxSize {
		return fmt.Errorf("%w: width %d not in [%d, %d]", ErrInvalidDimensions, p.Width, maze.MinSize, maze.MaxSize)
	}
	if p.Height < maze.MinSize || p.Height > maze.MaxSize {
		return fmt.Errorf("%w: height %d not in [%d, %d]", ErrInvalidDimensions, p.Height, maze.MinSize, maze.MaxSize)
	}
	return nil
}
