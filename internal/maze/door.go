package maze

import "errors"

// ErrDegenerateGrid reports that no wall was built, so no door can be placed.
// Callers treat it as a skipped step, not a failure.
var ErrDegenerateGrid = errors.New("maze: no walls built, door skipped")

// Door is the single breachable wall of a maze.
type Door struct {
	Index    int        // position in the built wall list
	Replaced InstanceID // wall instance swapped out
	Wall     Wall
}

// SelectDoor draws one index from the built wall list and asks sink to swap
// that instance for a door. It consumes exactly one draw when walls is
// non-empty and none otherwise.
func SelectDoor(walls []Placed, r Rand, sink GeometrySink) (Door, error) {
	if len(walls) == 0 {
		return Door{}, ErrDegenerateGrid
	}
	i := r.NextInt(0, len(walls))
	chosen := walls[i]
	if sink != nil {
		sink.PlaceDoor(chosen.ID, chosen.Wall)
	}
	return Door{Index: i, Replaced: chosen.ID, Wall: chosen.Wall}, nil
}
