package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/rng"
)

// recordingSink keeps every call so tests can inspect the built world.
type recordingSink struct {
	floors []core.Vec3
	walls  []Wall
	doors  []InstanceID
}

func (s *recordingSink) PlaceFloor(_ core.Point, at core.Vec3) {
	s.floors = append(s.floors, at)
}

func (s *recordingSink) PlaceWall(w Wall) InstanceID {
	s.walls = append(s.walls, w)
	return InstanceID(100 + len(s.walls) - 1)
}

func (s *recordingSink) PlaceDoor(id InstanceID, _ Wall) {
	s.doors = append(s.doors, id)
}

func TestToWorld(t *testing.T) {
	assert.Equal(t, core.V3(30, 0.5, 70), ToWorld(core.P(3, 7), 0.5))
	assert.Equal(t, core.V3(0, 1, 0), ToWorld(core.P(0, 0), 1))
}

func TestBuildUncarvedGrid(t *testing.T) {
	g := NewGrid(5, 5)
	sink := &recordingSink{}
	placed := Build(g, sink)

	// Every cell builds north and east, plus the south row and west column.
	assert.Len(t, placed, 2*25+5+5)
	assert.Len(t, sink.floors, 25)
	assert.Len(t, sink.walls, len(placed))

	// First cell is (0,0): north, east, south boundary, west boundary.
	require.GreaterOrEqual(t, len(placed), 4)
	sides := []Direction{placed[0].Wall.Side, placed[1].Wall.Side, placed[2].Wall.Side, placed[3].Wall.Side}
	assert.Equal(t, []Direction{North, East, South, West}, sides)
	assert.Equal(t, InstanceID(100), placed[0].ID)
}

func TestBuildCarvedWallCount(t *testing.T) {
	for _, seed := range []int64{1, 42, 777} {
		g := NewGrid(10, 8)
		_, err := Carve(g, rng.New(seed))
		require.NoError(t, err)

		placed := Build(g, nil)

		interior := 10*(8-1) + 8*(10-1)
		closedInterior := interior - (g.Size() - 1)
		boundary := 2*10 + 2*8
		assert.Equal(t, closedInterior+boundary, len(placed), "seed %d", seed)
	}
}

func TestWallTransforms(t *testing.T) {
	tests := []struct {
		name string
		cell core.Point
		side Direction
		pos  core.Vec3
		rot  float64
	}{
		{"north", core.P(2, 3), North, core.V3(20, 2.5, 34.75), 0},
		{"east", core.P(2, 3), East, core.V3(24.75, 2.5, 30), 90},
		{"south boundary", core.P(4, 0), South, core.V3(40, 2.5, -4.75), 0},
		{"west boundary", core.P(0, 6), West, core.V3(-4.75, 2.5, 60), 90},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := wallFor(tc.cell, tc.side)
			assert.InDelta(t, tc.pos.X, w.Position.X, 1e-9)
			assert.InDelta(t, tc.pos.Y, w.Position.Y, 1e-9)
			assert.InDelta(t, tc.pos.Z, w.Position.Z, 1e-9)
			assert.Equal(t, tc.rot, w.RotationY)
			assert.Equal(t, tc.side, w.Front)
			assert.Equal(t, tc.side.Opposite(), w.Back)
		})
	}
}

func TestSelectDoor(t *testing.T) {
	g := NewGrid(5, 5)
	_, err := Carve(g, rng.New(42))
	require.NoError(t, err)

	sink := &recordingSink{}
	placed := Build(g, sink)

	src := rng.New(9)
	door, err := SelectDoor(placed, src, sink)
	require.NoError(t, err)

	assert.Equal(t, 1, src.Draws())
	require.Len(t, sink.doors, 1, "exactly one door")
	assert.Equal(t, placed[door.Index].ID, door.Replaced)
	assert.Equal(t, door.Replaced, sink.doors[0])
	assert.Equal(t, placed[door.Index].Wall, door.Wall)
}

func TestSelectDoorDeterministic(t *testing.T) {
	placed := Build(NewGrid(6, 6), nil)

	a, err := SelectDoor(placed, rng.New(5), nil)
	require.NoError(t, err)
	b, err := SelectDoor(placed, rng.New(5), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectDoorEmptyList(t *testing.T) {
	src := rng.New(1)
	sink := &recordingSink{}

	_, err := SelectDoor(nil, src, sink)
	assert.ErrorIs(t, err, ErrDegenerateGrid)
	assert.Zero(t, src.Draws(), "no draw when there is nothing to pick")
	assert.Empty(t, sink.doors)
}
