package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
	"github.com/vovakirdan/tui-labyrinth/internal/snapshot"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

func generateOn(t *testing.T, b *Board, w, h int, seed int64) *world.Result {
	t.Helper()
	gen, err := world.NewGenerator(world.Params{Width: w, Height: h, Seed: seed},
		world.WithGeometry(b), world.WithActors(b))
	require.NoError(t, err)
	res, err := gen.Generate()
	require.NoError(t, err)
	return res
}

func TestBoardReceivesGeneration(t *testing.T) {
	b := NewBoard()
	res := generateOn(t, b, 6, 5, 42)

	w, h := b.Size()
	assert.Equal(t, 6*cellW+1, w)
	assert.Equal(t, 5*cellH+1, h)

	require.True(t, res.DoorPlaced)
	assert.Equal(t, len(res.Walls)-1, b.Walls(), "door replaces one wall")
	assert.True(t, b.IsDoor(res.Door.Wall.Cell, res.Door.Wall.Side))

	assert.Equal(t, res.Placement.PlayerCell, b.Cell(world.Player))
	assert.Equal(t, res.Placement.EnemyCell, b.Cell(world.Enemy))
	assert.Equal(t, res.Placement.WinZoneCell, b.Cell(world.WinZone))
	assert.Equal(t, []core.Point{res.Placement.CollectibleCell}, b.Collectibles())
	assert.False(t, b.Detached(world.Player))
}

func TestBoardClearsBetweenMazes(t *testing.T) {
	b := NewBoard()
	generateOn(t, b, 8, 8, 1)
	res := generateOn(t, b, 5, 5, 2)

	w, h := b.Size()
	assert.Equal(t, 5*cellW+1, w)
	assert.Equal(t, 5*cellH+1, h)
	assert.Equal(t, len(res.Walls)-1, b.Walls())
	assert.Len(t, b.Collectibles(), 1)
}

func TestBoardIsDoorFromEitherSide(t *testing.T) {
	b := NewBoard()
	b.PlaceFloor(core.P(0, 0), core.Vec3{})
	b.PlaceFloor(core.P(1, 1), core.Vec3{})
	b.PlaceDoor(0, maze.Wall{Cell: core.P(0, 0), Side: maze.North})

	assert.True(t, b.IsDoor(core.P(0, 0), maze.North))
	assert.True(t, b.IsDoor(core.P(0, 1), maze.South))
	assert.False(t, b.IsDoor(core.P(0, 0), maze.East))
	assert.False(t, b.IsDoor(core.P(1, 0), maze.North))
}

func TestBoardDrawsActors(t *testing.T) {
	b := NewBoard()
	generateOn(t, b, 5, 5, 42)
	w, h := b.Size()
	s := core.NewScreen(w, h)
	b.Draw(s, 0, 0)

	out := s.String()
	assert.Contains(t, out, "@")
	assert.Contains(t, out, "E")
	assert.True(t, strings.HasPrefix(out, "+"), "top-left corner is drawn")
}

func TestBoardNorthIsUp(t *testing.T) {
	b := NewBoard()
	b.PlaceFloor(core.P(0, 0), core.Vec3{})
	b.PlaceFloor(core.P(0, 1), core.Vec3{})
	b.Teleport(world.Player, maze.ToWorld(core.P(0, 1), world.ActorElevation))

	_, h := b.Size()
	s := core.NewScreen(cellW+1, h)
	b.Draw(s, 0, 0)
	assert.Contains(t, s.Row(1), "@")
	assert.NotContains(t, s.Row(3), "@")
}

func TestBoardSightRadius(t *testing.T) {
	tests := []struct {
		name string
		env  snapshot.Environment
		want int
	}{
		{"clear day", snapshot.Environment{}, -1},
		{"fog", snapshot.Environment{IsFoggy: true}, 3},
		{"night", snapshot.Environment{IsNight: true}, 1},
		{"night with torch", snapshot.Environment{IsNight: true, IsFlashlightOn: true}, 2},
		{"foggy night", snapshot.Environment{IsNight: true, IsFoggy: true}, 1},
		{"torch by day", snapshot.Environment{IsFlashlightOn: true}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			b.ApplyEnvironment(tt.env)
			assert.Equal(t, tt.want, b.sightRadius())
			assert.Equal(t, tt.env, b.Environment())
		})
	}
}

func TestBoardNightHidesFarCells(t *testing.T) {
	b := NewBoard()
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			b.PlaceFloor(core.P(x, y), core.Vec3{})
		}
	}
	b.Teleport(world.Player, maze.ToWorld(core.P(0, 0), world.ActorElevation))
	b.Teleport(world.Enemy, maze.ToWorld(core.P(5, 5), world.ActorElevation))
	b.ApplyEnvironment(snapshot.Environment{IsNight: true})

	assert.True(t, b.visible(core.P(1, 1)))
	assert.False(t, b.visible(core.P(2, 0)))

	w, h := b.Size()
	s := core.NewScreen(w, h)
	b.Draw(s, 0, 0)
	assert.NotContains(t, s.String(), "E")
}

func TestBoardMoveKeepsBodyAttached(t *testing.T) {
	b := NewBoard()
	world.Teleport(b, world.Player, maze.ToWorld(core.P(2, 2), world.ActorElevation))
	assert.False(t, b.Detached(world.Player))

	b.Move(world.Player, core.P(2, 3))
	assert.Equal(t, core.P(2, 3), b.Cell(world.Player))
	assert.False(t, b.Detached(world.Player))
}
