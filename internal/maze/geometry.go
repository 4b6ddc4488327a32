package maze

import "github.com/vovakirdan/tui-labyrinth/internal/core"

// World-space layout constants. One grid unit spans CellSize world units;
// downstream geometry and navigation consumers rely on this spacing.
const (
	CellSize      = 10.0
	WallHeight    = 5.0
	WallThickness = 0.5
)

// ToWorld maps a grid cell to the world position of its centre at the given
// elevation: (x*CellSize, elevation, y*CellSize).
func ToWorld(p core.Point, elevation float64) core.Vec3 {
	return core.V3(float64(p.X)*CellSize, elevation, float64(p.Y)*CellSize)
}

// CellOf is the inverse of ToWorld: it maps a world position to the nearest
// grid cell, ignoring elevation.
func CellOf(at core.Vec3) core.Point {
	return core.P(roundDiv(at.X), roundDiv(at.Z))
}

func roundDiv(v float64) int {
	q := v / CellSize
	if q < 0 {
		return int(q - 0.5)
	}
	return int(q + 0.5)
}

// Wall is one standing wall segment as instantiated in the world.
type Wall struct {
	Cell      core.Point
	Side      Direction
	Position  core.Vec3
	RotationY float64 // degrees about the up axis

	// Front and Back name the material applied to each face.
	Front Direction
	Back  Direction
}

// InstanceID identifies a wall object reported back by a GeometrySink.
type InstanceID int

// Placed pairs a built wall with the instance the sink created for it.
type Placed struct {
	ID   InstanceID
	Wall Wall
}

// GeometrySink instantiates floors, walls and the door. The generator only
// decides where geometry goes; how it is drawn is up to the sink.
type GeometrySink interface {
	PlaceFloor(cell core.Point, at core.Vec3)
	PlaceWall(w Wall) InstanceID
	// PlaceDoor swaps the wall instance for a passable door at the same
	// transform.
	PlaceDoor(replaced InstanceID, w Wall)
}

// Build walks the carved grid and reports every standing wall to sink.
//
// Each cell contributes its north and east walls; cells on the south row and
// the west column additionally contribute the outer boundary on that side.
// Cells are visited column by column (x, then y). The returned order is the
// index space the door draw uses.
func Build(g *Grid, sink GeometrySink) []Placed {
	if sink == nil {
		sink = &countingSink{}
	}
	placed := make([]Placed, 0, 2*g.Size()+g.width+g.height)

	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := core.P(x, y)
			c := g.Cell(p)
			sink.PlaceFloor(p, ToWorld(p, 0))

			for _, d := range Directions {
				if !c.Wall(d) || !builtSide(p, d) {
					continue
				}
				w := wallFor(p, d)
				placed = append(placed, Placed{ID: sink.PlaceWall(w), Wall: w})
			}
		}
	}
	return placed
}

// builtSide reports whether the cell at p owns the geometry for side d.
// Interior south and west walls belong to the neighbouring cell.
func builtSide(p core.Point, d Direction) bool {
	switch d {
	case South:
		return p.Y == 0
	case West:
		return p.X == 0
	}
	return true
}

func wallFor(p core.Point, d Direction) Wall {
	const inset = CellSize/2 - WallThickness/2
	pos := ToWorld(p, WallHeight/2)
	w := Wall{Cell: p, Side: d, Front: d, Back: d.Opposite()}

	switch d {
	case North:
		pos.Z += inset
	case East:
		pos.X += inset
		w.RotationY = 90
	case South:
		pos.Z -= inset
	case West:
		pos.X -= inset
		w.RotationY = 90
	}
	w.Position = pos
	return w
}

// countingSink hands out sequential instance IDs and draws nothing.
type countingSink struct {
	next InstanceID
}

func (s *countingSink) PlaceFloor(core.Point, core.Vec3) {}

func (s *countingSink) PlaceWall(Wall) InstanceID {
	id := s.next
	s.next++
	return id
}

func (s *countingSink) PlaceDoor(InstanceID, Wall) {}
