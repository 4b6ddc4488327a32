package world

import (
	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
)

// Spawn elevations in world units.
const (
	ActorElevation       = 1.0 // player, enemy and win zone stand on the floor
	CollectibleElevation = 0.5 // floating pickups
)

// Placement is the outcome of one planning pass.
type Placement struct {
	PlayerCell      core.Point
	EnemyCell       core.Point
	WinZoneCell     core.Point
	CollectibleCell core.Point

	Player      core.Vec3
	Enemy       core.Vec3
	WinZone     core.Vec3
	Collectible core.Vec3
}

// Planner draws spawn cells for a width x height maze.
type Planner struct {
	width  int
	height int
	r      maze.Rand
}

// NewPlanner returns a planner drawing from r.
func NewPlanner(width, height int, r maze.Rand) *Planner {
	return &Planner{width: width, height: height, r: r}
}

// RandomCell draws x then y uniformly.
func (p *Planner) RandomCell() core.Point {
	x := p.r.NextInt(0, p.width)
	y := p.r.NextInt(0, p.height)
	return core.P(x, y)
}

// Enemy redraws until the cell differs from exclude. A one-cell grid cannot
// satisfy that and returns exclude without drawing.
func (p *Planner) Enemy(exclude core.Point) core.Point {
	if p.width*p.height < 2 {
		return exclude
	}
	for {
		c := p.RandomCell()
		if c != exclude {
			return c
		}
	}
}

// WinZone is always the far corner and consumes no draws.
func (p *Planner) WinZone() core.Point {
	return core.P(p.width-1, p.height-1)
}

// Plan draws player, enemy and collectible cells in that order.
func (p *Planner) Plan() Placement {
	var pl Placement
	pl.PlayerCell = p.RandomCell()
	pl.EnemyCell = p.Enemy(pl.PlayerCell)
	pl.WinZoneCell = p.WinZone()
	pl.CollectibleCell = p.RandomCell()

	pl.Player = maze.ToWorld(pl.PlayerCell, ActorElevation)
	pl.Enemy = maze.ToWorld(pl.EnemyCell, ActorElevation)
	pl.WinZone = maze.ToWorld(pl.WinZoneCell, ActorElevation)
	pl.Collectible = maze.ToWorld(pl.CollectibleCell, CollectibleElevation)
	return pl
}

// CellOf maps a world position back to the nearest grid cell.
func CellOf(at core.Vec3) core.Point {
	return maze.CellOf(at)
}
