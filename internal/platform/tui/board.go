package tui

import (
	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
	"github.com/vovakirdan/tui-labyrinth/internal/snapshot"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

// Board layout: every cell is three characters wide with wall columns
// between, and one row tall with wall rows between.
const (
	cellW = 4
	cellH = 2
)

type wallKey struct {
	cell core.Point
	side maze.Direction
}

// Board is the terminal host world. The generator and session place
// geometry and actors on it; it draws them onto a core.Screen.
//
// It implements maze.GeometrySink, world.ActorSink, world.BodyDetacher,
// world.Clearer and session.EnvironmentSink.
type Board struct {
	width, height int
	walls         map[wallKey]maze.InstanceID
	door          *wallKey
	nextID        maze.InstanceID

	actors      map[world.Actor]core.Point
	detached    map[world.Actor]bool
	collectible []core.Point
	env         snapshot.Environment
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	b := &Board{
		actors:   make(map[world.Actor]core.Point),
		detached: make(map[world.Actor]bool),
		env:      snapshot.DefaultEnvironment(),
	}
	b.Clear()
	return b
}

// Clear drops all geometry from a previous maze.
func (b *Board) Clear() {
	b.width, b.height = 0, 0
	b.walls = make(map[wallKey]maze.InstanceID)
	b.door = nil
	b.nextID = 1
}

// PlaceFloor implements maze.GeometrySink.
func (b *Board) PlaceFloor(cell core.Point, _ core.Vec3) {
	b.width = max(b.width, cell.X+1)
	b.height = max(b.height, cell.Y+1)
}

// PlaceWall implements maze.GeometrySink.
func (b *Board) PlaceWall(w maze.Wall) maze.InstanceID {
	id := b.nextID
	b.nextID++
	b.walls[wallKey{w.Cell, w.Side}] = id
	return id
}

// PlaceDoor implements maze.GeometrySink.
func (b *Board) PlaceDoor(_ maze.InstanceID, w maze.Wall) {
	k := wallKey{w.Cell, w.Side}
	delete(b.walls, k)
	b.door = &k
}

// Teleport implements world.ActorSink.
func (b *Board) Teleport(a world.Actor, at core.Vec3) {
	b.actors[a] = world.CellOf(at)
}

// SpawnCollectible implements world.ActorSink.
func (b *Board) SpawnCollectible(at core.Vec3) {
	b.collectible = append(b.collectible, world.CellOf(at))
}

// RemoveCollectibles implements world.ActorSink.
func (b *Board) RemoveCollectibles() {
	b.collectible = nil
}

// DetachBody implements world.BodyDetacher.
func (b *Board) DetachBody(a world.Actor) { b.detached[a] = true }

// AttachBody implements world.BodyDetacher.
func (b *Board) AttachBody(a world.Actor) { b.detached[a] = false }

// ApplyEnvironment implements session.EnvironmentSink.
func (b *Board) ApplyEnvironment(env snapshot.Environment) {
	b.env = env
}

// Environment returns the flags last applied.
func (b *Board) Environment() snapshot.Environment { return b.env }

// Cell returns the cell an actor stands on.
func (b *Board) Cell(a world.Actor) core.Point { return b.actors[a] }

// Move walks an actor to a neighbouring cell. Unlike Teleport it is ordinary
// movement, so the actor's body stays attached.
func (b *Board) Move(a world.Actor, to core.Point) {
	b.actors[a] = to
}

// Collectibles returns the cells holding a collectible.
func (b *Board) Collectibles() []core.Point { return b.collectible }

// Walls returns how many wall instances are standing.
func (b *Board) Walls() int { return len(b.walls) }

// IsDoor reports whether stepping from cell through side d passes the door.
func (b *Board) IsDoor(cell core.Point, d maze.Direction) bool {
	if b.door == nil {
		return false
	}
	if *b.door == (wallKey{cell, d}) {
		return true
	}
	dx, dy := d.Delta()
	return *b.door == (wallKey{cell.Add(dx, dy), d.Opposite()})
}

// Size returns the drawn board size in characters.
func (b *Board) Size() (w, h int) {
	if b.width == 0 {
		return 0, 0
	}
	return b.width*cellW + 1, b.height*cellH + 1
}

// sightRadius returns how many cells around the player are visible, or -1
// when everything is.
func (b *Board) sightRadius() int {
	r := -1
	if b.env.IsFoggy {
		r = 3
	}
	if b.env.IsNight {
		n := 1
		if b.env.IsFlashlightOn {
			n = 2
		}
		if r < 0 || n < r {
			r = n
		}
	}
	return r
}

func (b *Board) visible(p core.Point) bool {
	if !core.NewRect(0, 0, b.width, b.height).Contains(p.X, p.Y) {
		return false
	}
	r := b.sightRadius()
	if r < 0 {
		return true
	}
	pl := b.actors[world.Player]
	return max(core.Abs(p.X-pl.X), core.Abs(p.Y-pl.Y)) <= r
}

// screenPos returns the top-left character of a cell's interior.
func (b *Board) screenPos(p core.Point) (x, y int) {
	return p.X*cellW + 1, (b.height-1-p.Y)*cellH + 1
}

// Draw renders the board with its top-left corner at (ox, oy). North is up.
func (b *Board) Draw(s *core.Screen, ox, oy int) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.drawCell(s, ox, oy, core.P(x, y))
		}
	}
	b.drawActors(s, ox, oy)
}

func (b *Board) drawCell(s *core.Screen, ox, oy int, p core.Point) {
	cx, cy := b.screenPos(p)
	cx += ox
	cy += oy
	lit := b.visible(p)

	fill := ' '
	fillColor := core.ColorFloor
	if !lit {
		fillColor = core.ColorFog
		if b.env.IsFoggy && !b.env.IsNight {
			fill = '░'
		}
	}
	for i := 0; i < cellW-1; i++ {
		s.SetColored(cx+i, cy, fill, fillColor)
	}

	// North edge and the corners either side of it.
	b.drawEdge(s, cx-1, cy-1, b.hWall(p, maze.North), p, p.Add(0, 1), true)
	// West edge.
	b.drawEdge(s, cx-1, cy, b.vWall(p, maze.West), p, p.Add(-1, 0), false)
	if p.Y == 0 {
		b.drawEdge(s, cx-1, cy+1, b.hWall(p, maze.South), p, p.Add(0, -1), true)
	}
	if p.X == b.width-1 {
		b.drawEdge(s, cx+cellW-1, cy, b.vWall(p, maze.East), p, p.Add(1, 0), false)
	}
	if p.X == b.width-1 {
		b.drawCorner(s, cx+cellW-1, cy-1, p, p.Add(0, 1))
		if p.Y == 0 {
			b.drawCorner(s, cx+cellW-1, cy+1, p, p)
		}
	}
}

// wallState is what sits on one cell side.
type wallState int

const (
	open wallState = iota
	standing
	door
)

func (b *Board) side(k wallKey) wallState {
	if b.door != nil && *b.door == k {
		return door
	}
	if _, ok := b.walls[k]; ok {
		return standing
	}
	return open
}

// hWall resolves the horizontal edge on side d (North or South) of p. Built
// geometry only records north walls plus the south boundary.
func (b *Board) hWall(p core.Point, d maze.Direction) wallState {
	if d == maze.South && p.Y > 0 {
		return b.side(wallKey{p.Add(0, -1), maze.North})
	}
	return b.side(wallKey{p, d})
}

// vWall resolves the vertical edge on side d (East or West) of p.
func (b *Board) vWall(p core.Point, d maze.Direction) wallState {
	if d == maze.West && p.X > 0 {
		return b.side(wallKey{p.Add(-1, 0), maze.East})
	}
	return b.side(wallKey{p, d})
}

// drawEdge draws one wall segment starting at (x, y). Horizontal segments
// include the corner to their left.
func (b *Board) drawEdge(s *core.Screen, x, y int, st wallState, a, c core.Point, horizontal bool) {
	lit := b.visible(a) || b.visible(c)
	color := core.ColorWall
	if !lit {
		color = core.ColorFog
	}
	if horizontal {
		b.drawCorner(s, x, y, a, c)
		r := ' '
		switch st {
		case standing:
			r = '─'
		case door:
			r = '·'
			color = core.ColorDoor
		}
		if !lit {
			r = ' '
		}
		for i := 1; i < cellW; i++ {
			s.SetColored(x+i, y, r, color)
		}
		return
	}
	r := ' '
	switch st {
	case standing:
		r = '│'
	case door:
		r = '┊'
		color = core.ColorDoor
	}
	if !lit {
		r = ' '
	}
	s.SetColored(x, y, r, color)
}

func (b *Board) drawCorner(s *core.Screen, x, y int, a, c core.Point) {
	if b.visible(a) || b.visible(c) {
		s.SetColored(x, y, '+', core.ColorWall)
		return
	}
	s.SetColored(x, y, ' ', core.ColorFog)
}

var actorGlyphs = []struct {
	actor world.Actor
	glyph rune
	color core.Color
}{
	{world.WinZone, 'W', core.ColorWinZone},
	{world.Enemy, 'E', core.ColorEnemy},
	{world.Player, '@', core.ColorPlayer},
}

func (b *Board) drawActors(s *core.Screen, ox, oy int) {
	for _, p := range b.collectible {
		if b.visible(p) {
			x, y := b.screenPos(p)
			s.SetColored(ox+x+1, oy+y, 'o', core.ColorCollectible)
		}
	}
	for _, g := range actorGlyphs {
		p, ok := b.actors[g.actor]
		if !ok || !b.visible(p) {
			continue
		}
		x, y := b.screenPos(p)
		s.SetColored(ox+x+1, oy+y, g.glyph, g.color)
	}
}

// Detached reports whether an actor's body is currently detached.
func (b *Board) Detached(a world.Actor) bool { return b.detached[a] }
