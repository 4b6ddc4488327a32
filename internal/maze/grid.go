// Package maze holds the grid model, the recursive-backtracking carver, the
// wall geometry builder and the door selector.
package maze

import (
	"fmt"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
)

// Dimension bounds accepted by the generator.
const (
	MinSize = 5
	MaxSize = 100
)

// Direction names one of the four sides of a cell.
type Direction int

const (
	North Direction = iota // +Y
	East                   // +X
	South                  // -Y
	West                   // -X
)

// Directions lists the sides in neighbour-scan order. The carver depends on
// this order for reproducibility.
var Directions = [4]Direction{North, East, South, West}

// Delta returns the grid offset of the neighbour across this side.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the side facing back from the neighbour.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Cell tracks the four wall flags of one grid unit plus the carving mark.
type Cell struct {
	North   bool
	East    bool
	South   bool
	West    bool
	Visited bool
}

// Wall reports whether the wall on side d is standing.
func (c Cell) Wall(d Direction) bool {
	switch d {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	}
	return false
}

func (c *Cell) setWall(d Direction, standing bool) {
	switch d {
	case North:
		c.North = standing
	case East:
		c.East = standing
	case South:
		c.South = standing
	case West:
		c.West = standing
	}
}

// Grid is a width x height array of cells indexed by (x, y).
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid allocates a grid with every wall standing and every cell unvisited.
// Dimensions are validated by the caller.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for i := range g.cells {
		g.cells[i] = Cell{North: true, East: true, South: true, West: true}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return g.width * g.height
}

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Cell returns a copy of the cell at p. p must be in bounds.
func (g *Grid) Cell(p core.Point) Cell {
	return g.cells[g.index(p)]
}

func (g *Grid) index(p core.Point) int {
	return p.X*g.height + p.Y
}

func (g *Grid) at(p core.Point) *Cell {
	return &g.cells[g.index(p)]
}

// HasWall reports whether the wall on side d of the cell at p is standing.
func (g *Grid) HasWall(p core.Point, d Direction) bool {
	return g.Cell(p).Wall(d)
}

// CanMove reports whether an actor at p can step through side d. Nothing
// moves from outside the grid.
func (g *Grid) CanMove(p core.Point, d Direction) bool {
	dx, dy := d.Delta()
	return g.InBounds(p) && g.InBounds(p.Add(dx, dy)) && !g.HasWall(p, d)
}

// RemoveWall clears the wall between two adjacent cells on both sides.
func (g *Grid) RemoveWall(a, b core.Point) error {
	d, ok := sideToward(a, b)
	if !ok || !g.InBounds(a) || !g.InBounds(b) {
		return fmt.Errorf("maze: cells %v and %v are not adjacent", a, b)
	}
	g.at(a).setWall(d, false)
	g.at(b).setWall(d.Opposite(), false)
	return nil
}

// sideToward returns the side of a that faces the adjacent cell b.
func sideToward(a, b core.Point) (Direction, bool) {
	for _, d := range Directions {
		dx, dy := d.Delta()
		if a.Add(dx, dy) == b {
			return d, true
		}
	}
	return 0, false
}

// CheckSymmetry verifies that every pair of adjacent cells agrees on the wall
// between them.
func (g *Grid) CheckSymmetry() error {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := core.P(x, y)
			c := g.Cell(p)
			if x+1 < g.width && c.East != g.Cell(p.Add(1, 0)).West {
				return fmt.Errorf("maze: asymmetric wall between %v and %v", p, p.Add(1, 0))
			}
			if y+1 < g.height && c.North != g.Cell(p.Add(0, 1)).South {
				return fmt.Errorf("maze: asymmetric wall between %v and %v", p, p.Add(0, 1))
			}
		}
	}
	return nil
}

// OpenPassages counts open walls between adjacent cells. A perfect maze has
// exactly Size()-1.
func (g *Grid) OpenPassages() int {
	n := 0
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			c := g.Cell(core.P(x, y))
			if x+1 < g.width && !c.East {
				n++
			}
			if y+1 < g.height && !c.North {
				n++
			}
		}
	}
	return n
}

// Reachable counts the cells reachable from start through open passages.
func (g *Grid) Reachable(start core.Point) int {
	if !g.InBounds(start) {
		return 0
	}
	seen := make([]bool, len(g.cells))
	queue := []core.Point{start}
	seen[g.index(start)] = true
	count := 0

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		count++
		for _, d := range Directions {
			if !g.CanMove(p, d) {
				continue
			}
			dx, dy := d.Delta()
			n := p.Add(dx, dy)
			if !seen[g.index(n)] {
				seen[g.index(n)] = true
				queue = append(queue, n)
			}
		}
	}
	return count
}

// Equal reports whether both grids have the same dimensions and wall layout.
// Visited marks are ignored.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, c := range g.cells {
		o := other.cells[i]
		if c.North != o.North || c.East != o.East || c.South != o.South || c.West != o.West {
			return false
		}
	}
	return true
}
