package maze

import (
	"strings"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
)

// RenderOptions decorates the ASCII map.
type RenderOptions struct {
	Marks map[core.Point]rune // single rune drawn in the middle of a cell
	Door  *Wall               // drawn as an opening marker instead of a wall
}

// String renders the bare maze with north at the top.
func (g *Grid) String() string {
	return g.Render(RenderOptions{})
}

// Render draws the maze as text, three characters per cell, north at the top.
func (g *Grid) Render(opts RenderOptions) string {
	var sb strings.Builder
	sb.Grow((4*g.width + 2) * (2*g.height + 1))

	top := g.height - 1
	sb.WriteByte('+')
	for x := 0; x < g.width; x++ {
		sb.WriteString(g.hSegment(core.P(x, top), North, opts.Door))
		sb.WriteByte('+')
	}
	sb.WriteByte('\n')

	for y := top; y >= 0; y-- {
		sb.WriteString(g.vSegment(core.P(0, y), West, opts.Door))
		for x := 0; x < g.width; x++ {
			p := core.P(x, y)
			mark := ' '
			if r, ok := opts.Marks[p]; ok {
				mark = r
			}
			sb.WriteByte(' ')
			sb.WriteRune(mark)
			sb.WriteByte(' ')
			sb.WriteString(g.vSegment(p, East, opts.Door))
		}
		sb.WriteByte('\n')

		sb.WriteByte('+')
		for x := 0; x < g.width; x++ {
			sb.WriteString(g.hSegment(core.P(x, y), South, opts.Door))
			sb.WriteByte('+')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) hSegment(p core.Point, d Direction, door *Wall) string {
	switch {
	case isDoor(door, p, d):
		return "..."
	case g.HasWall(p, d):
		return "---"
	}
	return "   "
}

func (g *Grid) vSegment(p core.Point, d Direction, door *Wall) string {
	switch {
	case isDoor(door, p, d):
		return ":"
	case g.HasWall(p, d):
		return "|"
	}
	return " "
}

// isDoor reports whether side d of p is the door, seen from either cell.
func isDoor(door *Wall, p core.Point, d Direction) bool {
	if door == nil {
		return false
	}
	if door.Cell == p && door.Side == d {
		return true
	}
	dx, dy := door.Side.Delta()
	return door.Cell.Add(dx, dy) == p && door.Side.Opposite() == d
}
