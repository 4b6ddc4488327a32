package maze

import (
	"fmt"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
)

// Rand is the slice of the seeded stream the maze package draws from.
type Rand interface {
	// NextInt returns a uniform integer in [min, max).
	NextInt(min, max int) int
}

// Carve turns an all-walled grid into a perfect maze with a randomized
// depth-first search from (0, 0). It returns the number of walls removed,
// which is always Size()-1.
//
// The walk uses an explicit stack instead of recursion. The top of the stack
// re-scans its unvisited neighbours after every backtrack, which reproduces
// the draw sequence of the recursive formulation exactly.
func Carve(g *Grid, r Rand) (int, error) {
	start := core.P(0, 0)
	g.at(start).Visited = true
	stack := make([]core.Point, 1, g.Size())
	stack[0] = start
	removed := 0

	var candidates [4]core.Point
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		n := g.unvisitedNeighbors(cur, &candidates)
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[r.NextInt(0, n)]
		if err := g.RemoveWall(cur, next); err != nil {
			return removed, err
		}
		removed++
		g.at(next).Visited = true
		stack = append(stack, next)
	}

	if err := g.CheckSymmetry(); err != nil {
		return removed, err
	}
	if want := g.Size() - 1; removed != want {
		return removed, fmt.Errorf("maze: carved %d passages, expected %d", removed, want)
	}
	return removed, nil
}

// unvisitedNeighbors fills buf with the in-bounds unvisited neighbours of p
// in North, East, South, West order and returns how many were found.
func (g *Grid) unvisitedNeighbors(p core.Point, buf *[4]core.Point) int {
	n := 0
	for _, d := range Directions {
		dx, dy := d.Delta()
		q := p.Add(dx, dy)
		if g.InBounds(q) && !g.at(q).Visited {
			buf[n] = q
			n++
		}
	}
	return n
}
