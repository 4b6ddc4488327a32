package tui

import (
	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
)

// nextStep returns the neighbour of from on a shortest open path to target.
// It returns from when already there or when target is unreachable.
func nextStep(g *maze.Grid, from, target core.Point) core.Point {
	if from == target || !g.InBounds(from) || !g.InBounds(target) {
		return from
	}
	// Search backwards from the target so the first hit on from's neighbours
	// gives the step directly.
	prev := make(map[core.Point]core.Point, g.Size())
	prev[target] = target
	queue := []core.Point{target}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range maze.Directions {
			if !g.CanMove(p, d) {
				continue
			}
			dx, dy := d.Delta()
			n := p.Add(dx, dy)
			if _, seen := prev[n]; seen {
				continue
			}
			prev[n] = p
			if n == from {
				return p
			}
			queue = append(queue, n)
		}
	}
	return from
}
