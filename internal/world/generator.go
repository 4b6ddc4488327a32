package world

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
	"github.com/vovakirdan/tui-labyrinth/internal/rng"
)

// Result describes the world produced by one generation pass.
type Result struct {
	Seed       int64
	Grid       *maze.Grid
	Walls      []maze.Placed
	Door       maze.Door
	DoorPlaced bool
	Placement  Placement
}

// Marks returns the actor cells keyed for maze.RenderOptions.
func (r *Result) Marks() map[core.Point]rune {
	return map[core.Point]rune{
		r.Placement.WinZoneCell:     'W',
		r.Placement.CollectibleCell: 'o',
		r.Placement.EnemyCell:       'E',
		r.Placement.PlayerCell:      'P',
	}
}

// String renders the maze with actors and door.
func (r *Result) String() string {
	opts := maze.RenderOptions{Marks: r.Marks()}
	if r.DoorPlaced {
		opts.Door = &r.Door.Wall
	}
	return r.Grid.Render(opts)
}

// Generator owns the seeded stream and the current grid. It is the explicit
// handle passed to whatever orchestrates a session; there is no global
// instance. Not safe for concurrent use.
type Generator struct {
	params   Params
	src      *rng.Source
	current  *Result
	geometry maze.GeometrySink
	actors   ActorSink
	logger   *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithGeometry routes wall and door geometry to sink.
func WithGeometry(sink maze.GeometrySink) Option {
	return func(g *Generator) { g.geometry = sink }
}

// WithActors routes actor placement to sink.
func WithActors(sink ActorSink) Option {
	return func(g *Generator) {
		if sink != nil {
			g.actors = sink
		}
	}
}

// WithLogger sets the logger used for generation events.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator validates params and returns a generator that has not yet
// produced a maze.
func NewGenerator(params Params, opts ...Option) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		params: params,
		src:    rng.New(params.Seed),
		actors: NopActors{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g, nil
}

// Params returns the current generation parameters. After a random-seed
// pass Seed holds the drawn seed.
func (g *Generator) Params() Params {
	return g.params
}

// Seed returns the seed of the most recent pass, or the configured seed.
func (g *Generator) Seed() int64 {
	return g.params.Seed
}

// SetSeed fixes the seed for the next pass and turns random seeding off.
func (g *Generator) SetSeed(seed int64) {
	g.params.Seed = seed
	g.params.UseRandomSeed = false
}

// SetSize changes the grid dimensions used by the next pass.
func (g *Generator) SetSize(width, height int) error {
	next := g.params
	next.Width, next.Height = width, height
	if err := next.Validate(); err != nil {
		return err
	}
	g.params = next
	return nil
}

// SetUseRandomSeed toggles drawing a fresh seed at generation time.
func (g *Generator) SetUseRandomSeed(on bool) {
	g.params.UseRandomSeed = on
}

// Actors returns the sink actors are placed through.
func (g *Generator) Actors() ActorSink {
	return g.actors
}

// Current returns the result of the last pass, or nil.
func (g *Generator) Current() *Result {
	return g.current
}

// Generate runs a full pass. Draw order is fixed: carving, door, player,
// enemy, collectible. Replaying a seed reproduces every draw.
func (g *Generator) Generate() (*Result, error) {
	if c, ok := g.geometry.(Clearer); ok {
		c.Clear()
	}
	g.actors.RemoveCollectibles()

	if g.params.UseRandomSeed {
		g.params.Seed = rng.RandomSeed()
	}
	g.src.Init(g.params.Seed)

	grid := maze.NewGrid(g.params.Width, g.params.Height)
	if _, err := maze.Carve(grid, g.src); err != nil {
		return nil, fmt.Errorf("world: carve: %w", err)
	}

	res := &Result{Seed: g.params.Seed, Grid: grid}
	res.Walls = maze.Build(grid, g.geometry)

	door, err := maze.SelectDoor(res.Walls, g.src, g.geometry)
	switch {
	case err == nil:
		res.Door = door
		res.DoorPlaced = true
	case errors.Is(err, maze.ErrDegenerateGrid):
		g.logger.Warn("door skipped", "reason", err)
	default:
		return nil, err
	}

	planner := NewPlanner(grid.Width(), grid.Height(), g.src)
	res.Placement = planner.Plan()

	Teleport(g.actors, Player, res.Placement.Player)
	Teleport(g.actors, Enemy, res.Placement.Enemy)
	Teleport(g.actors, WinZone, res.Placement.WinZone)
	g.actors.SpawnCollectible(res.Placement.Collectible)

	g.current = res
	g.logger.Info("maze generated",
		"seed", res.Seed,
		"width", grid.Width(),
		"height", grid.Height(),
		"walls", len(res.Walls),
		"door", res.Door.Wall.Cell,
	)
	return res, nil
}

// RespawnCollectible places a new collectible at a random cell, continuing
// the current stream after the generation draws.
func (g *Generator) RespawnCollectible() (core.Vec3, error) {
	if g.current == nil {
		return core.Vec3{}, errors.New("world: no maze generated")
	}
	planner := NewPlanner(g.params.Width, g.params.Height, g.src)
	cell := planner.RandomCell()
	at := maze.ToWorld(cell, CollectibleElevation)
	g.actors.SpawnCollectible(at)
	g.logger.Debug("collectible respawned", "cell", cell)
	return at, nil
}
