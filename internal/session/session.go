// Package session drives one playthrough: it owns the save/load state
// machine around a world.Generator and tracks the state a snapshot captures
// (actor positions, score, the held collectible and environment flags).
//
// A Session is not safe for concurrent use. Front ends that share one across
// goroutines must serialize calls.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/persist"
	"github.com/vovakirdan/tui-labyrinth/internal/snapshot"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

var (
	// ErrNoWorld is returned by operations that need a generated maze.
	ErrNoWorld = errors.New("session: no maze generated")
	// ErrNotHolding is returned when throwing without holding the collectible.
	ErrNotHolding = errors.New("session: collectible not held")
	// ErrNoCollectible is returned when there is no collectible in the world
	// to pick up or hit with.
	ErrNoCollectible = errors.New("session: no collectible in world")
)

// EnvironmentSink is the rendering/audio collaborator. It receives the whole
// flag set after a load, a reset and every toggle.
type EnvironmentSink interface {
	ApplyEnvironment(env snapshot.Environment)
}

// RunRecorder stores finished runs. *storage.Store implements it.
type RunRecorder interface {
	SaveRun(run storage.Run) (string, error)
}

// Session is the explicit handle a front end drives.
type Session struct {
	id     string
	gen    *world.Generator
	medium persist.Medium
	codec  snapshot.Codec
	env    EnvironmentSink
	runs   RunRecorder
	logger *log.Logger
	now    func() time.Time

	state       State
	score       int
	holding     bool
	spawned     bool // a collectible object exists in the world
	player      core.Vec3
	enemy       core.Vec3
	collectible core.Vec3
	environment snapshot.Environment
	started     time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithCodec selects the snapshot encoding. JSON is the default.
func WithCodec(c snapshot.Codec) Option {
	return func(s *Session) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithEnvironment sets the collaborator that receives environment flags.
func WithEnvironment(sink EnvironmentSink) Option {
	return func(s *Session) { s.env = sink }
}

// WithRuns records finished runs in r.
func WithRuns(r RunRecorder) Option {
	return func(s *Session) { s.runs = r }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns a session in the Fresh state. Call Load to enter the world.
func New(gen *world.Generator, medium persist.Medium, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		gen:         gen,
		medium:      medium,
		codec:       snapshot.JSON,
		logger:      log.New(io.Discard),
		now:         time.Now,
		environment: snapshot.DefaultEnvironment(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the session in logs and run records.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Holding reports whether the player holds the collectible.
func (s *Session) Holding() bool { return s.holding }

// Environment returns the current flag set.
func (s *Session) Environment() snapshot.Environment { return s.environment }

// Seed returns the seed of the current maze.
func (s *Session) Seed() int64 { return s.gen.Seed() }

// World returns the current generation result, or nil before Load.
func (s *Session) World() *world.Result { return s.gen.Current() }

// Generator returns the generator the session drives.
func (s *Session) Generator() *world.Generator { return s.gen }

// Position returns the last known world position of a.
func (s *Session) Position(a world.Actor) core.Vec3 {
	switch a {
	case world.Player:
		return s.player
	case world.Enemy:
		return s.enemy
	case world.WinZone:
		if res := s.gen.Current(); res != nil {
			return res.Placement.WinZone
		}
	}
	return core.Vec3{}
}

// Collectible returns the collectible position and whether it is in the
// world (false while held or before generation).
func (s *Session) Collectible() (core.Vec3, bool) {
	return s.collectible, s.spawned
}

// Snapshot captures the current world. A held collectible is stored as the
// zero position; the held flag takes precedence on restore.
func (s *Session) Snapshot() (snapshot.Snapshot, error) {
	if s.gen.Current() == nil {
		return snapshot.Snapshot{}, ErrNoWorld
	}
	params := s.gen.Params()
	snap := snapshot.Snapshot{
		Seed:                   s.gen.Seed(),
		Width:                  params.Width,
		Height:                 params.Height,
		PlayerPosition:         s.player,
		EnemyPosition:          s.enemy,
		Score:                  s.score,
		PlayerHoldsCollectible: s.holding,
		Environment:            s.environment,
	}
	if !s.holding {
		snap.CollectiblePosition = s.collectible
	}
	return snap, nil
}

// Save writes the snapshot to the medium as one whole-record replace.
func (s *Session) Save(ctx context.Context) error {
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	data, err := s.codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session: encode snapshot: %w", err)
	}
	if err := s.medium.Write(ctx, data); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	s.state = Persisted
	s.logger.Info("snapshot saved",
		"seed", snap.Seed,
		"score", snap.Score,
		"medium", s.medium.Name(),
	)
	return nil
}

// Load enters the world. With no stored record it generates a fresh maze
// from a random seed and reports restored=false. Otherwise the maze is
// regenerated from the stored seed and the stored actor state is applied.
// A record that cannot be decoded fails with snapshot.ErrCorrupt and leaves
// the session untouched.
func (s *Session) Load(ctx context.Context) (restored bool, err error) {
	data, err := s.medium.Read(ctx)
	if errors.Is(err, persist.ErrNotFound) {
		s.logger.Info("no snapshot found, starting fresh", "medium", s.medium.Name())
		return false, s.fresh()
	}
	if err != nil {
		return false, fmt.Errorf("session: load: %w", err)
	}

	snap, err := s.codec.Unmarshal(data)
	if err != nil {
		s.logger.Error("snapshot unreadable", "medium", s.medium.Name(), "err", err)
		return false, err
	}
	if err := s.Restore(snap); err != nil {
		return false, err
	}
	return true, nil
}

// Restore regenerates the maze from snap's seed at the recorded size with
// random seeding off and overwrites the generated actor state with the
// recorded one. Actor positions outside the grid fail with
// snapshot.ErrCorrupt before anything is regenerated.
func (s *Session) Restore(snap snapshot.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	width, height := s.gen.Params().Width, s.gen.Params().Height
	if snap.Sized() {
		width, height = snap.Width, snap.Height
	}
	if err := snap.Fits(width, height); err != nil {
		return err
	}
	prev := s.state
	s.state = Restoring

	if err := s.gen.SetSize(width, height); err != nil {
		s.state = prev
		return fmt.Errorf("%w: %v", snapshot.ErrCorrupt, err)
	}
	s.gen.SetSeed(snap.Seed)
	if _, err := s.gen.Generate(); err != nil {
		s.state = prev
		return fmt.Errorf("session: regenerate seed %d: %w", snap.Seed, err)
	}

	actors := s.gen.Actors()
	world.Teleport(actors, world.Player, snap.PlayerPosition)
	world.Teleport(actors, world.Enemy, snap.EnemyPosition)
	s.player = snap.PlayerPosition
	s.enemy = snap.EnemyPosition

	actors.RemoveCollectibles()
	s.holding = snap.PlayerHoldsCollectible
	if s.holding {
		s.spawned = false
		s.collectible = core.Vec3{}
	} else {
		actors.SpawnCollectible(snap.CollectiblePosition)
		s.spawned = true
		s.collectible = snap.CollectiblePosition
	}

	s.score = snap.Score
	s.environment = snap.Environment
	s.started = s.now()
	s.propagateEnvironment()

	s.state = Generated
	s.logger.Info("snapshot restored",
		"seed", snap.Seed,
		"score", snap.Score,
		"holding", snap.PlayerHoldsCollectible,
		"state", s.state,
	)
	return nil
}

// Reset deletes the stored record and starts a fresh maze with a random
// seed, zero score and default environment flags.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.medium.Delete(ctx); err != nil {
		return fmt.Errorf("session: reset: %w", err)
	}
	s.logger.Info("snapshot deleted", "medium", s.medium.Name())
	return s.fresh()
}

func (s *Session) fresh() error {
	s.gen.SetUseRandomSeed(true)
	res, err := s.gen.Generate()
	if err != nil {
		return fmt.Errorf("session: generate: %w", err)
	}
	s.adopt(res)
	s.score = 0
	s.holding = false
	s.environment = snapshot.DefaultEnvironment()
	s.started = s.now()
	s.propagateEnvironment()
	s.state = Generated
	return nil
}

// Regenerate builds a new maze with the generator's current parameters,
// keeping score and environment.
func (s *Session) Regenerate() (*world.Result, error) {
	res, err := s.gen.Generate()
	if err != nil {
		return nil, err
	}
	s.adopt(res)
	s.holding = false
	s.state = Generated
	return res, nil
}

// Advance moves on to a new maze with a fresh random seed, keeping score and
// environment. Used after the win zone is reached.
func (s *Session) Advance() (*world.Result, error) {
	s.gen.SetUseRandomSeed(true)
	res, err := s.Regenerate()
	if err != nil {
		return nil, err
	}
	s.started = s.now()
	return res, nil
}

func (s *Session) adopt(res *world.Result) {
	s.player = res.Placement.Player
	s.enemy = res.Placement.Enemy
	s.collectible = res.Placement.Collectible
	s.spawned = true
}

// AddScore adds n to the score and returns the new total.
func (s *Session) AddScore(n int) int {
	s.score += n
	s.dirty()
	return s.score
}

// SetPosition records where the host moved an actor. The host has already
// moved it; nothing is teleported.
func (s *Session) SetPosition(a world.Actor, at core.Vec3) {
	switch a {
	case world.Player:
		s.player = at
	case world.Enemy:
		s.enemy = at
	default:
		return
	}
	s.dirty()
}

// MovePlayer records the player's new position and applies what stepping
// into that cell triggers: picking up the collectible and reaching the win
// zone (which records a run). Touching the enemy is only reported; the
// front end decides how to react.
func (s *Session) MovePlayer(at core.Vec3) (Event, error) {
	res := s.gen.Current()
	if res == nil {
		return 0, ErrNoWorld
	}
	s.SetPosition(world.Player, at)
	cell := world.CellOf(at)

	var ev Event
	if s.spawned && !s.holding && cell == world.CellOf(s.collectible) {
		if err := s.PickUp(); err != nil {
			return ev, err
		}
		ev |= EventPickedUp
	}
	if cell == world.CellOf(s.enemy) {
		ev |= EventTouchedEnemy
	}
	if cell == res.Placement.WinZoneCell {
		if _, err := s.ReachWinZone(); err != nil {
			return ev, err
		}
		ev |= EventReachedWinZone
	}
	return ev, nil
}

// PickUp removes the collectible from the world and marks it held.
func (s *Session) PickUp() error {
	if s.holding || !s.spawned {
		return ErrNoCollectible
	}
	s.gen.Actors().RemoveCollectibles()
	s.holding = true
	s.spawned = false
	s.collectible = core.Vec3{}
	s.dirty()
	s.logger.Debug("collectible picked up")
	return nil
}

// Throw releases the held collectible at the given position.
func (s *Session) Throw(at core.Vec3) error {
	if !s.holding {
		return ErrNotHolding
	}
	s.gen.Actors().SpawnCollectible(at)
	s.holding = false
	s.spawned = true
	s.collectible = at
	s.dirty()
	s.logger.Debug("collectible thrown", "at", at)
	return nil
}

// HitEnemy handles the thrown collectible striking the enemy: the
// collectible respawns at a random cell drawn from the maze's stream.
func (s *Session) HitEnemy() (core.Vec3, error) {
	if !s.spawned {
		return core.Vec3{}, ErrNoCollectible
	}
	s.gen.Actors().RemoveCollectibles()
	at, err := s.gen.RespawnCollectible()
	if err != nil {
		return core.Vec3{}, err
	}
	s.collectible = at
	s.dirty()
	return at, nil
}

// ReachWinZone records a finished run when a recorder is configured and
// returns its id.
func (s *Session) ReachWinZone() (string, error) {
	res := s.gen.Current()
	if res == nil {
		return "", ErrNoWorld
	}
	s.logger.Info("win zone reached", "seed", res.Seed, "score", s.score)
	if s.runs == nil {
		return "", nil
	}
	id, err := s.runs.SaveRun(storage.Run{
		Seed:     res.Seed,
		Width:    res.Grid.Width(),
		Height:   res.Grid.Height(),
		Score:    s.score,
		Won:      true,
		Duration: s.now().Sub(s.started),
	})
	if err != nil {
		return "", fmt.Errorf("session: record run: %w", err)
	}
	return id, nil
}

// Toggle flips one environment flag, propagates the new set and returns the
// flag's new value.
func (s *Session) Toggle(f Flag) bool {
	env := &s.environment
	var v *bool
	switch f {
	case Night:
		v = &env.IsNight
	case Fog:
		v = &env.IsFoggy
	case Flashlight:
		v = &env.IsFlashlightOn
	case Music:
		v = &env.IsMusicPlaying
	default:
		return false
	}
	*v = !*v
	s.propagateEnvironment()
	s.dirty()
	s.logger.Debug("environment toggled", "flag", f, "on", *v)
	return *v
}

// SetEnvironment replaces the whole flag set.
func (s *Session) SetEnvironment(env snapshot.Environment) {
	s.environment = env
	s.propagateEnvironment()
	s.dirty()
}

// EnterDoor saves the session, as passing through the door does.
func (s *Session) EnterDoor(ctx context.Context) error {
	s.logger.Info("door entered")
	return s.Save(ctx)
}

// Quit saves the session on exit. A session that never entered a world has
// nothing to save.
func (s *Session) Quit(ctx context.Context) error {
	if s.gen.Current() == nil {
		return nil
	}
	return s.Save(ctx)
}

func (s *Session) propagateEnvironment() {
	if s.env != nil {
		s.env.ApplyEnvironment(s.environment)
	}
}

func (s *Session) dirty() {
	if s.state == Persisted {
		s.state = Generated
	}
}
