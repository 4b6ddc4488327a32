package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/persist"
	"github.com/vovakirdan/tui-labyrinth/internal/snapshot"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

// fakeWorld is a host world that owns physical bodies.
type fakeWorld struct {
	positions   map[world.Actor]core.Vec3
	collectible []core.Vec3
	detached    map[world.Actor]bool
	log         []string
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		positions: make(map[world.Actor]core.Vec3),
		detached:  make(map[world.Actor]bool),
	}
}

func (f *fakeWorld) Teleport(a world.Actor, at core.Vec3) {
	if a != world.WinZone && !f.detached[a] {
		f.log = append(f.log, "teleport-with-body:"+a.String())
	}
	f.positions[a] = at
	f.log = append(f.log, "teleport:"+a.String())
}

func (f *fakeWorld) SpawnCollectible(at core.Vec3) {
	f.collectible = append(f.collectible, at)
	f.log = append(f.log, "spawn")
}

func (f *fakeWorld) RemoveCollectibles() {
	f.collectible = nil
	f.log = append(f.log, "remove")
}

func (f *fakeWorld) DetachBody(a world.Actor) { f.detached[a] = true }
func (f *fakeWorld) AttachBody(a world.Actor) { f.detached[a] = false }

type envRecorder struct {
	calls []snapshot.Environment
}

func (e *envRecorder) ApplyEnvironment(env snapshot.Environment) {
	e.calls = append(e.calls, env)
}

func (e *envRecorder) last() snapshot.Environment {
	return e.calls[len(e.calls)-1]
}

type runRecorder struct {
	runs []storage.Run
}

func (r *runRecorder) SaveRun(run storage.Run) (string, error) {
	r.runs = append(r.runs, run)
	return "run-1", nil
}

type failingMedium struct{}

func (failingMedium) Name() string                        { return "failing" }
func (failingMedium) Delete(context.Context) error        { return nil }
func (failingMedium) Close() error                        { return nil }
func (failingMedium) Write(context.Context, []byte) error { return errors.New("disk full") }
func (failingMedium) Read(context.Context) ([]byte, error) {
	return nil, errors.New("permission denied")
}

type fixture struct {
	s     *Session
	gen   *world.Generator
	world *fakeWorld
	env   *envRecorder
}

func newFixture(t *testing.T, params world.Params, medium persist.Medium, opts ...Option) fixture {
	t.Helper()
	fw := newFakeWorld()
	gen, err := world.NewGenerator(params, world.WithActors(fw))
	require.NoError(t, err)
	env := &envRecorder{}
	opts = append([]Option{WithEnvironment(env)}, opts...)
	return fixture{s: New(gen, medium, opts...), gen: gen, world: fw, env: env}
}

func randomParams() world.Params {
	return world.Params{Width: 10, Height: 10, UseRandomSeed: true}
}

func TestLoadFreshStartsWithRandomSeed(t *testing.T) {
	f := newFixture(t, randomParams(), persist.NewMemory())
	assert.Equal(t, Fresh, f.s.State())
	assert.Nil(t, f.s.World())

	restored, err := f.s.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Equal(t, Generated, f.s.State())
	require.NotNil(t, f.s.World())
	assert.True(t, f.gen.Params().UseRandomSeed)
	assert.Equal(t, 0, f.s.Score())
	assert.False(t, f.s.Holding())

	require.Len(t, f.env.calls, 1)
	assert.Equal(t, snapshot.DefaultEnvironment(), f.env.last())

	res := f.s.World()
	assert.Equal(t, res.Placement.Player, f.s.Position(world.Player))
	assert.Equal(t, res.Placement.Enemy, f.s.Position(world.Enemy))
	assert.Equal(t, res.Placement.WinZone, f.s.Position(world.WinZone))
	pos, spawned := f.s.Collectible()
	assert.True(t, spawned)
	assert.Equal(t, res.Placement.Collectible, pos)
}

func TestSaveThenLoadRestoresSeed42World(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()

	first := newFixture(t, world.Params{Width: 10, Height: 10, Seed: 42}, medium)
	_, err := first.s.Regenerate()
	require.NoError(t, err)
	original := first.s.World()

	// Same seed twice gives the same walls.
	again, err := world.NewGenerator(world.Params{Width: 10, Height: 10, Seed: 42})
	require.NoError(t, err)
	res2, err := again.Generate()
	require.NoError(t, err)
	require.True(t, original.Grid.Equal(res2.Grid))

	first.s.AddScore(7)
	first.s.Toggle(Night)
	require.NoError(t, first.s.PickUp())
	require.NoError(t, first.s.Throw(core.V3(30, 0.5, 70)))
	require.NoError(t, first.s.Save(ctx))
	assert.Equal(t, Persisted, first.s.State())

	second := newFixture(t, randomParams(), medium)
	restored, err := second.s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, restored)

	assert.Equal(t, int64(42), second.s.Seed())
	assert.False(t, second.gen.Params().UseRandomSeed, "restore must not draw a new seed")
	assert.Equal(t, 7, second.s.Score())
	assert.True(t, second.s.Environment().IsNight)
	assert.True(t, second.s.Environment().IsMusicPlaying)
	assert.False(t, second.s.Holding())
	assert.Equal(t, []core.Vec3{core.V3(30, 0.5, 70)}, second.world.collectible)
	assert.True(t, original.Grid.Equal(second.s.World().Grid))
	assert.Equal(t, original.Door, second.s.World().Door)
	assert.True(t, second.env.last().IsNight)
	assert.Equal(t, Generated, second.s.State())
}

func TestLoadOverwritesActorPositions(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()
	snap := snapshot.Snapshot{
		Seed:                3,
		PlayerPosition:      core.V3(20, 1, 40),
		EnemyPosition:       core.V3(50, 1, 10),
		CollectiblePosition: core.V3(0, 0.5, 0),
		Environment:         snapshot.DefaultEnvironment(),
	}
	data, err := snapshot.JSON.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, medium.Write(ctx, data))

	f := newFixture(t, randomParams(), medium)
	_, err = f.s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, snap.PlayerPosition, f.world.positions[world.Player])
	assert.Equal(t, snap.EnemyPosition, f.world.positions[world.Enemy])
	assert.Equal(t, snap.PlayerPosition, f.s.Position(world.Player))
	assert.Equal(t, snap.EnemyPosition, f.s.Position(world.Enemy))
	assert.NotContains(t, f.world.log, "teleport-with-body:player")
	assert.NotContains(t, f.world.log, "teleport-with-body:enemy")
}

func TestLoadHeldCollectible(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()

	first := newFixture(t, world.Params{Width: 6, Height: 8, Seed: 11}, medium)
	_, err := first.s.Regenerate()
	require.NoError(t, err)
	require.NoError(t, first.s.PickUp())
	require.NoError(t, first.s.Save(ctx))

	raw, err := medium.Read(ctx)
	require.NoError(t, err)
	stored, err := snapshot.Decode(raw)
	require.NoError(t, err)
	assert.True(t, stored.PlayerHoldsCollectible)
	assert.True(t, stored.CollectiblePosition.Zero())

	second := newFixture(t, world.Params{Width: 6, Height: 8, UseRandomSeed: true}, medium)
	_, err = second.s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, second.s.Holding())
	assert.Empty(t, second.world.collectible, "held collectible must not be spawned")
	_, spawned := second.s.Collectible()
	assert.False(t, spawned)
}

func TestLoadRestoresRecordedSize(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()

	first := newFixture(t, world.Params{Width: 25, Height: 25, Seed: 42}, medium)
	_, err := first.s.Regenerate()
	require.NoError(t, err)
	first.s.SetPosition(world.Player, core.V3(100, 1, 50))
	require.NoError(t, first.s.Save(ctx))
	original := first.s.World()

	second := newFixture(t, world.Params{Width: 10, Height: 10, UseRandomSeed: true}, medium)
	restored, err := second.s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, restored)

	assert.Equal(t, 25, second.gen.Params().Width)
	assert.Equal(t, 25, second.gen.Params().Height)
	assert.True(t, original.Grid.Equal(second.s.World().Grid))

	cell := world.CellOf(second.s.Position(world.Player))
	assert.Equal(t, core.P(10, 5), cell)
	assert.True(t, second.s.World().Grid.InBounds(cell))
}

func TestLoadRejectsActorsOutsideGrid(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()
	snap := snapshot.Snapshot{
		Seed:                42,
		PlayerPosition:      core.V3(100, 1, 50),
		EnemyPosition:       core.V3(10, 1, 10),
		CollectiblePosition: core.V3(0, 0.5, 0),
		Environment:         snapshot.DefaultEnvironment(),
	}
	data, err := snapshot.JSON.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, medium.Write(ctx, data))

	f := newFixture(t, randomParams(), medium)
	restored, err := f.s.Load(ctx)
	require.ErrorIs(t, err, snapshot.ErrCorrupt)
	assert.False(t, restored)
	assert.Equal(t, Fresh, f.s.State())
	assert.Nil(t, f.s.World())
}

func TestLoadHeldFlagIgnoresPosition(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()
	snap := snapshot.Snapshot{
		Seed:                   42,
		Width:                  10,
		Height:                 10,
		PlayerPosition:         core.V3(10, 1, 10),
		EnemyPosition:          core.V3(20, 1, 20),
		CollectiblePosition:    core.V3(30, 0.5, 70),
		PlayerHoldsCollectible: true,
		Environment:            snapshot.DefaultEnvironment(),
	}
	data, err := snapshot.JSON.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, medium.Write(ctx, data))

	f := newFixture(t, randomParams(), medium)
	restored, err := f.s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.True(t, f.s.Holding())
	assert.Empty(t, f.world.collectible)
	_, spawned := f.s.Collectible()
	assert.False(t, spawned)
}

func TestLoadCorruptFailsHard(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"truncated", `{"seed": 4`},
		{"missing fields", `{"seed": 4, "score": 1}`},
		{"wrong type", `{"seed": "four"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			medium := persist.NewMemory()
			require.NoError(t, medium.Write(context.Background(), []byte(tc.data)))

			f := newFixture(t, randomParams(), medium)
			restored, err := f.s.Load(context.Background())
			require.ErrorIs(t, err, snapshot.ErrCorrupt)
			assert.False(t, restored)
			assert.Equal(t, Fresh, f.s.State())
			assert.Nil(t, f.s.World(), "no fallback generation")
		})
	}
}

func TestLoadMediumError(t *testing.T) {
	f := newFixture(t, randomParams(), failingMedium{})
	_, err := f.s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, persist.ErrNotFound)
	assert.Nil(t, f.s.World())
}

func TestSaveErrors(t *testing.T) {
	f := newFixture(t, randomParams(), persist.NewMemory())
	assert.ErrorIs(t, f.s.Save(context.Background()), ErrNoWorld)

	g := newFixture(t, world.Params{Width: 5, Height: 5, Seed: 1}, failingMedium{})
	_, err := g.s.Regenerate()
	require.NoError(t, err)
	err = g.s.Save(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, Generated, g.s.State())
}

func TestStateTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, randomParams(), persist.NewMemory())

	_, err := f.s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Generated, f.s.State())

	require.NoError(t, f.s.Save(ctx))
	assert.Equal(t, Persisted, f.s.State())

	f.s.AddScore(1)
	assert.Equal(t, Generated, f.s.State())

	require.NoError(t, f.s.Save(ctx))
	f.s.SetPosition(world.Player, core.V3(10, 1, 0))
	assert.Equal(t, Generated, f.s.State())

	require.NoError(t, f.s.Save(ctx))
	f.s.SetPosition(world.WinZone, core.V3(0, 1, 0))
	assert.Equal(t, Persisted, f.s.State(), "win zone is not tracked")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()
	f := newFixture(t, world.Params{Width: 10, Height: 10, Seed: 5}, medium)

	_, err := f.s.Regenerate()
	require.NoError(t, err)
	f.s.AddScore(3)
	f.s.Toggle(Fog)
	require.NoError(t, f.s.Save(ctx))

	require.NoError(t, f.s.Reset(ctx))
	_, err = medium.Read(ctx)
	assert.ErrorIs(t, err, persist.ErrNotFound)
	assert.Equal(t, 0, f.s.Score())
	assert.Equal(t, snapshot.DefaultEnvironment(), f.s.Environment())
	assert.Equal(t, snapshot.DefaultEnvironment(), f.env.last())
	assert.True(t, f.gen.Params().UseRandomSeed)
	assert.Equal(t, Generated, f.s.State())
}

func TestYAMLCodec(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()

	first := newFixture(t, world.Params{Width: 7, Height: 7, Seed: -9}, medium, WithCodec(snapshot.YAML))
	_, err := first.s.Regenerate()
	require.NoError(t, err)
	first.s.AddScore(12)
	require.NoError(t, first.s.Save(ctx))

	raw, err := medium.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.YAML, snapshot.Detect(raw))

	second := newFixture(t, world.Params{Width: 7, Height: 7, UseRandomSeed: true}, medium, WithCodec(snapshot.YAML))
	_, err = second.s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(-9), second.s.Seed())
	assert.Equal(t, 12, second.s.Score())
}

func TestToggle(t *testing.T) {
	f := newFixture(t, randomParams(), persist.NewMemory())
	_, err := f.s.Load(context.Background())
	require.NoError(t, err)

	tests := []struct {
		flag Flag
		want bool
		get  func(snapshot.Environment) bool
	}{
		{Night, true, func(e snapshot.Environment) bool { return e.IsNight }},
		{Fog, true, func(e snapshot.Environment) bool { return e.IsFoggy }},
		{Flashlight, true, func(e snapshot.Environment) bool { return e.IsFlashlightOn }},
		{Music, false, func(e snapshot.Environment) bool { return e.IsMusicPlaying }},
	}

	for _, tc := range tests {
		t.Run(tc.flag.String(), func(t *testing.T) {
			before := len(f.env.calls)
			assert.Equal(t, tc.want, f.s.Toggle(tc.flag))
			assert.Equal(t, tc.want, tc.get(f.s.Environment()))
			require.Len(t, f.env.calls, before+1)
			assert.Equal(t, tc.want, tc.get(f.env.last()))
		})
	}

	f.s.SetEnvironment(snapshot.Environment{IsFoggy: true})
	assert.Equal(t, snapshot.Environment{IsFoggy: true}, f.env.last())
}

func TestMovePlayerEvents(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	runs := &runRecorder{}
	f := newFixture(t, world.Params{Width: 8, Height: 8, Seed: 77}, persist.NewMemory(),
		WithRuns(runs), withClock(func() time.Time { return now }))

	_, err := f.s.MovePlayer(core.V3(0, 1, 0))
	require.ErrorIs(t, err, ErrNoWorld)

	require.NoError(t, f.s.Reset(context.Background()))
	res := f.s.World()
	f.s.AddScore(4)

	ev, err := f.s.MovePlayer(res.Placement.Collectible)
	require.NoError(t, err)
	assert.True(t, ev.Has(EventPickedUp))
	assert.True(t, f.s.Holding())
	assert.Empty(t, f.world.collectible)

	ev, err = f.s.MovePlayer(res.Placement.Enemy)
	require.NoError(t, err)
	assert.True(t, ev.Has(EventTouchedEnemy))
	assert.False(t, ev.Has(EventPickedUp))

	now = t0.Add(90 * time.Second)
	ev, err = f.s.MovePlayer(res.Placement.WinZone)
	require.NoError(t, err)
	assert.True(t, ev.Has(EventReachedWinZone))
	require.NotEmpty(t, runs.runs)
	run := runs.runs[len(runs.runs)-1]
	assert.Equal(t, res.Seed, run.Seed)
	assert.Equal(t, 4, run.Score)
	assert.True(t, run.Won)
	assert.Equal(t, 8, run.Width)
	assert.Equal(t, 90*time.Second, run.Duration)
}

func TestThrowAndHitEnemy(t *testing.T) {
	f := newFixture(t, world.Params{Width: 9, Height: 9, Seed: 123}, persist.NewMemory())
	_, err := f.s.Regenerate()
	require.NoError(t, err)

	assert.ErrorIs(t, f.s.Throw(core.V3(10, 0.5, 10)), ErrNotHolding)
	require.NoError(t, f.s.PickUp())
	assert.ErrorIs(t, f.s.PickUp(), ErrNoCollectible)
	_, err = f.s.HitEnemy()
	assert.ErrorIs(t, err, ErrNoCollectible)

	require.NoError(t, f.s.Throw(core.V3(10, 0.5, 10)))
	assert.False(t, f.s.Holding())
	assert.Equal(t, []core.Vec3{core.V3(10, 0.5, 10)}, f.world.collectible)

	at, err := f.s.HitEnemy()
	require.NoError(t, err)
	assert.Equal(t, []core.Vec3{at}, f.world.collectible)

	// The respawn continues the maze's stream.
	replay, err := world.NewGenerator(world.Params{Width: 9, Height: 9, Seed: 123})
	require.NoError(t, err)
	_, err = replay.Generate()
	require.NoError(t, err)
	want, err := replay.RespawnCollectible()
	require.NoError(t, err)
	assert.Equal(t, want, at)
	pos, spawned := f.s.Collectible()
	assert.True(t, spawned)
	assert.Equal(t, want, pos)
}

func TestDoorAndQuitSave(t *testing.T) {
	ctx := context.Background()
	medium := persist.NewMemory()
	f := newFixture(t, randomParams(), medium)

	require.NoError(t, f.s.Quit(ctx), "nothing to save before a world exists")
	_, err := medium.Read(ctx)
	require.ErrorIs(t, err, persist.ErrNotFound)

	_, err = f.s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, f.s.EnterDoor(ctx))
	_, err = medium.Read(ctx)
	require.NoError(t, err)

	require.NoError(t, medium.Delete(ctx))
	require.NoError(t, f.s.Quit(ctx))
	_, err = medium.Read(ctx)
	require.NoError(t, err)
}

func TestAdvanceKeepsScore(t *testing.T) {
	f := newFixture(t, world.Params{Width: 5, Height: 5, Seed: 8}, persist.NewMemory())
	_, err := f.s.Regenerate()
	require.NoError(t, err)
	f.s.AddScore(5)
	f.s.Toggle(Fog)
	require.NoError(t, f.s.PickUp())

	res, err := f.s.Advance()
	require.NoError(t, err)
	assert.True(t, f.gen.Params().UseRandomSeed)
	assert.Equal(t, res.Seed, f.s.Seed())
	assert.Equal(t, 5, f.s.Score())
	assert.True(t, f.s.Environment().IsFoggy)
	assert.False(t, f.s.Holding())
	assert.Equal(t, []core.Vec3{res.Placement.Collectible}, f.world.collectible)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "restoring", Restoring.String())
	assert.Equal(t, "flashlight", Flashlight.String())
	assert.NotEmpty(t, New(nil, persist.NewMemory()).ID())
}
