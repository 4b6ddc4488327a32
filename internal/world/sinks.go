package world

import "github.com/vovakirdan/tui-labyrinth/internal/core"

// Actor identifies a placed gameplay object.
type Actor int

const (
	Player Actor = iota
	Enemy
	WinZone
)

func (a Actor) String() string {
	switch a {
	case Player:
		return "player"
	case Enemy:
		return "enemy"
	case WinZone:
		return "win_zone"
	}
	return "unknown"
}

// ActorSink moves actors and spawns the collectible in the host world.
type ActorSink interface {
	// Teleport places an actor at once. It must not be interpreted as
	// velocity-driven movement.
	Teleport(a Actor, at core.Vec3)
	SpawnCollectible(at core.Vec3)
	RemoveCollectibles()
}

// BodyDetacher is implemented by sinks whose actors own physical bodies. The
// body is detached around a teleport so the move is not resisted or read as a
// collision.
type BodyDetacher interface {
	DetachBody(a Actor)
	AttachBody(a Actor)
}

// Clearer is implemented by sinks that hold objects from a previous pass.
type Clearer interface {
	Clear()
}

// Teleport moves a through sink, detaching its body first when the sink
// supports it.
func Teleport(sink ActorSink, a Actor, at core.Vec3) {
	if sink == nil {
		return
	}
	if d, ok := sink.(BodyDetacher); ok {
		d.DetachBody(a)
		defer d.AttachBody(a)
	}
	sink.Teleport(a, at)
}

// NopActors discards every placement.
type NopActors struct{}

func (NopActors) Teleport(Actor, core.Vec3)  {}
func (NopActors) SpawnCollectible(core.Vec3) {}
func (NopActors) RemoveCollectibles()        {}
