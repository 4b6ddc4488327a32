package session

// State is the persistence lifecycle of a session.
type State int

const (
	// Fresh: nothing has been loaded or generated yet.
	Fresh State = iota
	// Generated: a maze exists and differs from the stored record, if any.
	Generated
	// Persisted: the stored record matches the current world.
	Persisted
	// Restoring: a record is being applied. Only observable from collaborators
	// called during Load.
	Restoring
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Generated:
		return "generated"
	case Persisted:
		return "persisted"
	case Restoring:
		return "restoring"
	}
	return "unknown"
}

// Flag names one environment toggle.
type Flag int

const (
	Night Flag = iota
	Fog
	Flashlight
	Music
)

func (f Flag) String() string {
	switch f {
	case Night:
		return "night"
	case Fog:
		return "fog"
	case Flashlight:
		return "flashlight"
	case Music:
		return "music"
	}
	return "unknown"
}

// Event reports what a player move triggered.
type Event uint8

const (
	EventPickedUp Event = 1 << iota
	EventTouchedEnemy
	EventReachedWinZone
)

// Has reports whether e includes f.
func (e Event) Has(f Event) bool {
	return e&f != 0
}
