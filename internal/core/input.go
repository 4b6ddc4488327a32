package core

// Action represents a semantic labyrinth action, abstracted from physical
// key presses so every front end shares one vocabulary.
type Action int

const (
	ActionNone Action = iota
	ActionNorth
	ActionEast
	ActionSouth
	ActionWest
	ActionThrow // throw the held collectible ahead of the player
	ActionSave
	ActionReset // delete the save and start a new maze
	ActionToggleNight
	ActionToggleFog
	ActionToggleFlashlight
	ActionToggleMusic
	ActionHelp
	ActionQuit // save and exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionNorth:
		return "North"
	case ActionEast:
		return "East"
	case ActionSouth:
		return "South"
	case ActionWest:
		return "West"
	case ActionThrow:
		return "Throw"
	case ActionSave:
		return "Save"
	case ActionReset:
		return "Reset"
	case ActionToggleNight:
		return "ToggleNight"
	case ActionToggleFog:
		return "ToggleFog"
	case ActionToggleFlashlight:
		return "ToggleFlashlight"
	case ActionToggleMusic:
		return "ToggleMusic"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether a is one of the four movement actions.
func (a Action) IsMove() bool {
	return a >= ActionNorth && a <= ActionWest
}
