package core

// Color is a semantic colour role for a screen cell. Renderers map roles to
// terminal colours, so a theme (day, night) can restyle the whole board.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorFloor
	ColorDoor
	ColorPlayer
	ColorEnemy
	ColorWinZone
	ColorCollectible
	ColorFog  // cells hidden by fog or darkness
	ColorText // status and header text
	ColorDim
)

// String returns the role name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorWall:
		return "wall"
	case ColorFloor:
		return "floor"
	case ColorDoor:
		return "door"
	case ColorPlayer:
		return "player"
	case ColorEnemy:
		return "enemy"
	case ColorWinZone:
		return "win_zone"
	case ColorCollectible:
		return "collectible"
	case ColorFog:
		return "fog"
	case ColorText:
		return "text"
	case ColorDim:
		return "dim"
	}
	return "unknown"
}
