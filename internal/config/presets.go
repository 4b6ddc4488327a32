package config

// SizePreset represents a named maze size.
type SizePreset string

const (
	SizeSmall  SizePreset = "small"
	SizeNormal SizePreset = "normal"
	SizeLarge  SizePreset = "large"
	SizeHuge   SizePreset = "huge"
)

// Presets lists the presets from smallest to largest.
var Presets = []SizePreset{SizeSmall, SizeNormal, SizeLarge, SizeHuge}

// Side returns the square side length for a preset, or 0 if unknown.
func (p SizePreset) Side() int {
	switch p {
	case SizeSmall:
		return 5
	case SizeNormal:
		return 10
	case SizeLarge:
		return 25
	case SizeHuge:
		return 100
	default:
		return 0
	}
}

// Valid reports whether p names a known preset.
func (p SizePreset) Valid() bool {
	return p.Side() > 0
}

// ApplyPreset sets width and height from a preset. Unknown presets leave the
// config unchanged.
func ApplyPreset(cfg *Config, preset SizePreset) {
	side := preset.Side()
	if side == 0 {
		return
	}
	cfg.Maze.Preset = preset
	cfg.Maze.Width = side
	cfg.Maze.Height = side
}
