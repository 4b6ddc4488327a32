package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
)

// Codec converts a Snapshot to and from the bytes handed to a medium.
type Codec interface {
	Name() string
	Marshal(s Snapshot) ([]byte, error)
	// Unmarshal returns an error wrapping ErrCorrupt for anything that does
	// not decode into a complete, valid record.
	Unmarshal(data []byte) (Snapshot, error)
}

// JSON is the default codec. Output is indented.
var JSON Codec = jsonCodec{}

// YAML stores the same fields as a YAML document.
var YAML Codec = yamlCodec{}

// ByName returns the codec registered under name ("json" or "yaml").
func ByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return nil, fmt.Errorf("snapshot: unknown codec %q", name)
}

// Detect picks the codec for data: a JSON object starts with '{', anything
// else is treated as YAML.
func Detect(data []byte) Codec {
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return JSON
	}
	return YAML
}

// Decode sniffs the format and unmarshals data.
func Decode(data []byte) (Snapshot, error) {
	return Detect(data).Unmarshal(data)
}

// record mirrors Snapshot with optional fields so missing keys can be told
// apart from zero values. Width and height may be absent.
type record struct {
	Seed                   *int64     `json:"seed" yaml:"seed"`
	Width                  *int       `json:"width" yaml:"width"`
	Height                 *int       `json:"height" yaml:"height"`
	PlayerPosition         *core.Vec3 `json:"playerPosition" yaml:"playerPosition"`
	EnemyPosition          *core.Vec3 `json:"enemyPosition" yaml:"enemyPosition"`
	CollectiblePosition    *core.Vec3 `json:"collectiblePosition" yaml:"collectiblePosition"`
	Score                  *int       `json:"score" yaml:"score"`
	PlayerHoldsCollectible *bool      `json:"playerHoldsCollectible" yaml:"playerHoldsCollectible"`
	IsNight                *bool      `json:"isNight" yaml:"isNight"`
	IsFoggy                *bool      `json:"isFoggy" yaml:"isFoggy"`
	IsFlashlightOn         *bool      `json:"isFlashlightOn" yaml:"isFlashlightOn"`
	IsMusicPlaying         *bool      `json:"isMusicPlaying" yaml:"isMusicPlaying"`
}

func (r record) snapshot() (Snapshot, error) {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("seed", r.Seed != nil)
	check("playerPosition", r.PlayerPosition != nil)
	check("enemyPosition", r.EnemyPosition != nil)
	check("collectiblePosition", r.CollectiblePosition != nil)
	check("score", r.Score != nil)
	check("playerHoldsCollectible", r.PlayerHoldsCollectible != nil)
	check("isNight", r.IsNight != nil)
	check("isFoggy", r.IsFoggy != nil)
	check("isFlashlightOn", r.IsFlashlightOn != nil)
	check("isMusicPlaying", r.IsMusicPlaying != nil)
	if len(missing) > 0 {
		return Snapshot{}, fmt.Errorf("%w: missing %s", ErrCorrupt, strings.Join(missing, ", "))
	}

	s := Snapshot{
		Seed:                   *r.Seed,
		Width:                  deref(r.Width),
		Height:                 deref(r.Height),
		PlayerPosition:         *r.PlayerPosition,
		EnemyPosition:          *r.EnemyPosition,
		CollectiblePosition:    *r.CollectiblePosition,
		Score:                  *r.Score,
		PlayerHoldsCollectible: *r.PlayerHoldsCollectible,
		Environment: Environment{
			IsNight:        *r.IsNight,
			IsFoggy:        *r.IsFoggy,
			IsFlashlightOn: *r.IsFlashlightOn,
			IsMusicPlaying: *r.IsMusicPlaying,
		},
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode json: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte) (Snapshot, error) {
	var r record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return r.snapshot()
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Marshal(s Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode yaml: %w", err)
	}
	return data, nil
}

func (yamlCodec) Unmarshal(data []byte) (Snapshot, error) {
	var r record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return r.snapshot()
}
