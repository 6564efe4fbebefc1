// Package config provides YAML-based game configuration loading and
// difficulty management for beer pong.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// BeerPongConfig contains all tunables of a beer pong session.
type BeerPongConfig struct {
	Placement  PlacementConfig  `yaml:"placement"`
	Rack       RackConfig       `yaml:"rack"`
	Ball       BallConfig       `yaml:"ball"`
	Boundary   BoundaryConfig   `yaml:"boundary"`
	Throw      ThrowConfig      `yaml:"throw"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlacementConfig controls where the rack and ball land on the table.
type PlacementConfig struct {
	EdgeMargin          float64 `yaml:"edge_margin"`           // Distance kept from the short edges
	SurfaceHeightOffset float64 `yaml:"surface_height_offset"` // Clearance added to a raycast hit
	UseRaycast          bool    `yaml:"use_raycast"`
	FallbackHeight      float64 `yaml:"fallback_height"` // Used when the raycast misses
	RaycastStart        float64 `yaml:"raycast_start"`   // Height above the anchor the ray starts from
	RaycastDistance     float64 `yaml:"raycast_distance"`
	Corral              bool    `yaml:"corral"`
	Scoreboard          bool    `yaml:"scoreboard"`
}

// RackConfig defines cup geometry.
type RackConfig struct {
	CupDiameter  float64 `yaml:"cup_diameter"`
	SpacingRatio float64 `yaml:"spacing_ratio"`
	InitialCups  int     `yaml:"initial_cups"`
	CupHeight    float64 `yaml:"cup_height"`
	SensorRatio  float64 `yaml:"sensor_ratio"` // Sensor diameter relative to the cup
}

// BallConfig defines the ball and its reset behaviour.
type BallConfig struct {
	Radius           float64 `yaml:"radius"`
	ResetCooldown    float64 `yaml:"reset_cooldown"` // Seconds
	BounceSoundSpeed float64 `yaml:"bounce_sound_speed"`
	BounceVolume     float64 `yaml:"bounce_volume"`
}

// BoundaryConfig defines the invisible walls around the table.
type BoundaryConfig struct {
	WallHeight float64 `yaml:"wall_height"`
	Thickness  float64 `yaml:"thickness"`
}

// ThrowConfig defines how player input becomes a ball velocity.
type ThrowConfig struct {
	AngleDeg   float64 `yaml:"angle_deg"` // Elevation
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	AimStepDeg float64 `yaml:"aim_step_deg"`
	MaxAimDeg  float64 `yaml:"max_aim_deg"`
	PowerStep  float64 `yaml:"power_step"`
	WobbleDeg  float64 `yaml:"wobble_deg"`  // Random yaw error
	WobbleFrac float64 `yaml:"wobble_frac"` // Random speed error as a fraction
}

// AudioConfig defines cue volumes and the HUD feed.
type AudioConfig struct {
	MusicVolume float64 `yaml:"music_volume"`
	FeedSize    int     `yaml:"feed_size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "hits", "throws", or "none"
	MaxAt int    `yaml:"max_at"` // Hits/throws at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	WobbleMultiplier float64 `yaml:"wobble_multiplier"` // Added to wobble at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Empty input yields "".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate rejects values that would make placement or layout meaningless.
func (c BeerPongConfig) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"rack.cup_diameter", c.Rack.CupDiameter},
		{"rack.spacing_ratio", c.Rack.SpacingRatio},
		{"rack.cup_height", c.Rack.CupHeight},
		{"rack.sensor_ratio", c.Rack.SensorRatio},
		{"ball.radius", c.Ball.Radius},
		{"boundary.wall_height", c.Boundary.WallHeight},
		{"boundary.thickness", c.Boundary.Thickness},
		{"throw.max_speed", c.Throw.MaxSpeed},
		{"placement.raycast_distance", c.Placement.RaycastDistance},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, ch.name, ch.value)
		}
	}
	if c.Rack.InitialCups < 1 || c.Rack.InitialCups > 6 {
		return fmt.Errorf("%w: rack.initial_cups must be 1..6, got %d", ErrInvalid, c.Rack.InitialCups)
	}
	if c.Placement.EdgeMargin < 0 {
		return fmt.Errorf("%w: placement.edge_margin must not be negative", ErrInvalid)
	}
	if c.Ball.ResetCooldown < 0 {
		return fmt.Errorf("%w: ball.reset_cooldown must not be negative", ErrInvalid)
	}
	if c.Throw.MinSpeed < 0 || c.Throw.MinSpeed > c.Throw.MaxSpeed {
		return fmt.Errorf("%w: throw.min_speed must be within 0..max_speed", ErrInvalid)
	}
	return nil
}
