package config

import (
	_ "embed"
)

//go:embed defaults/beerpong.yaml
var defaultBeerPongYAML []byte

// DefaultBeerPongConfig returns the hardcoded configuration, matching the
// embedded defaults/beerpong.yaml.
func DefaultBeerPongConfig() BeerPongConfig {
	return BeerPongConfig{
		Placement: PlacementConfig{
			EdgeMargin:          0.3,
			SurfaceHeightOffset: 0.02,
			UseRaycast:          true,
			FallbackHeight:      0.07,
			RaycastStart:        0.5,
			RaycastDistance:     1.0,
			Corral:              true,
			Scoreboard:          true,
		},
		Rack: RackConfig{
			CupDiameter:  0.09,
			SpacingRatio: 1.1,
			InitialCups:  6,
			CupHeight:    0.12,
			SensorRatio:  0.8,
		},
		Ball: BallConfig{
			Radius:           0.02,
			ResetCooldown:    0.2,
			BounceSoundSpeed: 0.5,
			BounceVolume:     0.8,
		},
		Boundary: BoundaryConfig{
			WallHeight: 1.0,
			Thickness:  0.1,
		},
		Throw: ThrowConfig{
			AngleDeg:   45,
			MinSpeed:   2.0,
			MaxSpeed:   4.5,
			AimStepDeg: 0.5,
			MaxAimDeg:  20,
			PowerStep:  0.02,
			WobbleDeg:  1.0,
			WobbleFrac: 0.02,
		},
		Audio: AudioConfig{
			MusicVolume: 0.3,
			FeedSize:    8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "hits",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				WobbleMultiplier: 1.5,
			},
		},
	}
}
