package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Rotation   RotationConfig   `yaml:"rotation"`
	Character  CharacterConfig  `yaml:"character"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

type SimulationConfig struct {
	Level         string  `yaml:"level"`
	FixedTimestep float32 `yaml:"fixed_timestep"`
	Duration      float32 `yaml:"duration"`
}

// GravityConfig holds the defaults every Gravity component starts with.
type GravityConfig struct {
	Acceleration           float32 `yaml:"acceleration"`
	MaxSpeed               float32 `yaml:"max_speed"`
	RotationCorrectionRate float32 `yaml:"rotation_correction_rate"`
	CheckDistance          float32 `yaml:"check_distance"`
	Delay                  float32 `yaml:"delay"`
}

// RotationConfig holds the defaults for cluster rotators that do not set their own.
type RotationConfig struct {
	Policy              string  `yaml:"policy"`
	Speed               float32 `yaml:"speed"`
	MaxDistanceFromAxis float32 `yaml:"max_distance_from_axis"`
	NeighbourDistance   float32 `yaml:"neighbour_distance"`
}

type CharacterConfig struct {
	GroundedMoveForce       float32 `yaml:"grounded_move_force"`
	AirMoveForce            float32 `yaml:"air_move_force"`
	MaxSpeed                float32 `yaml:"max_speed"`
	JumpSpeed               float32 `yaml:"jump_speed"`
	GroundPoundSpeed        float32 `yaml:"ground_pound_speed"`
	RotationSpeed           float32 `yaml:"rotation_speed"`
	GroundPoundRecoveryTime float32 `yaml:"ground_pound_recovery_time"`
	GroundCheckDistance     float32 `yaml:"ground_check_distance"`
	GroundDrag              float32 `yaml:"ground_drag"`
	AirDrag                 float32 `yaml:"air_drag"`
	MinAirTimeForPound      float32 `yaml:"min_air_time_for_pound"`
	MaxJumpTime             float32 `yaml:"max_jump_time"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.FixedTimestep <= 0 {
		return fmt.Errorf("simulation.fixed_timestep must be positive, got %v", c.Simulation.FixedTimestep)
	}
	if c.Simulation.Duration < 0 {
		return fmt.Errorf("simulation.duration must not be negative, got %v", c.Simulation.Duration)
	}
	switch c.Rotation.Policy {
	case "rotatable", "furthest_from_axis", "furthest_from_origin":
	default:
		return fmt.Errorf("rotation.policy %q is not one of rotatable, furthest_from_axis, furthest_from_origin", c.Rotation.Policy)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9090"
	}
	if c.Simulation.FixedTimestep == 0 {
		c.Simulation.FixedTimestep = 0.02
	}
	if c.Simulation.Duration == 0 {
		c.Simulation.Duration = 10
	}

	g := &c.Gravity
	setDefault(&g.Acceleration, 9.8)
	setDefault(&g.MaxSpeed, 20)
	setDefault(&g.RotationCorrectionRate, 10)
	setDefault(&g.CheckDistance, 1000)

	r := &c.Rotation
	if r.Policy == "" {
		r.Policy = "rotatable"
	}
	setDefault(&r.Speed, 18)
	setDefault(&r.MaxDistanceFromAxis, 30)
	setDefault(&r.NeighbourDistance, 26)

	ch := &c.Character
	setDefault(&ch.GroundedMoveForce, 5)
	setDefault(&ch.AirMoveForce, 0.1)
	setDefault(&ch.MaxSpeed, 6)
	setDefault(&ch.JumpSpeed, 8)
	setDefault(&ch.GroundPoundSpeed, 20)
	setDefault(&ch.RotationSpeed, 10)
	setDefault(&ch.GroundPoundRecoveryTime, 0.5)
	setDefault(&ch.GroundCheckDistance, 0.3)
	setDefault(&ch.GroundDrag, 5)
	setDefault(&ch.MinAirTimeForPound, 0.2)
	setDefault(&ch.MaxJumpTime, 0.5)
}

func setDefault(v *float32, def float32) {
	if *v == 0 {
		*v = def
	}
}
