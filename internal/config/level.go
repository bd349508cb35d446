package config

import (
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// Vec3 is a YAML [x, y, z] triple.
type Vec3 [3]float32

func (v Vec3) Vector3() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Level describes the galaxies, planets and player of one simulated level.
type Level struct {
	Name     string       `yaml:"name"`
	Galaxies []GalaxySpec `yaml:"galaxies"`
	Objects  []ObjectSpec `yaml:"objects"`
	Player   *PlayerSpec  `yaml:"player"`
	Pounds   []PoundSpec  `yaml:"pounds"`
}

type GalaxySpec struct {
	Name              string       `yaml:"name"`
	Position          Vec3         `yaml:"position"`
	Rotation          Vec3         `yaml:"rotation"` // euler degrees
	MaxPlayerDistance float32      `yaml:"max_player_distance"`
	Scripts           []ScriptSpec `yaml:"scripts"`
	Planets           []PlanetSpec `yaml:"planets"`
}

type PlanetSpec struct {
	Name        string       `yaml:"name"`
	Position    Vec3         `yaml:"position"` // relative to the galaxy
	Rotation    Vec3         `yaml:"rotation"`
	Size        Vec3         `yaml:"size"`
	Destroyable bool         `yaml:"destroyable"`
	Trigger     bool         `yaml:"trigger"`
	Scripts     []ScriptSpec `yaml:"scripts"`
}

// ObjectSpec is a free-standing object outside any galaxy, such as a trigger zone.
type ObjectSpec struct {
	Name     string       `yaml:"name"`
	Position Vec3         `yaml:"position"`
	Rotation Vec3         `yaml:"rotation"`
	Size     Vec3         `yaml:"size"`
	Radius   float32      `yaml:"radius"`
	Layer    int          `yaml:"layer"`
	Trigger  bool         `yaml:"trigger"`
	Scripts  []ScriptSpec `yaml:"scripts"`
}

// ScriptSpec attaches a registered script by name.
type ScriptSpec struct {
	Name  string         `yaml:"name"`
	Props map[string]any `yaml:"props"`
}

type PlayerSpec struct {
	Name     string  `yaml:"name"`
	Position Vec3    `yaml:"position"`
	Theme    string  `yaml:"theme"`
	Radius   float32 `yaml:"radius"`
}

// PoundSpec schedules a ground pound hit on a planet at a simulated time.
type PoundSpec struct {
	At     float32 `yaml:"at"`
	Planet string  `yaml:"planet"`
	Normal Vec3    `yaml:"normal"`
	// Offset moves the hit point across the struck face, in world units.
	Offset Vec3 `yaml:"offset"`
}

func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	lvl := &Level{}
	if err := yaml.Unmarshal(data, lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	lvl.applyDefaults()
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

var (
	ErrDuplicateName = errors.New("duplicate object name")
	ErrMissingName   = errors.New("object without a name")
)

// Validate checks that every object is named uniquely, since scripts and pounds
// refer to objects by name.
func (l *Level) Validate() error {
	seen := make(map[string]bool)
	check := func(name string) error {
		if name == "" {
			return ErrMissingName
		}
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = true
		return nil
	}
	for _, g := range l.Galaxies {
		if err := check(g.Name); err != nil {
			return err
		}
		for _, p := range g.Planets {
			if err := check(p.Name); err != nil {
				return err
			}
		}
	}
	for _, o := range l.Objects {
		if err := check(o.Name); err != nil {
			return err
		}
	}
	if l.Player != nil {
		if err := check(l.Player.Name); err != nil {
			return err
		}
	}
	for i, p := range l.Pounds {
		if !seen[p.Planet] {
			return fmt.Errorf("pounds[%d]: unknown planet %q", i, p.Planet)
		}
	}
	return nil
}

func (l *Level) applyDefaults() {
	one := Vec3{1, 1, 1}
	for gi := range l.Galaxies {
		g := &l.Galaxies[gi]
		if g.MaxPlayerDistance == 0 {
			g.MaxPlayerDistance = 100
		}
		for pi := range g.Planets {
			if g.Planets[pi].Size == (Vec3{}) {
				g.Planets[pi].Size = one
			}
		}
	}
	for i := range l.Objects {
		if l.Objects[i].Size == (Vec3{}) && l.Objects[i].Radius == 0 {
			l.Objects[i].Size = one
		}
	}
	if l.Player != nil {
		if l.Player.Name == "" {
			l.Player.Name = "Player"
		}
		if l.Player.Radius == 0 {
			l.Player.Radius = 0.5
		}
	}
	for i := range l.Pounds {
		if l.Pounds[i].Normal == (Vec3{}) {
			l.Pounds[i].Normal = Vec3{0, 1, 0}
		}
	}
}
