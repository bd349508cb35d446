package world

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/config"
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"cubeplanets/internal/metrics"
	"cubeplanets/internal/physics"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

const clusterRotatorScript = "ClusterRotator"

// metricsSetter is implemented by scripted components that report metrics.
type metricsSetter interface {
	SetMetrics(m *metrics.Collector)
}

type builder struct {
	cfg   *config.Config
	scene *engine.Scene
}

// Build creates the scene described by lvl, registers it with a fresh physics world
// and starts it. m may be nil.
func Build(cfg *config.Config, lvl *config.Level, m *metrics.Collector) (*World, error) {
	name := lvl.Name
	if name == "" {
		name = "Level"
	}
	b := &builder{cfg: cfg, scene: engine.NewScene(name)}

	for _, g := range lvl.Galaxies {
		if err := b.galaxy(g); err != nil {
			return nil, fmt.Errorf("galaxy %q: %w", g.Name, err)
		}
	}
	for _, o := range lvl.Objects {
		if err := b.object(o); err != nil {
			return nil, fmt.Errorf("object %q: %w", o.Name, err)
		}
	}

	w := &World{
		Scene:    b.scene,
		Physics:  physics.NewWorld(),
		Metrics:  m,
		timestep: cfg.Simulation.FixedTimestep,
		pounds:   sortPounds(lvl.Pounds),
	}
	if lvl.Player != nil {
		player, err := b.player(*lvl.Player, m)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", lvl.Player.Name, err)
		}
		w.Player = player
	}

	for _, obj := range b.scene.GameObjects {
		for _, c := range obj.Components() {
			if s, ok := c.(metricsSetter); ok {
				s.SetMetrics(m)
			}
		}
	}

	w.Physics.AddScene(b.scene)
	b.scene.Start()
	logger.L().Info("level built", "scene", name, "galaxies", len(lvl.Galaxies),
		"objects", len(b.scene.GameObjects), "colliders", w.Physics.ColliderCount())
	return w, nil
}

func (b *builder) galaxy(def config.GalaxySpec) error {
	obj := engine.NewGameObject(def.Name)
	obj.Transform.Position = def.Position.Vector3()
	obj.Transform.Rotation = engine.Euler(def.Rotation.Vector3())
	obj.AddComponent(components.NewGalaxy(def.MaxPlayerDistance))
	if err := b.scripts(obj, def.Scripts); err != nil {
		return err
	}
	b.scene.AddGameObject(obj)

	for _, p := range def.Planets {
		if err := b.planet(obj, p); err != nil {
			return fmt.Errorf("planet %q: %w", p.Name, err)
		}
	}
	return nil
}

func (b *builder) planet(galaxy *engine.GameObject, def config.PlanetSpec) error {
	obj := engine.NewGameObject(def.Name)
	obj.Transform.Position = def.Position.Vector3()
	obj.Transform.Rotation = engine.Euler(def.Rotation.Vector3())
	if err := galaxy.AddChild(obj); err != nil {
		return err
	}

	size := def.Size.Vector3()
	planet := components.NewPlanet()
	planet.BoundingBoxSize = size
	planet.Destroyable = def.Destroyable
	obj.AddComponent(planet)

	col := components.NewBoxCollider(size)
	col.Layer = engine.LayerGround
	col.IsTrigger = def.Trigger
	obj.AddComponent(col)

	if err := b.scripts(obj, def.Scripts); err != nil {
		return err
	}
	b.scene.AddGameObject(obj)
	return nil
}

func (b *builder) object(def config.ObjectSpec) error {
	obj := engine.NewGameObject(def.Name)
	obj.Transform.Position = def.Position.Vector3()
	obj.Transform.Rotation = engine.Euler(def.Rotation.Vector3())

	if def.Radius > 0 {
		col := components.NewSphereCollider(def.Radius)
		col.Layer = def.Layer
		col.IsTrigger = def.Trigger
		obj.AddComponent(col)
	} else {
		col := components.NewBoxCollider(def.Size.Vector3())
		col.Layer = def.Layer
		col.IsTrigger = def.Trigger
		obj.AddComponent(col)
	}

	if err := b.scripts(obj, def.Scripts); err != nil {
		return err
	}
	b.scene.AddGameObject(obj)
	return nil
}

// player assembles the character with the tuning from the config file.
func (b *builder) player(def config.PlayerSpec, m *metrics.Collector) (*engine.GameObject, error) {
	obj := engine.NewGameObject(def.Name)
	obj.Transform.Position = def.Position.Vector3()

	stats := &components.PlayerStats{Theme: components.ThemeNone}
	if def.Theme != "" {
		theme, err := components.ParseTheme(def.Theme)
		if err != nil {
			return nil, err
		}
		stats.Theme = theme
	}

	body := components.NewRigidbody()

	col := components.NewSphereCollider(def.Radius)
	col.Layer = engine.LayerPlayer

	gc := b.cfg.Gravity
	gravity := components.NewGravity()
	gravity.Acceleration = gc.Acceleration
	gravity.MaxGravitySpeed = gc.MaxSpeed
	gravity.RotationCorrectionRate = gc.RotationCorrectionRate
	gravity.CheckDistance = gc.CheckDistance
	gravity.SetDelay(gc.Delay)
	gravity.Metrics = m

	cc := b.cfg.Character
	move := components.NewCharacterMovement()
	move.GroundedMoveForce = cc.GroundedMoveForce
	move.AirMoveForce = cc.AirMoveForce
	move.MaxSpeed = cc.MaxSpeed
	move.JumpSpeed = cc.JumpSpeed
	move.GroundPoundSpeed = cc.GroundPoundSpeed
	move.RotationSpeed = cc.RotationSpeed
	move.GroundPoundRecoveryTime = cc.GroundPoundRecoveryTime
	move.GroundCheck = rl.Vector3{Y: -def.Radius}
	move.GroundCheckDistance = cc.GroundCheckDistance
	move.GroundDrag = cc.GroundDrag
	move.AirDrag = cc.AirDrag
	move.MinAirTimeForPound = cc.MinAirTimeForPound
	move.MaxJumpTime = cc.MaxJumpTime
	move.Metrics = m

	obj.AddComponent(stats)
	obj.AddComponent(body)
	obj.AddComponent(col)
	obj.AddComponent(gravity)
	obj.AddComponent(move)
	obj.AddComponent(&components.CharacterAnimator{})
	b.scene.AddGameObject(obj)
	return obj, nil
}

// scripts attaches the named scripts to obj. Cluster rotators fall back to the
// rotation section of the config for any prop the level leaves out.
func (b *builder) scripts(obj *engine.GameObject, specs []config.ScriptSpec) error {
	for _, s := range specs {
		props := engine.Props(s.Props)
		if s.Name == clusterRotatorScript {
			props = lo.Assign(b.rotationDefaults(), props)
		}
		c, err := engine.CreateScript(s.Name, props)
		if err != nil {
			return err
		}
		obj.AddComponent(c)
	}
	return nil
}

func (b *builder) rotationDefaults() engine.Props {
	r := b.cfg.Rotation
	return engine.Props{
		"policy":                 r.Policy,
		"speed":                  r.Speed,
		"max_distance_from_axis": r.MaxDistanceFromAxis,
		"neighbour_distance":     r.NeighbourDistance,
	}
}
