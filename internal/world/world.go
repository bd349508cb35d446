// Package world assembles a level into a scene and runs it on a fixed timestep.
package world

import (
	"cmp"
	"context"
	"cubeplanets/internal/components"
	"cubeplanets/internal/config"
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"cubeplanets/internal/metrics"
	"cubeplanets/internal/physics"
	"cubeplanets/internal/rotation"
	"errors"
	"math"
	"slices"
	"time"

	_ "cubeplanets/internal/behaviours"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type World struct {
	Scene   *engine.Scene
	Physics *physics.World
	Player  *engine.GameObject
	Metrics *metrics.Collector

	timestep float32
	pounds   []config.PoundSpec // ordered by At
	next     int
	elapsed  float32
	ticks    int
	hits     int
}

// Summary describes a finished run.
type Summary struct {
	Ticks   int
	Elapsed float32 // simulated seconds
	Pounds  int
}

// Step advances the simulation by one fixed tick: due ground pounds land, then
// per-frame updates, scheduled tasks and component physics run, and finally the
// physics world integrates bodies and fires triggers.
func (w *World) Step() {
	start := time.Now()
	dt := w.timestep

	w.firePounds()
	w.Scene.Update(dt)
	w.Scene.FixedUpdate(dt)
	w.Physics.Step(dt)

	w.elapsed += dt
	w.ticks++
	w.Metrics.ObserveTick(time.Since(start))
}

// Run steps the world until duration simulated seconds have passed or ctx is done.
func (w *World) Run(ctx context.Context, duration float32) (Summary, error) {
	steps := int(math.Round(float64(duration / w.timestep)))
	logger.L().Info("simulation started", "scene", w.Scene.Name, "ticks", steps, "timestep", w.timestep)

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return w.summary(), err
		}
		w.Step()
	}

	s := w.summary()
	logger.L().Info("simulation finished", "ticks", s.Ticks, "elapsed", s.Elapsed, "pounds", s.Pounds)
	return s, nil
}

// Elapsed returns the simulated time so far.
func (w *World) Elapsed() float32 {
	return w.elapsed
}

func (w *World) summary() Summary {
	return Summary{Ticks: w.ticks, Elapsed: w.elapsed, Pounds: w.hits}
}

func (w *World) firePounds() {
	for w.next < len(w.pounds) && w.pounds[w.next].At <= w.elapsed {
		w.Pound(w.pounds[w.next])
		w.next++
	}
}

var errUnknownTarget = errors.New("pound target not found")

// Pound lands a ground pound on the named object as if the player had struck it.
// The hit point sits on the face the normal points out of.
func (w *World) Pound(p config.PoundSpec) error {
	target := w.Scene.FindByName(p.Planet)
	if target == nil {
		logger.L().Warn("ground pound target missing", "planet", p.Planet)
		return errUnknownTarget
	}

	normal := rl.Vector3Normalize(p.Normal.Vector3())
	var reach float32
	if planet := engine.GetComponent[*components.Planet](target); planet != nil {
		local := engine.AbsVector(rl.Vector3Normalize(target.InverseTransformDirection(normal)))
		reach = rl.Vector3DotProduct(local, planet.HalfExtents())
	}
	point := rl.Vector3Add(target.WorldPosition(), rl.Vector3Scale(normal, reach))
	point = rl.Vector3Add(point, p.Offset.Vector3())

	var user *components.PlayerStats
	if w.Player != nil {
		user = engine.GetComponent[*components.PlayerStats](w.Player)
	}

	n := components.DispatchHit(user, target, point, normal)
	w.hits++
	w.Metrics.RecordHit(p.Planet)
	logger.L().Info("ground pound", "planet", p.Planet, "at", w.elapsed, "reactions", n)
	return nil
}

// GalaxyState is the end-of-run view of one galaxy.
type GalaxyState struct {
	Name            string        `yaml:"name"`
	ActiveRotations int           `yaml:"active_rotations"`
	Planets         []PlanetState `yaml:"planets"`
}

type PlanetState struct {
	Name     string      `yaml:"name"`
	ID       string      `yaml:"id"`
	Position config.Vec3 `yaml:"position"`
	Up       config.Vec3 `yaml:"up"`
	Active   bool        `yaml:"active"`
	Group    int         `yaml:"group"`
}

// Report lists every galaxy with the world placement of the planets it currently owns.
func (w *World) Report() []GalaxyState {
	var out []GalaxyState
	for _, obj := range w.Scene.GameObjects {
		galaxy := engine.GetComponent[*components.Galaxy](obj)
		if galaxy == nil {
			continue
		}
		state := GalaxyState{Name: obj.Name}
		if r := engine.GetComponent[*rotation.ClusterRotator](obj); r != nil {
			state.ActiveRotations = r.ActiveRotations()
		}
		for _, p := range galaxy.Planets() {
			po := p.GetGameObject()
			state.Planets = append(state.Planets, PlanetState{
				Name:     po.Name,
				ID:       p.ID.String(),
				Position: vec3(round(po.WorldPosition())),
				Up:       vec3(round(po.Up())),
				Active:   po.ActiveInHierarchy(),
				Group:    p.PhysicsGroupID,
			})
		}
		out = append(out, state)
	}
	return out
}

func vec3(v rl.Vector3) config.Vec3 {
	return config.Vec3{v.X, v.Y, v.Z}
}

// round trims float noise from reported vectors.
func round(v rl.Vector3) rl.Vector3 {
	r := func(x float32) float32 {
		return float32(math.Round(float64(x)*1000) / 1000)
	}
	return rl.Vector3{X: r(v.X), Y: r(v.Y), Z: r(v.Z)}
}

func sortPounds(pounds []config.PoundSpec) []config.PoundSpec {
	out := slices.Clone(pounds)
	slices.SortStableFunc(out, func(a, b config.PoundSpec) int {
		return cmp.Compare(a.At, b.At)
	})
	return out
}
