// Package behaviours holds hit reactions that move or repaint planets.
package behaviours

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"cubeplanets/internal/spline"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// facingRate is how fast a travelling object turns toward its direction of motion.
const facingRate = 5

// Path kinds accepted by PathTravel.
const (
	PathCatmullRom = "catmull_rom"
	// PathBezier reads the points in sets of four per segment.
	PathBezier = "bezier"
)

var worldUp = rl.Vector3{Y: 1}

// PathTravel moves its object along a spline each time it is hit, alternating
// between the forward and the return trip.
type PathTravel struct {
	engine.BaseComponent
	Path           []rl.Vector3 // control points, world space unless Local
	Kind           string
	StartRotation  rl.Vector3   // euler degrees held at the start of the path
	FinishRotation rl.Vector3   // euler degrees held at the end of the path
	Speed          float32
	// InterpolateRotation turns the object to face its direction of motion.
	InterpolateRotation bool
	// BeginFacingFinalRotationAfter is the progress after which the object blends
	// toward the end rotation of the trip.
	BeginFacingFinalRotationAfter float32
	// Local reads the path in the parent's space, so it follows a turning galaxy.
	Local bool
	// LookAlongPath snaps the facing to the path direction every tick instead of
	// blending between the start and finish rotations.
	LookAlongPath bool

	// Arrived fires when a trip ends, with true for the forward trip.
	Arrived engine.EventWithArg[bool]

	path    spline.Placer
	moving  bool
	forward bool
}

func NewPathTravel() *PathTravel {
	return &PathTravel{
		Kind:                          PathCatmullRom,
		Speed:                         1,
		InterpolateRotation:           true,
		BeginFacingFinalRotationAfter: 0.9,
	}
}

func (p *PathTravel) Start() {
	path, err := newPath(p.Kind, p.Path)
	if err != nil {
		logger.L().Error("path travel disabled", "object", p.GetGameObject().Name, "error", err)
		return
	}
	p.path = path
}

func newPath(kind string, points []rl.Vector3) (spline.Placer, error) {
	switch kind {
	case PathCatmullRom, "":
		c, err := spline.NewCurve(points, true)
		if err != nil {
			return nil, err
		}
		return c, nil
	case PathBezier:
		b, err := spline.NewBezierPath(points)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown path type %q", kind)
}

// Moving reports whether a trip is under way.
func (p *PathTravel) Moving() bool {
	return p.moving
}

// Spline returns the travelled path, or nil when the control points were rejected.
func (p *PathTravel) Spline() spline.Placer {
	return p.path
}

// point returns the world position at ratio along the path.
func (p *PathTravel) point(ratio float32) rl.Vector3 {
	v := p.path.Point(ratio)
	if parent := p.GetGameObject().Parent; p.Local && parent != nil {
		return parent.TransformPoint(v)
	}
	return v
}

func (p *PathTravel) place(ratio float32) {
	if p.Local {
		p.path.PlaceLocal(p.GetGameObject(), ratio, worldUp)
		return
	}
	p.path.Place(p.GetGameObject(), ratio, worldUp)
}

func (p *PathTravel) OnHit(user *components.PlayerStats, planet *components.Planet, point, normal rl.Vector3) {
	if p.path == nil || p.moving {
		return
	}
	obj := p.GetGameObject()
	p.moving = true
	p.forward = !p.forward
	logger.L().Debug("path travel started", "object", obj.Name, "forward", p.forward)
	obj.Scene.Scheduler.Start(&pathTrip{
		travel:  p,
		forward: p.forward,
		pre:     obj.WorldRotation(),
	})
}

func (p *PathTravel) arrive(forward bool) {
	p.moving = false
	p.Arrived.Invoke(forward)
}

// pathTrip advances one trip along the curve per fixed tick.
type pathTrip struct {
	travel   *PathTravel
	forward  bool
	progress float32
	blend    float32
	pre      rl.Quaternion
}

func (t *pathTrip) ratio() float32 {
	if t.forward {
		return t.progress
	}
	return 1 - t.progress
}

func (t *pathTrip) Step(deltaTime float32) bool {
	p := t.travel
	obj := p.GetGameObject()

	current := p.point(t.ratio())
	if d := p.path.Distance(); d > 0 {
		t.progress = min(t.progress+deltaTime*(p.Speed/d), 1)
	} else {
		t.progress = 1
	}

	if p.LookAlongPath {
		p.place(t.ratio())
		return t.done()
	}
	next := p.point(t.ratio())

	target := obj.WorldRotation()
	step := deltaTime * facingRate
	after := p.BeginFacingFinalRotationAfter
	switch {
	case t.progress > after:
		if t.blend == 0 {
			t.pre = obj.WorldRotation()
		}
		t.blend = (t.progress - after) / (1 - after)
		step = t.blend
		if t.forward {
			target = engine.Euler(p.FinishRotation)
		} else {
			target = engine.Euler(p.StartRotation)
		}
	case p.InterpolateRotation:
		t.pre = obj.WorldRotation()
		dir := rl.Vector3Subtract(next, current)
		if rl.Vector3Length(dir) > 0 {
			if !t.forward {
				dir = rl.Vector3Negate(dir)
			}
			target = engine.LookRotation(dir, worldUp)
		}
	default:
		t.pre = target
	}

	obj.SetWorldRotation(engine.Slerp(t.pre, target, step))
	obj.SetWorldPosition(next)
	return t.done()
}

func (t *pathTrip) done() bool {
	if t.progress < 1 {
		return false
	}
	t.travel.arrive(t.forward)
	return true
}
