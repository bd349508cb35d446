package spline

import (
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// lookAhead is the ratio step used to derive the facing direction.
const lookAhead = 0.001

// Placer is a path that can position objects along itself.
type Placer interface {
	Path
	Place(obj *engine.GameObject, ratio float32, worldUp rl.Vector3)
	PlaceLocal(obj *engine.GameObject, ratio float32, worldUp rl.Vector3)
}

// Place moves obj to the path point at ratio in world space and turns it to face a
// point slightly further along. Past the end of the path only the position changes.
func Place(p Path, obj *engine.GameObject, ratio float32, worldUp rl.Vector3) {
	obj.SetWorldPosition(p.Point(ratio))
	ratio += lookAhead
	if ratio <= 1 {
		obj.LookAt(p.Point(ratio), worldUp)
	}
}

// PlaceLocal is Place with the path expressed in obj's parent space.
func PlaceLocal(p Path, obj *engine.GameObject, ratio float32, worldUp rl.Vector3) {
	if obj.Parent == nil {
		Place(p, obj, ratio, worldUp)
		return
	}
	obj.Transform.Position = p.Point(ratio)
	ratio += lookAhead
	if ratio <= 1 {
		obj.LookAt(obj.Parent.TransformPoint(p.Point(ratio)), worldUp)
	}
}

func (c *Curve) Place(obj *engine.GameObject, ratio float32, worldUp rl.Vector3) {
	Place(c, obj, ratio, worldUp)
}

func (c *Curve) PlaceLocal(obj *engine.GameObject, ratio float32, worldUp rl.Vector3) {
	PlaceLocal(c, obj, ratio, worldUp)
}

func (p *BezierPath) Place(obj *engine.GameObject, ratio float32, worldUp rl.Vector3) {
	Place(p, obj, ratio, worldUp)
}

// PlaceLocal wraps ratios outside [0, 1] so looping travel stays on the path.
func (p *BezierPath) PlaceLocal(obj *engine.GameObject, ratio float32, worldUp rl.Vector3) {
	ratio = WrapRatio(ratio)
	if obj.Parent == nil {
		Place(p, obj, ratio, worldUp)
		return
	}
	obj.Transform.Position = p.Point(ratio)
	ratio = WrapRatio(ratio + lookAhead)
	if ratio <= 1 {
		obj.LookAt(obj.Parent.TransformPoint(p.Point(ratio)), worldUp)
	}
}
