package physics

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// penetration returns the translation that moves a out of b, or zero if they do not
// overlap.
func penetration(a, b Shape) rl.Vector3 {
	switch {
	case a.IsSphere && b.IsSphere:
		return sphereVsSphere(a, b)
	case a.IsSphere:
		return sphereVsBox(a, b.Box)
	case b.IsSphere:
		return rl.Vector3Negate(sphereVsBox(b, a.Box))
	default:
		return a.Box.ResolveOBB(b.Box)
	}
}

func sphereVsSphere(a, b Shape) rl.Vector3 {
	d := rl.Vector3Subtract(a.Center, b.Center)
	dist := rl.Vector3Length(d)
	overlap := a.Radius + b.Radius - dist
	if overlap <= 0 {
		return rl.Vector3Zero()
	}
	if dist < 1e-6 {
		return rl.Vector3{Y: overlap}
	}
	return rl.Vector3Scale(d, overlap/dist)
}

func sphereVsBox(s Shape, box OBB) rl.Vector3 {
	closest := ClosestPointOnOBB(box, s.Center)
	d := rl.Vector3Subtract(s.Center, closest)
	dist := rl.Vector3Length(d)
	if dist >= s.Radius {
		return rl.Vector3Zero()
	}
	if dist < 1e-6 {
		// center inside the box, push out as a cube of the same radius
		cube := NewOBB(s.Center, rl.Vector3{X: 2 * s.Radius, Y: 2 * s.Radius, Z: 2 * s.Radius}, rl.QuaternionIdentity())
		return cube.ResolveOBB(box)
	}
	return rl.Vector3Scale(d, (s.Radius-dist)/dist)
}

// resolveBody pushes a dynamic body out of every solid collider it penetrates and
// removes the velocity component pointing into the surface.
func (w *World) resolveBody(rb *components.Rigidbody) {
	obj := rb.GetGameObject()
	for _, own := range engine.GetComponents[components.Collider](obj) {
		if own.Trigger() {
			continue
		}
		shape, ok := ShapeOf(own)
		if !ok {
			continue
		}
		for _, e := range w.candidates(shape.Bounds(), engine.AllLayers) {
			other := e.collider.GetGameObject()
			if other == obj || obj.IsAncestorOf(other) {
				continue
			}
			if otherBody := engine.GetComponent[*components.Rigidbody](other); otherBody != nil && !otherBody.IsKinematic {
				continue
			}
			otherShape, ok := ShapeOf(e.collider)
			if !ok {
				continue
			}
			push := penetration(shape, otherShape)
			if rl.Vector3Length(push) < 1e-6 {
				continue
			}
			obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), push))

			n := rl.Vector3Normalize(push)
			v := rb.Velocity()
			if into := rl.Vector3DotProduct(v, n); into < 0 {
				rb.SetVelocity(rl.Vector3Subtract(v, rl.Vector3Scale(n, into)))
			}
			shape, _ = ShapeOf(own)
		}
	}
}
