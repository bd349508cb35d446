package physics

import (
	"cubeplanets/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is the world-space volume of a collider at the moment it was taken.
type Shape struct {
	Box      OBB
	IsSphere bool
	Center   rl.Vector3
	Radius   float32
}

// ShapeOf snapshots a collider. Unknown collider types report false.
func ShapeOf(c components.Collider) (Shape, bool) {
	switch col := c.(type) {
	case *components.BoxCollider:
		return Shape{Box: NewOBB(col.GetCenter(), col.GetWorldSize(), col.GetRotation())}, true
	case *components.SphereCollider:
		return Shape{IsSphere: true, Center: col.GetCenter(), Radius: col.GetWorldRadius()}, true
	}
	return Shape{}, false
}

func (s Shape) Bounds() AABB {
	if s.IsSphere {
		r := rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
		return AABB{Min: rl.Vector3Subtract(s.Center, r), Max: rl.Vector3Add(s.Center, r)}
	}
	return s.Box.Bounds()
}

func (s Shape) OverlapsOBB(o OBB) bool {
	if s.IsSphere {
		return o.IntersectsSphere(s.Center, s.Radius)
	}
	return s.Box.IntersectsOBB(o)
}

func (s Shape) OverlapsSphere(center rl.Vector3, radius float32) bool {
	if s.IsSphere {
		return rl.Vector3Distance(s.Center, center) <= s.Radius+radius
	}
	return s.Box.IntersectsSphere(center, radius)
}

func (s Shape) Overlaps(o Shape) bool {
	if o.IsSphere {
		return s.OverlapsSphere(o.Center, o.Radius)
	}
	return s.OverlapsOBB(o.Box)
}

// ClosestPoint returns the point of the volume nearest to p, or p itself when it
// lies inside.
func (s Shape) ClosestPoint(p rl.Vector3) rl.Vector3 {
	if !s.IsSphere {
		return ClosestPointOnOBB(s.Box, p)
	}
	d := rl.Vector3Subtract(p, s.Center)
	l := rl.Vector3Length(d)
	if l <= s.Radius {
		return p
	}
	return rl.Vector3Add(s.Center, rl.Vector3Scale(d, s.Radius/l))
}

// Shrink reduces the extents by skin so that touching faces stop counting as overlap.
func (s Shape) Shrink(skin float32) Shape {
	if s.IsSphere {
		s.Radius = max(s.Radius-skin, 0)
		return s
	}
	h := s.Box.HalfSize
	s.Box.HalfSize = rl.Vector3{X: max(h.X-skin, 0), Y: max(h.Y-skin, 0), Z: max(h.Z-skin, 0)}
	return s
}
