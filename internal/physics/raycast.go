package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastHit is a hit against a single shape.
type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast intersects a ray with the shape. Rays starting inside the shape do not hit
// it. direction must be normalized.
func (s Shape) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if s.IsSphere {
		return raycastSphere(origin, direction, s.Center, s.Radius, maxDistance)
	}
	return raycastOBB(origin, direction, s.Box, maxDistance)
}

// raycastOBB runs the slab test in the box's local frame.
func raycastOBB(origin, direction rl.Vector3, box OBB, maxDistance float32) (RaycastHit, bool) {
	lo := box.Local(origin)
	o := [3]float32{lo.X, lo.Y, lo.Z}
	d := [3]float32{
		rl.Vector3DotProduct(direction, box.Axes[0]),
		rl.Vector3DotProduct(direction, box.Axes[1]),
		rl.Vector3DotProduct(direction, box.Axes[2]),
	}
	h := [3]float32{box.HalfSize.X, box.HalfSize.Y, box.HalfSize.Z}

	tmin := float32(-1e30)
	tmax := float32(1e30)
	enterAxis := -1
	var enterSign float32

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < -h[i] || o[i] > h[i] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-h[i] - o[i]) / d[i]
		t2 := (h[i] - o[i]) / d[i]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = i
			enterSign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	// origin inside, or the box is behind or out of reach
	if enterAxis < 0 || tmin < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, tmin))
	normal := rl.Vector3Scale(box.Axes[enterAxis], enterSign)
	return RaycastHit{Point: point, Normal: normal, Distance: tmin}, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius
	if c <= 0 {
		return RaycastHit{}, false
	}
	b := rl.Vector3DotProduct(oc, direction)

	discriminant := b*b - c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := -b - float32(math.Sqrt(float64(discriminant)))
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
