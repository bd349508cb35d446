package physics

import (
	"github.com/dhconnelly/rtreego"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// minExtent keeps degenerate boxes indexable. The R-tree rejects zero-length sides.
const minExtent = 1e-4

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// AABBFromPoints returns the smallest box containing both points.
func AABBFromPoints(a, b rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: rl.Vector3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Rect converts the box to an R-tree rectangle.
func (a AABB) Rect() rtreego.Rect {
	p := rtreego.Point{float64(a.Min.X), float64(a.Min.Y), float64(a.Min.Z)}
	lengths := []float64{
		max(float64(a.Max.X-a.Min.X), minExtent),
		max(float64(a.Max.Y-a.Min.Y), minExtent),
		max(float64(a.Max.Z-a.Min.Z), minExtent),
	}
	r, err := rtreego.NewRect(p, lengths)
	if err != nil {
		return p.ToRect(minExtent)
	}
	return r
}
