package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Project returns the component of v along onto. A zero onto yields zero.
func Project(v, onto rl.Vector3) rl.Vector3 {
	lenSq := rl.Vector3DotProduct(onto, onto)
	if lenSq < 1e-12 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(onto, rl.Vector3DotProduct(v, onto)/lenSq)
}

// ProjectOnPlane removes the component of v along the plane normal.
func ProjectOnPlane(v, normal rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(v, Project(v, normal))
}

// Sign returns 1 for non-negative values and -1 otherwise.
func Sign(v float32) float32 {
	if v >= 0 {
		return 1
	}
	return -1
}

func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// AbsVector returns the per-axis absolute value of v.
func AbsVector(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: Abs(v.X), Y: Abs(v.Y), Z: Abs(v.Z)}
}

// Angle returns the unsigned angle between a and b in degrees.
func Angle(a, b rl.Vector3) float32 {
	denom := rl.Vector3Length(a) * rl.Vector3Length(b)
	if denom < 1e-12 {
		return 0
	}
	cos := rl.Vector3DotProduct(a, b) / denom
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return float32(math.Acos(float64(cos))) * rl.Rad2deg
}

// FromToRotation returns the shortest rotation taking direction from onto direction to.
// Opposite directions rotate half a turn about any axis perpendicular to from.
func FromToRotation(from, to rl.Vector3) rl.Quaternion {
	f := rl.Vector3Normalize(from)
	t := rl.Vector3Normalize(to)
	if rl.Vector3DotProduct(f, t) < -0.999999 {
		axis := rl.Vector3CrossProduct(rl.Vector3{X: 1}, f)
		if rl.Vector3Length(axis) < 1e-6 {
			axis = rl.Vector3CrossProduct(rl.Vector3{Y: 1}, f)
		}
		return rl.QuaternionFromAxisAngle(rl.Vector3Normalize(axis), math.Pi)
	}
	return rl.QuaternionFromVector3ToVector3(f, t)
}

// LookRotation builds an orientation whose local +Z faces forward and whose local +Y
// is as close to up as possible.
func LookRotation(forward, up rl.Vector3) rl.Quaternion {
	f := rl.Vector3Normalize(forward)
	r := rl.Vector3CrossProduct(up, f)
	if rl.Vector3Length(r) < 1e-6 {
		// forward parallel to up, pick any perpendicular right vector
		r = rl.Vector3CrossProduct(rl.Vector3{X: 1}, f)
		if rl.Vector3Length(r) < 1e-6 {
			r = rl.Vector3CrossProduct(rl.Vector3{Z: 1}, f)
		}
	}
	r = rl.Vector3Normalize(r)
	u := rl.Vector3CrossProduct(f, r)
	return quaternionFromBasis(r, u, f)
}

// quaternionFromBasis converts an orthonormal basis (the rotated X, Y and Z axes)
// into a unit quaternion.
func quaternionFromBasis(x, y, z rl.Vector3) rl.Quaternion {
	m00, m10, m20 := x.X, x.Y, x.Z
	m01, m11, m21 := y.X, y.Y, y.Z
	m02, m12, m22 := z.X, z.Y, z.Z

	var q rl.Quaternion
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / sqrt32(trace+1)
		q.W = 0.25 / s
		q.X = (m21 - m12) * s
		q.Y = (m02 - m20) * s
		q.Z = (m10 - m01) * s
	case m00 > m11 && m00 > m22:
		s := 2 * sqrt32(1+m00-m11-m22)
		q.W = (m21 - m12) / s
		q.X = 0.25 * s
		q.Y = (m01 + m10) / s
		q.Z = (m02 + m20) / s
	case m11 > m22:
		s := 2 * sqrt32(1+m11-m00-m22)
		q.W = (m02 - m20) / s
		q.X = (m01 + m10) / s
		q.Y = 0.25 * s
		q.Z = (m12 + m21) / s
	default:
		s := 2 * sqrt32(1+m22-m00-m11)
		q.W = (m10 - m01) / s
		q.X = (m02 + m20) / s
		q.Y = (m12 + m21) / s
		q.Z = 0.25 * s
	}
	return rl.QuaternionNormalize(q)
}

// Slerp interpolates between two rotations with t clamped to [0, 1].
func Slerp(a, b rl.Quaternion, t float32) rl.Quaternion {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return rl.QuaternionSlerp(a, b, t)
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Euler builds a rotation from angles in degrees, applied about Z, then X, then Y.
// Level files use this order for galaxy, planet and path rotations.
func Euler(degrees rl.Vector3) rl.Quaternion {
	qx := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, degrees.X*rl.Deg2rad)
	qy := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, degrees.Y*rl.Deg2rad)
	qz := rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, degrees.Z*rl.Deg2rad)
	return rl.QuaternionMultiply(qy, rl.QuaternionMultiply(qx, qz))
}
