package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Collision layers used by the level content.
const (
	LayerDefault = 0
	LayerGround  = 8
	LayerPlayer  = 9
)

// LayerMask selects collision layers by bit.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

// MaskOf builds a mask containing the given layers.
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << uint(l)
	}
	return m
}

// Contains reports whether the layer is selected by the mask.
func (m LayerMask) Contains(layer int) bool {
	return m&(1<<uint(layer)) != 0
}

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess is the spatial query service components consume. All queries ignore
// trigger-only colliders and inactive objects. Results are the GameObjects that own
// the matching colliders.
type WorldAccess interface {
	OverlapBox(center, halfExtents rl.Vector3, orientation rl.Quaternion, mask LayerMask) []*GameObject
	OverlapSphere(center rl.Vector3, radius float32, mask LayerMask) []*GameObject
	Raycast(origin, direction rl.Vector3, maxDistance float32, mask LayerMask) (RaycastResult, bool)
	// ClosestPoint returns the point on the collider owned by obj nearest to point.
	ClosestPoint(obj *GameObject, point rl.Vector3) rl.Vector3
}

// ForceMode selects how AddForce changes a body's velocity.
type ForceMode int

const (
	// ForceModeForce is a continuous force scaled by mass and the tick length.
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration ignores mass.
	ForceModeAcceleration
	// ForceModeImpulse is an instant change scaled by mass.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant change ignoring mass.
	ForceModeVelocityChange
)

// Body is the rigid-body service: velocity access, force accumulation and drag.
type Body interface {
	Velocity() rl.Vector3
	SetVelocity(v rl.Vector3)
	AddForce(force rl.Vector3, mode ForceMode)
	SetDrag(drag float32)
}
