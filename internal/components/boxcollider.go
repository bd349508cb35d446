package components

import (
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BoxCollider struct {
	engine.BaseComponent
	Size      rl.Vector3
	Offset    rl.Vector3
	Layer     int
	IsTrigger bool
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	return b.GetGameObject().TransformPoint(b.Offset)
}

// GetWorldSize returns the full extents after the object's world scale.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return engine.AbsVector(rl.Vector3{X: b.Size.X * s.X, Y: b.Size.Y * s.Y, Z: b.Size.Z * s.Z})
}

func (b *BoxCollider) GetRotation() rl.Quaternion {
	return b.GetGameObject().WorldRotation()
}

func (b *BoxCollider) ColliderLayer() int { return b.Layer }
func (b *BoxCollider) Trigger() bool      { return b.IsTrigger }
