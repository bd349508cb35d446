package components

import (
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius    float32
	Offset    rl.Vector3
	Layer     int
	IsTrigger bool
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return s.GetGameObject().TransformPoint(s.Offset)
}

// GetWorldRadius scales the radius by the largest world scale axis.
func (s *SphereCollider) GetWorldRadius() float32 {
	scale := engine.AbsVector(s.GetGameObject().WorldScale())
	m := scale.X
	if scale.Y > m {
		m = scale.Y
	}
	if scale.Z > m {
		m = scale.Z
	}
	return s.Radius * m
}

func (s *SphereCollider) ColliderLayer() int { return s.Layer }
func (s *SphereCollider) Trigger() bool      { return s.IsTrigger }
