package components

import "cubeplanets/internal/engine"

// Collider is implemented by every collision shape the physics world indexes.
type Collider interface {
	engine.Component
	ColliderLayer() int
	Trigger() bool
}
