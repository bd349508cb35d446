package components

import (
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HitReaction is implemented by components that respond to a ground pound landing on
// a planet. OnHit runs synchronously and may schedule further work on the scene.
type HitReaction interface {
	OnHit(user *PlayerStats, planet *Planet, point, normal rl.Vector3)
}

// DispatchHit invokes every HitReaction on struck and its ancestors, nearest first,
// and returns how many ran.
func DispatchHit(user *PlayerStats, struck *engine.GameObject, point, normal rl.Vector3) int {
	planet := engine.GetComponentInParent[*Planet](struck)
	reactions := engine.GetComponentsInParent[HitReaction](struck)
	for _, r := range reactions {
		r.OnHit(user, planet, point, normal)
	}
	return len(reactions)
}
