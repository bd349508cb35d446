package components

import (
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// fakeWorld answers spatial queries with canned results.
type fakeWorld struct {
	boxHits    []*engine.GameObject
	sphereHits []*engine.GameObject
	closest    map[*engine.GameObject]rl.Vector3
	ray        engine.RaycastResult
	rayOK      bool
}

func (w *fakeWorld) OverlapBox(center, halfExtents rl.Vector3, orientation rl.Quaternion, mask engine.LayerMask) []*engine.GameObject {
	return w.boxHits
}

func (w *fakeWorld) OverlapSphere(center rl.Vector3, radius float32, mask engine.LayerMask) []*engine.GameObject {
	return w.sphereHits
}

func (w *fakeWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (engine.RaycastResult, bool) {
	return w.ray, w.rayOK
}

func (w *fakeWorld) ClosestPoint(obj *engine.GameObject, point rl.Vector3) rl.Vector3 {
	return w.closest[obj]
}

func newTestScene(world engine.WorldAccess, objs ...*engine.GameObject) *engine.Scene {
	scene := engine.NewScene("test")
	scene.World = world
	for _, o := range objs {
		scene.AddGameObject(o)
	}
	return scene
}

func vecNear(a, b rl.Vector3) bool {
	return rl.Vector3Distance(a, b) < 1e-3
}
