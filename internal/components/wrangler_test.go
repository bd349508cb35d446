package components

import (
	"cubeplanets/internal/engine"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestPlayerWrangler(t *testing.T) {
	galaxyObj := engine.NewGameObject("Galaxy")
	galaxyObj.AddComponent(NewGalaxy(10))

	body, g, _ := newGravityBody(&fakeWorld{})
	cm := NewCharacterMovement()
	body.AddComponent(cm)
	cm.overrideGrav = true

	wranglerObj := engine.NewGameObject("Wrangler")
	w := &PlayerWrangler{}
	wranglerObj.AddComponent(w)

	scene := body.Scene
	scene.AddGameObject(galaxyObj)
	scene.AddGameObject(wranglerObj)
	wranglerObj.Start()

	if len(w.Galaxies) != 1 || len(w.Bodies) != 1 {
		t.Fatalf("Expected 1 galaxy and 1 body discovered, got %d and %d", len(w.Galaxies), len(w.Bodies))
	}

	body.Transform.Position = rl.Vector3{X: 50}
	w.Update(0.016)
	if !g.ForceApplyGravity() {
		t.Error("Expected gravity forced out of range")
	}
	if cm.overrideGrav {
		t.Error("Expected character gravity override cleared out of range")
	}

	body.Transform.Position = rl.Vector3{X: 1}
	w.Update(0.016)
	if g.ForceApplyGravity() {
		t.Error("Expected force cleared back in range")
	}
}
