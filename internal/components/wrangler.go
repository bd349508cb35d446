package components

import (
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerWrangler forces gravity on bodies that drift out of range of every galaxy so
// they fall back toward the nearest surface.
type PlayerWrangler struct {
	engine.BaseComponent

	// Galaxies and Bodies are discovered from the scene at Start when left empty.
	Galaxies []*Galaxy
	Bodies   []*Gravity
}

func (w *PlayerWrangler) Start() {
	scene := w.GetGameObject().Scene
	if scene == nil {
		return
	}
	findGalaxies := len(w.Galaxies) == 0
	findBodies := len(w.Bodies) == 0
	for _, obj := range scene.GameObjects {
		if findGalaxies {
			if g := engine.GetComponent[*Galaxy](obj); g != nil {
				w.Galaxies = append(w.Galaxies, g)
			}
		}
		if findBodies {
			if g := engine.GetComponent[*Gravity](obj); g != nil {
				w.Bodies = append(w.Bodies, g)
			}
		}
	}
}

func (w *PlayerWrangler) Update(deltaTime float32) {
	for _, body := range w.Bodies {
		obj := body.GetGameObject()
		if !obj.ActiveInHierarchy() {
			continue
		}
		if w.inRange(obj.WorldPosition()) {
			if body.ForceApplyGravity() {
				body.SetForceApplyGravity(false)
			}
			continue
		}
		body.SetForceApplyGravity(true)
		if cm := engine.GetComponent[*CharacterMovement](obj); cm != nil {
			cm.SetOverrideGravity(false)
		}
	}
}

func (w *PlayerWrangler) inRange(pos rl.Vector3) bool {
	for _, g := range w.Galaxies {
		if g.InRange(pos) {
			return true
		}
	}
	return false
}
