package engine

import "testing"

func TestGameObjectRefResolves(t *testing.T) {
	scene := NewScene("Level")
	g1 := NewGameObject("G1")
	g2 := NewGameObject("G2")
	scene.AddGameObject(g1)
	scene.AddGameObject(g2)

	refs := []GameObjectRef{RefTo(g1), RefTo(g2)}
	if refs[0].Get(scene) != g1 || refs[1].Get(scene) != g2 {
		t.Error("Expected each ref to resolve to its own galaxy")
	}
	if refs[0].Get(nil) != nil {
		t.Error("Expected nil without a scene")
	}

	scene.RemoveGameObject(g2)
	if !refs[1].IsValid() {
		t.Error("Expected a ref to stay set after its target is removed")
	}
	if refs[1].Get(scene) != nil {
		t.Error("Expected a removed target to resolve to nil")
	}
}

func TestGameObjectRefEmpty(t *testing.T) {
	scene := NewScene("Level")
	tests := []struct {
		name string
		ref  GameObjectRef
	}{
		{"zero", GameObjectRef{}},
		{"nil object", RefTo(nil)},
		{"unknown uid", GameObjectRef{UID: 99999}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.Get(scene); got != nil {
				t.Errorf("Expected nil, got %v", got)
			}
		})
	}

	ref := RefTo(NewGameObject("A"))
	ref.Clear()
	if ref.IsValid() {
		t.Error("Expected a cleared ref to be invalid")
	}
}
