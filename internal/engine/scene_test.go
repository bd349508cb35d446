package engine

import "testing"

// galaxyScene builds a galaxy with two planets, all registered with the scene the
// way the level builder registers them.
func galaxyScene(t *testing.T) (*Scene, *GameObject, []*GameObject) {
	t.Helper()
	scene := NewScene("Level")
	galaxy := NewGameObject("G1")
	scene.AddGameObject(galaxy)

	var planets []*GameObject
	for _, name := range []string{"A", "B"} {
		p := NewGameObject(name)
		if err := galaxy.AddChild(p); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		scene.AddGameObject(p)
		planets = append(planets, p)
	}
	return scene, galaxy, planets
}

func TestSceneAddGameObject(t *testing.T) {
	scene, galaxy, planets := galaxyScene(t)

	if len(scene.GameObjects) != 3 {
		t.Errorf("Expected 3 GameObjects, got %d", len(scene.GameObjects))
	}
	for _, obj := range append([]*GameObject{galaxy}, planets...) {
		if obj.Scene != scene {
			t.Errorf("Expected %s to belong to the scene", obj.Name)
		}
		if scene.FindByUID(obj.UID) != obj {
			t.Errorf("Expected %s to be found by UID", obj.Name)
		}
	}
	if scene.FindByUID(0) != nil {
		t.Error("Expected no object for UID 0")
	}
}

func TestSceneFindByName(t *testing.T) {
	scene, galaxy, planets := galaxyScene(t)

	tests := []struct {
		name string
		want *GameObject
	}{
		{"G1", galaxy},
		{"B", planets[1]},
		{"G2", nil},
	}
	for _, tt := range tests {
		if got := scene.FindByName(tt.name); got != tt.want {
			t.Errorf("FindByName(%q): expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestSceneRemoveGalaxyRemovesPlanets(t *testing.T) {
	scene, galaxy, planets := galaxyScene(t)
	other := NewGameObject("G2")
	scene.AddGameObject(other)

	scene.RemoveGameObject(galaxy)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != other {
		t.Errorf("Expected only G2 to remain, got %d objects", len(scene.GameObjects))
	}
	for _, obj := range append([]*GameObject{galaxy}, planets...) {
		if scene.FindByUID(obj.UID) != nil {
			t.Errorf("Expected %s to be gone from the UID map", obj.Name)
		}
	}
}

func TestZeroSceneAcceptsObjects(t *testing.T) {
	var scene Scene
	obj := NewGameObject("A")
	scene.AddGameObject(obj)

	if scene.FindByUID(obj.UID) != obj {
		t.Error("Expected a zero scene to index added objects")
	}
}

type tickRecorder struct {
	BaseComponent
	log *[]string
}

func (r *tickRecorder) FixedUpdate(dt float32) {
	*r.log = append(*r.log, "component")
}

func TestSceneFixedUpdateStepsTasksFirst(t *testing.T) {
	scene := NewScene("Test")
	var log []string

	obj := NewGameObject("Recorder")
	obj.AddComponent(&tickRecorder{log: &log})
	scene.AddGameObject(obj)

	scene.Scheduler.Start(TaskFunc(func(dt float32) bool {
		log = append(log, "task")
		return true
	}))

	scene.FixedUpdate(0.02)

	if len(log) != 2 || log[0] != "task" || log[1] != "component" {
		t.Errorf("Expected [task component], got %v", log)
	}
}

func TestSceneFixedUpdateSkipsInactive(t *testing.T) {
	scene := NewScene("Test")
	var log []string

	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	child.AddComponent(&tickRecorder{log: &log})
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	scene.AddGameObject(parent)
	scene.AddGameObject(child)

	parent.Active = false
	scene.FixedUpdate(0.02)

	if len(log) != 0 {
		t.Errorf("Expected no ticks under an inactive parent, got %d", len(log))
	}
}
