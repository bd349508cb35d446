package components

import (
	"cubeplanets/internal/engine"
	"cubeplanets/internal/physicsgroup"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newGalaxy(name string, planets ...string) (*Galaxy, []*Planet) {
	obj := engine.NewGameObject(name)
	galaxy := NewGalaxy(100)
	obj.AddComponent(galaxy)
	var out []*Planet
	for _, n := range planets {
		p := engine.NewGameObject(n)
		planet := NewPlanet()
		p.AddComponent(planet)
		_ = obj.AddChild(p)
		out = append(out, planet)
	}
	return galaxy, out
}

func TestGalaxyGroupIDs(t *testing.T) {
	physicsgroup.Reset()
	t.Cleanup(physicsgroup.Reset)

	g1, p1 := newGalaxy("G1", "A", "B")
	g2, p2 := newGalaxy("G2", "C")

	if id := g1.PhysicsGroupID(); id != 1 {
		t.Errorf("Expected first galaxy id 1, got %d", id)
	}
	if id := g2.PhysicsGroupID(); id != 2 {
		t.Errorf("Expected second galaxy id 2, got %d", id)
	}
	if id := g1.PhysicsGroupID(); id != 1 {
		t.Errorf("Expected id to be stable, got %d", id)
	}
	for _, p := range p1 {
		if p.PhysicsGroupID != 1 {
			t.Errorf("Expected planet %s in group 1, got %d", p.Name(), p.PhysicsGroupID)
		}
	}
	if p2[0].PhysicsGroupID != 2 {
		t.Errorf("Expected planet C in group 2, got %d", p2[0].PhysicsGroupID)
	}
}

func TestGalaxyInRange(t *testing.T) {
	g, _ := newGalaxy("G")
	g.MaxPlayerDistance = 10

	if !g.InRange(rl.Vector3{X: 9.9}) {
		t.Error("Expected point inside range")
	}
	if g.InRange(rl.Vector3{X: 10}) {
		t.Error("Expected point at the range limit to be outside")
	}
}

func TestNewPlanetIdentity(t *testing.T) {
	a, b := NewPlanet(), NewPlanet()
	if a.ID == b.ID {
		t.Error("Expected unique planet ids")
	}
	if a.HalfExtents() != (rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("Expected half extents 0.5, got %v", a.HalfExtents())
	}
	if a.PhysicsGroupID != physicsgroup.Undefined {
		t.Errorf("Expected undefined group, got %d", a.PhysicsGroupID)
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"cowboy", ThemeCowboy, false},
		{"Japanese", ThemeJapanese, false},
		{"none", ThemeNone, false},
		{"pirate", ThemeNone, true},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTheme(%q): expected error %v, got %v", tt.in, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("ParseTheme(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if (&PlayerStats{Theme: ThemeNone}).ValidTheme() {
		t.Error("Expected ThemeNone to be invalid for a player")
	}
}
