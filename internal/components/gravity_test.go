package components

import (
	"cubeplanets/internal/engine"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newGravityBody(world engine.WorldAccess) (*engine.GameObject, *Gravity, *Rigidbody) {
	obj := engine.NewGameObject("Body")
	rb := NewRigidbody()
	g := NewGravity()
	obj.AddComponent(rb)
	obj.AddComponent(g)
	newTestScene(world, obj)
	obj.Start()
	return obj, g, rb
}

func TestGravityKeepsDirectionWithoutColliders(t *testing.T) {
	_, g, _ := newGravityBody(&fakeWorld{})

	for i := 0; i < 5; i++ {
		g.FixedUpdate(0.02)
	}
	if g.Direction() != (rl.Vector3{Y: -1}) {
		t.Errorf("Expected default direction (0,-1,0), got %v", g.Direction())
	}
}

func TestGravityAdoptsNearestSurface(t *testing.T) {
	near := engine.NewGameObject("Near")
	far := engine.NewGameObject("Far")
	world := &fakeWorld{
		sphereHits: []*engine.GameObject{far, near},
		closest: map[*engine.GameObject]rl.Vector3{
			far:  {Z: 10},
			near: {X: 2},
		},
	}
	_, g, _ := newGravityBody(world)

	// without a delay the change lands on the first tick
	g.FixedUpdate(0.02)
	if !vecNear(g.Direction(), rl.Vector3{X: 1}) {
		t.Errorf("Expected direction (1,0,0), got %v", g.Direction())
	}
}

func TestGravityIgnoresChangesBelowThreshold(t *testing.T) {
	surface := engine.NewGameObject("Surface")
	world := &fakeWorld{
		sphereHits: []*engine.GameObject{surface},
		closest:    map[*engine.GameObject]rl.Vector3{surface: {X: 0.004, Y: -1}},
	}
	_, g, _ := newGravityBody(world)

	for i := 0; i < 10; i++ {
		g.FixedUpdate(0.02)
	}
	if g.Direction() != (rl.Vector3{Y: -1}) {
		t.Errorf("Expected direction to stay exactly (0,-1,0), got %v", g.Direction())
	}
}

func TestGravitySkipsOwnHierarchy(t *testing.T) {
	world := &fakeWorld{}
	obj, g, _ := newGravityBody(world)
	child := engine.NewGameObject("Feet")
	if err := obj.AddChild(child); err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}
	world.sphereHits = []*engine.GameObject{obj, child}
	world.closest = map[*engine.GameObject]rl.Vector3{obj: {X: 1}, child: {Z: 1}}

	for i := 0; i < 3; i++ {
		g.FixedUpdate(0.02)
	}
	if g.Direction() != (rl.Vector3{Y: -1}) {
		t.Errorf("Expected own colliders to be ignored, got %v", g.Direction())
	}
}

func TestGravityCapsParallelSpeed(t *testing.T) {
	_, g, rb := newGravityBody(&fakeWorld{})
	rb.SetVelocity(rl.Vector3{X: 3, Y: -50})

	g.FixedUpdate(0.02)

	want := rl.Vector3{X: 3, Y: -g.MaxGravitySpeed}
	if !vecNear(rb.Velocity(), want) {
		t.Errorf("Expected velocity %v, got %v", want, rb.Velocity())
	}
}

func TestGravityGates(t *testing.T) {
	surface := engine.NewGameObject("Surface")
	world := &fakeWorld{
		sphereHits: []*engine.GameObject{surface},
		closest:    map[*engine.GameObject]rl.Vector3{surface: {X: 5}},
	}
	_, g, rb := newGravityBody(world)

	g.SetCanApplyGravity(false)
	g.FixedUpdate(0.02)
	g.FixedUpdate(0.02)
	rb.Integrate(0.02)
	if g.Direction() != (rl.Vector3{Y: -1}) {
		t.Errorf("Expected no direction change while gravity is off, got %v", g.Direction())
	}
	if rb.Velocity() != (rl.Vector3{}) {
		t.Errorf("Expected no acceleration while gravity is off, got %v", rb.Velocity())
	}

	// forcing overrides both gates
	g.SetCanChangeDirection(false)
	g.SetForceApplyGravity(true)
	g.FixedUpdate(0.02)
	g.FixedUpdate(0.02)
	if !vecNear(g.Direction(), rl.Vector3{X: 1}) {
		t.Errorf("Expected forced gravity to find (1,0,0), got %v", g.Direction())
	}
}

func TestGravitySetDelay(t *testing.T) {
	g := NewGravity()
	g.delayTimer = 2

	g.SetDelay(0.5)
	if g.Delay() != 0.5 || g.delayTimer != 0.5 {
		t.Errorf("Expected delay and timer 0.5, got %v and %v", g.Delay(), g.delayTimer)
	}

	g.SetDelay(3)
	if g.Delay() != 3 || g.delayTimer != 0.5 {
		t.Errorf("Expected delay 3 with timer kept at 0.5, got %v and %v", g.Delay(), g.delayTimer)
	}
}

func TestGravityDelayHoldsDirection(t *testing.T) {
	well := engine.NewGameObject("Well")
	world := &fakeWorld{
		sphereHits: []*engine.GameObject{well},
		closest:    map[*engine.GameObject]rl.Vector3{well: {X: 2}},
	}
	_, g, _ := newGravityBody(world)
	g.SetDelay(1)

	// 1 / 0.25 = 4 ticks of holding, the fifth accepts
	for i := 1; i <= 4; i++ {
		g.FixedUpdate(0.25)
		if g.Direction() != (rl.Vector3{Y: -1}) {
			t.Fatalf("Expected the old direction on tick %d, got %v", i, g.Direction())
		}
	}
	g.FixedUpdate(0.25)
	if !vecNear(g.Direction(), rl.Vector3{X: 1}) {
		t.Errorf("Expected (1,0,0) once the delay ran out, got %v", g.Direction())
	}
	if g.Delay() != 1 {
		t.Errorf("Expected the configured delay to stay 1, got %v", g.Delay())
	}
}

func TestGravityDelayStopsFlapping(t *testing.T) {
	a := engine.NewGameObject("A")
	b := engine.NewGameObject("B")
	world := &fakeWorld{closest: map[*engine.GameObject]rl.Vector3{a: {X: 2}, b: {X: -2}}}
	_, g, _ := newGravityBody(world)
	g.SetDelay(0.1)

	// the body straddles two wells that win on alternate ticks
	tick := func(i int) {
		world.sphereHits = []*engine.GameObject{a}
		if i%2 == 1 {
			world.sphereHits = []*engine.GameObject{b}
		}
		g.FixedUpdate(0.02)
	}

	i := 0
	for ; i < 50 && g.Direction() == (rl.Vector3{Y: -1}); i++ {
		tick(i)
	}
	first := g.Direction()
	if first == (rl.Vector3{Y: -1}) {
		t.Fatal("Expected the first change to land once the delay ran out")
	}
	for end := i + 200; i < end; i++ {
		tick(i)
		if g.Direction() != first {
			t.Fatalf("Expected direction to hold at %v, got %v on tick %d", first, g.Direction(), i)
		}
	}
	if g.Delay() != 0.1 {
		t.Errorf("Expected the configured delay to stay 0.1, got %v", g.Delay())
	}
}

func TestGravityWithoutDelaySwitchesAtOnce(t *testing.T) {
	a := engine.NewGameObject("A")
	b := engine.NewGameObject("B")
	world := &fakeWorld{closest: map[*engine.GameObject]rl.Vector3{a: {X: 2}, b: {X: -2}}}
	_, g, _ := newGravityBody(world)

	world.sphereHits = []*engine.GameObject{a}
	g.FixedUpdate(0.02)
	if !vecNear(g.Direction(), rl.Vector3{X: 1}) {
		t.Errorf("Expected (1,0,0), got %v", g.Direction())
	}
	world.sphereHits = []*engine.GameObject{b}
	g.FixedUpdate(0.02)
	if !vecNear(g.Direction(), rl.Vector3{X: -1}) {
		t.Errorf("Expected (-1,0,0), got %v", g.Direction())
	}
}

func TestGravityFacesDirection(t *testing.T) {
	obj, g, _ := newGravityBody(&fakeWorld{})
	g.SetDirection(rl.Vector3{X: -1})
	g.SetCanApplyGravity(false)

	for i := 0; i < 200; i++ {
		g.FixedUpdate(0.02)
	}
	if !vecNear(obj.Up(), rl.Vector3{X: 1}) {
		t.Errorf("Expected up to turn to (1,0,0), got %v", obj.Up())
	}
}

func TestGravityWithoutBodyIsInert(t *testing.T) {
	obj := engine.NewGameObject("Loose")
	g := NewGravity()
	obj.AddComponent(g)
	newTestScene(&fakeWorld{}, obj)
	obj.Start()

	g.FixedUpdate(0.02)
	if g.Direction() != (rl.Vector3{Y: -1}) {
		t.Errorf("Expected inert gravity to keep its direction, got %v", g.Direction())
	}
}
