package components

import (
	"cubeplanets/internal/engine"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type characterRig struct {
	player   *engine.GameObject
	cm       *CharacterMovement
	gravity  *Gravity
	body     *Rigidbody
	animator *CharacterAnimator
	ground   *engine.GameObject
	reaction *hitRecorder
	world    *fakeWorld
}

func newCharacterRig(grounded bool) *characterRig {
	ground, _ := newPlanetObject("Ground", false)
	reaction := &hitRecorder{}
	ground.AddComponent(reaction)

	world := &fakeWorld{}
	if grounded {
		world.boxHits = []*engine.GameObject{ground}
		world.ray = engine.RaycastResult{GameObject: ground, Point: rl.Vector3{Y: 0.5}, Normal: rl.Vector3{Y: 1}, Distance: 0.1}
		world.rayOK = true
	}

	player := engine.NewGameObject("Player")
	player.Transform.Position = rl.Vector3{Y: 1}
	rig := &characterRig{
		player:   player,
		cm:       NewCharacterMovement(),
		gravity:  NewGravity(),
		body:     NewRigidbody(),
		animator: &CharacterAnimator{},
		ground:   ground,
		reaction: reaction,
		world:    world,
	}
	player.AddComponent(&PlayerStats{Theme: ThemeCowboy})
	player.AddComponent(rig.body)
	player.AddComponent(rig.gravity)
	player.AddComponent(NewSphereCollider(0.5))
	player.AddComponent(rig.animator)
	player.AddComponent(rig.cm)

	newTestScene(world, ground, player)
	player.Start()
	return rig
}

func TestCharacterGroundedAttachesToGround(t *testing.T) {
	rig := newCharacterRig(true)

	rig.cm.Update(0.016)
	if !rig.cm.IsGrounded() {
		t.Fatal("Expected character to be grounded")
	}
	if rig.player.Parent != rig.ground {
		t.Error("Expected character parented under the ground it stands on")
	}
	if !vecNear(rig.player.WorldPosition(), rl.Vector3{Y: 1}) {
		t.Errorf("Expected world position kept at (0,1,0), got %v", rig.player.WorldPosition())
	}
	if rig.reaction.hits != 0 {
		t.Errorf("Expected no hit without a ground pound, got %d", rig.reaction.hits)
	}
}

func TestCharacterAirborneDetaches(t *testing.T) {
	rig := newCharacterRig(true)
	rig.cm.Update(0.016)

	rig.world.boxHits = nil
	rig.cm.Update(0.016)
	if rig.cm.IsGrounded() {
		t.Error("Expected character airborne")
	}
	if rig.player.Parent != nil {
		t.Error("Expected airborne character detached to the root")
	}
}

func TestCharacterJump(t *testing.T) {
	rig := newCharacterRig(true)
	rig.cm.Update(0.016)

	rig.cm.Jump = true
	rig.cm.FixedUpdate(0.02)

	if !vecNear(rig.body.Velocity(), rl.Vector3{Y: rig.cm.JumpSpeed}) {
		t.Errorf("Expected upward velocity %v, got %v", rig.cm.JumpSpeed, rig.body.Velocity())
	}
	if rig.gravity.CanApplyGravity() {
		t.Error("Expected gravity suspended during the jump")
	}
	if rig.gravity.CanChangeDirection() {
		t.Error("Expected gravity direction locked while rising")
	}
	if rig.animator.Jumps != 1 {
		t.Errorf("Expected 1 jump trigger, got %d", rig.animator.Jumps)
	}

	// releasing the button restores gravity
	rig.cm.Jump = false
	rig.cm.FixedUpdate(0.02)
	if !rig.gravity.CanApplyGravity() {
		t.Error("Expected gravity back on after releasing jump")
	}
}

func TestCharacterJumpTimesOut(t *testing.T) {
	rig := newCharacterRig(true)
	rig.cm.Update(0.016)
	rig.cm.MaxJumpTime = 0.05

	rig.cm.Jump = true
	for i := 0; i < 3; i++ {
		rig.cm.FixedUpdate(0.02)
	}
	if rig.cm.Jump {
		t.Error("Expected jump input cleared after the max jump time")
	}
}

func TestCharacterGroundPound(t *testing.T) {
	rig := newCharacterRig(false)

	// airborne long enough for a pound
	for i := 0; i < 20; i++ {
		rig.cm.Update(0.016)
	}
	rig.cm.Jump = true
	rig.cm.FixedUpdate(0.02)

	if !rig.cm.IsUsingGroundPound() {
		t.Fatal("Expected ground pound to start")
	}
	if rig.cm.Jump {
		t.Error("Expected jump input consumed by the pound")
	}
	if rig.body.Velocity().Y > -rig.cm.GroundPoundSpeed+0.01 {
		t.Errorf("Expected downward pound velocity, got %v", rig.body.Velocity())
	}
	if rig.animator.GroundPounds != 1 {
		t.Errorf("Expected 1 ground pound trigger, got %d", rig.animator.GroundPounds)
	}

	// landing dispatches the hit to the ground's reactions
	rig.world.boxHits = []*engine.GameObject{rig.ground}
	rig.world.ray = engine.RaycastResult{GameObject: rig.ground, Point: rl.Vector3{Y: 0.5}, Normal: rl.Vector3{Y: 1}}
	rig.world.rayOK = true
	rig.cm.Update(0.016)

	if rig.reaction.hits != 1 {
		t.Errorf("Expected 1 hit reaction, got %d", rig.reaction.hits)
	}
	if rig.cm.IsUsingGroundPound() {
		t.Error("Expected pound to end on landing")
	}

	// movement is suppressed while recovering
	rig.body.SetVelocity(rl.Vector3{})
	rig.cm.MoveDirection = rl.Vector3{X: 1}
	rig.cm.FixedUpdate(0.02)
	if rig.body.Velocity() != (rl.Vector3{}) {
		t.Errorf("Expected no movement during recovery, got %v", rig.body.Velocity())
	}
}

func TestCharacterNoPoundTooSoon(t *testing.T) {
	rig := newCharacterRig(false)
	rig.cm.Update(0.016)

	rig.cm.Jump = true
	rig.cm.FixedUpdate(0.02)
	if rig.cm.IsUsingGroundPound() {
		t.Error("Expected no pound before the minimum air time")
	}
}

func TestCharacterSpeedLimit(t *testing.T) {
	rig := newCharacterRig(true)
	rig.cm.Update(0.016)

	rig.body.SetVelocity(rl.Vector3{X: 30, Y: -2})
	rig.cm.FixedUpdate(0.02)

	v := rig.body.Velocity()
	planar := rl.Vector3Length(rl.Vector3{X: v.X, Z: v.Z})
	if planar > rig.cm.MaxSpeed+1e-3 {
		t.Errorf("Expected planar speed capped at %v, got %v", rig.cm.MaxSpeed, planar)
	}
	if v.Y != -2 {
		t.Errorf("Expected vertical speed untouched, got %v", v.Y)
	}
	if rig.animator.Speed != rig.cm.MaxSpeed {
		t.Errorf("Expected animator speed %v, got %v", rig.cm.MaxSpeed, rig.animator.Speed)
	}
}

func TestCharacterOverrideGravityLocksDirection(t *testing.T) {
	rig := newCharacterRig(true)
	rig.cm.SetOverrideGravity(true)
	rig.cm.Update(0.016)

	if rig.gravity.CanChangeDirection() {
		t.Error("Expected override to lock gravity direction")
	}
	rig.cm.SetOverrideGravity(false)
	if !rig.gravity.CanChangeDirection() {
		t.Error("Expected direction unlocked after clearing override")
	}
}
