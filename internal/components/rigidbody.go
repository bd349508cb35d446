package components

import (
	"cubeplanets/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rigidbody is the velocity and force state of a simulated body. The physics world
// integrates it once per fixed tick; gameplay code talks to it through engine.Body.
type Rigidbody struct {
	engine.BaseComponent
	Mass        float32
	Drag        float32 // linear drag, fraction of velocity removed per second
	IsKinematic bool    // moved by gameplay code, never integrated

	velocity     rl.Vector3
	acceleration rl.Vector3 // accumulated since the last Integrate
}

var _ engine.Body = (*Rigidbody)(nil)

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass: 1.0,
	}
}

func (r *Rigidbody) Velocity() rl.Vector3 {
	return r.velocity
}

func (r *Rigidbody) SetVelocity(v rl.Vector3) {
	r.velocity = v
}

func (r *Rigidbody) SetDrag(drag float32) {
	r.Drag = drag
}

// AddForce applies f according to mode. Continuous modes accumulate until the next
// Integrate, instant modes change the velocity immediately.
func (r *Rigidbody) AddForce(f rl.Vector3, mode engine.ForceMode) {
	mass := r.Mass
	if mass <= 0 {
		mass = 1
	}
	switch mode {
	case engine.ForceModeForce:
		r.acceleration = rl.Vector3Add(r.acceleration, rl.Vector3Scale(f, 1/mass))
	case engine.ForceModeAcceleration:
		r.acceleration = rl.Vector3Add(r.acceleration, f)
	case engine.ForceModeImpulse:
		r.velocity = rl.Vector3Add(r.velocity, rl.Vector3Scale(f, 1/mass))
	case engine.ForceModeVelocityChange:
		r.velocity = rl.Vector3Add(r.velocity, f)
	}
}

// Integrate advances the body by one fixed tick: accumulated acceleration, then drag,
// then position. Kinematic bodies only drop their accumulated forces.
func (r *Rigidbody) Integrate(deltaTime float32) {
	defer func() { r.acceleration = rl.Vector3{} }()
	g := r.GetGameObject()
	if r.IsKinematic || g == nil {
		return
	}

	r.velocity = rl.Vector3Add(r.velocity, rl.Vector3Scale(r.acceleration, deltaTime))

	damping := 1 - r.Drag*deltaTime
	if damping < 0 {
		damping = 0
	}
	r.velocity = rl.Vector3Scale(r.velocity, damping)

	g.SetWorldPosition(rl.Vector3Add(g.WorldPosition(), rl.Vector3Scale(r.velocity, deltaTime)))
}
