package components

import (
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"cubeplanets/internal/metrics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// directionThreshold is the smallest change between the current and candidate
// direction that counts as a new gravity direction.
const directionThreshold = 0.01

// Gravity pulls its body toward the nearest surface in range and keeps the body's
// up axis facing away from that surface.
type Gravity struct {
	engine.BaseComponent

	Mask                   engine.LayerMask
	CastPoint              rl.Vector3 // local offset of the point distances are measured from
	CheckDistance          float32
	Acceleration           float32
	RotationCorrectionRate float32
	MaxGravitySpeed        float32
	FaceGravity            bool

	Metrics *metrics.Collector

	body       engine.Body
	direction  rl.Vector3
	canApply   bool
	canChange  bool
	force      bool
	delay      float32
	delayTimer float32
}

func NewGravity() *Gravity {
	return &Gravity{
		Mask:                   engine.MaskOf(engine.LayerGround),
		CheckDistance:          1000,
		Acceleration:           9.8,
		RotationCorrectionRate: 10,
		MaxGravitySpeed:        20,
		FaceGravity:            true,
		direction:              rl.Vector3{Y: -1},
		canApply:               true,
		canChange:              true,
	}
}

func (g *Gravity) Start() {
	g.body = engine.GetComponent[engine.Body](g.GetGameObject())
	if g.body == nil {
		logger.L().Error("gravity needs a rigidbody, gravity disabled", "object", g.GetGameObject().Name)
	}
	g.canApply = true
	g.canChange = true
	g.force = false
}

func (g *Gravity) FixedUpdate(deltaTime float32) {
	if g.body == nil {
		return
	}
	if g.force || g.canApply {
		g.direction = g.findDirection(deltaTime)
		g.applyGravity()
	}

	g.updateRotation(deltaTime)
}

// Direction is the current unit gravity direction.
func (g *Gravity) Direction() rl.Vector3 { return g.direction }

// SetDirection overrides the current direction, for level setup.
func (g *Gravity) SetDirection(dir rl.Vector3) {
	if rl.Vector3Length(dir) > 0 {
		g.direction = rl.Vector3Normalize(dir)
	}
}

func (g *Gravity) CanApplyGravity() bool        { return g.canApply }
func (g *Gravity) SetCanApplyGravity(v bool)    { g.canApply = v }
func (g *Gravity) CanChangeDirection() bool     { return g.canChange }
func (g *Gravity) SetCanChangeDirection(v bool) { g.canChange = v }
func (g *Gravity) ForceApplyGravity() bool      { return g.force }
func (g *Gravity) SetForceApplyGravity(v bool)  { g.force = v }
func (g *Gravity) Delay() float32               { return g.delay }

// SetDelay sets how long a new direction must keep being found before it is
// accepted. Zero accepts changes at once. A running timer is shortened to the new
// delay but never lengthened.
func (g *Gravity) SetDelay(v float32) {
	g.delay = v
	if v < g.delayTimer {
		g.delayTimer = v
	}
}

func (g *Gravity) findDirection(deltaTime float32) rl.Vector3 {
	current := g.direction
	if !g.force && !g.canChange {
		return current
	}
	obj := g.GetGameObject()
	if obj.Scene == nil || obj.Scene.World == nil {
		return current
	}

	cast := obj.TransformPoint(g.CastPoint)
	candidates := obj.Scene.World.OverlapSphere(cast, g.CheckDistance, g.Mask)

	var closest rl.Vector3
	minDistance := float32(-1)
	for _, c := range candidates {
		if c == obj || obj.IsAncestorOf(c) {
			continue
		}
		p := obj.Scene.World.ClosestPoint(c, cast)
		d := rl.Vector3Distance(cast, p)
		if minDistance < 0 || d < minDistance {
			minDistance = d
			closest = p
		}
	}
	// nothing in range, or the cast point is inside a collider
	if minDistance <= 0 {
		return current
	}

	candidate := rl.Vector3Normalize(rl.Vector3Subtract(closest, cast))
	if rl.Vector3Length(rl.Vector3Subtract(current, candidate)) <= directionThreshold {
		// a pending change that the body moved back out of is dropped
		g.delayTimer = 0
		return current
	}
	if g.delay <= 0 {
		g.Metrics.RecordGravityChange(obj.Name)
		return candidate
	}

	// the first sighting arms the timer, later ones run it down
	if g.delayTimer <= 0 {
		g.delayTimer = g.delay
		return current
	}
	g.delayTimer -= deltaTime
	if g.delayTimer > 0 {
		return current
	}
	g.delayTimer = 0
	g.Metrics.RecordGravityChange(obj.Name)
	return candidate
}

func (g *Gravity) applyGravity() {
	g.body.AddForce(rl.Vector3Scale(g.direction, g.Acceleration), engine.ForceModeForce)

	v := g.body.Velocity()
	along := engine.Project(v, g.direction)
	if rl.Vector3Length(along) > g.MaxGravitySpeed {
		capped := rl.Vector3Scale(rl.Vector3Normalize(along), g.MaxGravitySpeed)
		g.body.SetVelocity(rl.Vector3Add(rl.Vector3Subtract(v, along), capped))
	}
}

func (g *Gravity) updateRotation(deltaTime float32) {
	if !g.force && !g.FaceGravity {
		return
	}
	obj := g.GetGameObject()
	rot := obj.WorldRotation()
	target := rl.QuaternionMultiply(engine.FromToRotation(obj.Up(), rl.Vector3Negate(g.direction)), rot)
	obj.SetWorldRotation(engine.Slerp(rot, target, g.RotationCorrectionRate*deltaTime))
}
