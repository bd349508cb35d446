package components

import (
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"cubeplanets/internal/metrics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CharacterMovement is the jump and ground pound state machine of a player. It reads
// input from Jump and MoveDirection, drives the player's rigidbody, and hands ground
// pound landings to the hit reactions of the struck planet.
type CharacterMovement struct {
	engine.BaseComponent

	// Speed
	GroundedMoveForce       float32
	AirMoveForce            float32 // multiplier applied to the move force while airborne
	MaxSpeed                float32
	JumpSpeed               float32
	GroundPoundSpeed        float32
	RotationSpeed           float32
	GroundPoundRecoveryTime float32

	// Grounding
	GroundCheck         rl.Vector3 // local position of the ground probe
	GroundCheckDistance float32
	GroundMask          engine.LayerMask
	AirDrag             float32
	GroundDrag          float32
	MinAirTimeForPound  float32
	MaxJumpTime         float32

	// Input
	Jump          bool
	MoveDirection rl.Vector3

	Metrics *metrics.Collector

	stats    *PlayerStats
	gravity  *Gravity
	body     engine.Body
	animator Animator

	grounded      bool
	usingPound    bool
	jumping       bool
	overrideGrav  bool
	airTime       float32
	jumpTimer     float32
	recoveryTimer float32
	speed         float32
	lookDirection rl.Vector3
	facing        rl.Quaternion
	ready         bool
}

func NewCharacterMovement() *CharacterMovement {
	return &CharacterMovement{
		GroundedMoveForce:       5,
		AirMoveForce:            0.1,
		MaxSpeed:                6,
		JumpSpeed:               8,
		GroundPoundSpeed:        20,
		RotationSpeed:           10,
		GroundPoundRecoveryTime: 0.5,
		GroundCheck:             rl.Vector3{Y: -0.5},
		GroundCheckDistance:     0.3,
		GroundMask:              engine.MaskOf(engine.LayerGround),
		GroundDrag:              5,
		MinAirTimeForPound:      0.2,
		MaxJumpTime:             0.5,
	}
}

// Start resolves the required companions. Without them the controller stays inert.
// The animator is optional.
func (c *CharacterMovement) Start() {
	g := c.GetGameObject()
	c.stats = engine.GetComponent[*PlayerStats](g)
	c.gravity = engine.GetComponent[*Gravity](g)
	c.body = engine.GetComponent[engine.Body](g)
	c.animator = engine.GetComponent[Animator](g)
	c.lookDirection = rl.Vector3{Z: 1}
	c.facing = rl.QuaternionIdentity()

	if c.stats == nil || c.gravity == nil || c.body == nil {
		logger.L().Error("character movement needs player stats, gravity and a rigidbody", "object", g.Name)
		return
	}
	if engine.GetComponent[Collider](g) == nil {
		logger.L().Error("a valid player should have some sort of collider", "object", g.Name)
	}
	if c.animator == nil {
		logger.L().Warn("no animator on character, animation triggers skipped", "object", g.Name)
	}
	c.ready = true
}

func (c *CharacterMovement) IsGrounded() bool          { return c.grounded }
func (c *CharacterMovement) IsUsingGroundPound() bool  { return c.usingPound }
func (c *CharacterMovement) Speed() float32            { return c.speed }
func (c *CharacterMovement) LookDirection() rl.Vector3 { return c.lookDirection }

// Facing is the local rotation a renderer would give the character's model.
func (c *CharacterMovement) Facing() rl.Quaternion { return c.facing }

// SetOverrideGravity marks the character as held by an external gravity source,
// which keeps gravity direction changes locked.
func (c *CharacterMovement) SetOverrideGravity(v bool) {
	c.overrideGrav = v
	if c.gravity != nil {
		c.gravity.SetCanChangeDirection(!v)
	}
}

// Update refreshes the grounded state, attaches the character to whatever it stands
// on, and lands pending ground pounds.
func (c *CharacterMovement) Update(deltaTime float32) {
	if !c.ready {
		return
	}
	g := c.GetGameObject()
	world := worldOf(g)
	if world == nil {
		return
	}

	probe := g.TransformPoint(c.GroundCheck)
	half := c.GroundCheckDistance / 2
	boxCenter := rl.Vector3Subtract(probe, rl.Vector3Scale(g.Up(), half))
	c.grounded = len(world.OverlapBox(boxCenter, rl.Vector3{X: half, Y: half, Z: half}, g.WorldRotation(), c.GroundMask)) > 0

	if c.grounded {
		c.airTime = 0
		if hit, ok := world.Raycast(probe, c.gravity.Direction(), c.GroundCheckDistance, c.GroundMask); ok {
			if err := g.SetParent(hit.GameObject, true); err != nil {
				logger.L().Debug("cannot attach character to ground", "object", g.Name, "ground", hit.GameObject.Name, "error", err)
			}
			if c.usingPound {
				c.landPound(hit)
			}
			c.usingPound = false
		}
		c.gravity.SetCanChangeDirection(!c.overrideGrav)
	} else {
		c.airTime += deltaTime
		if g.Parent != nil {
			_ = g.SetParent(nil, true)
		}
	}

	if rl.Vector3Length(c.MoveDirection) > 0.1 {
		target := engine.LookRotation(c.lookDirection, rl.Vector3{Y: 1})
		c.facing = engine.Slerp(c.facing, target, deltaTime*c.RotationSpeed)
	}

	if c.recoveryTimer > 0 {
		c.recoveryTimer -= deltaTime
	}
}

func (c *CharacterMovement) landPound(hit engine.RaycastResult) {
	planet := engine.GetComponentInParent[*Planet](hit.GameObject)
	n := DispatchHit(c.stats, hit.GameObject, hit.Point, hit.Normal)
	if planet != nil {
		c.Metrics.RecordHit(planet.Name())
	}
	logger.L().Debug("ground pound landed", "object", c.GetGameObject().Name, "ground", hit.GameObject.Name, "reactions", n)
	c.recoveryTimer = c.GroundPoundRecoveryTime
}

// FixedUpdate applies jump, ground pound and movement forces and limits speed.
func (c *CharacterMovement) FixedUpdate(deltaTime float32) {
	if !c.ready {
		return
	}
	g := c.GetGameObject()

	// 1. jump requests
	if c.Jump {
		if !c.jumping {
			if c.grounded {
				if c.animator != nil {
					c.animator.SetJump(true)
				}
				c.jumping = true
				c.jumpTimer = c.MaxJumpTime

				jump := rl.Vector3Scale(rl.Vector3Negate(c.gravity.Direction()), c.JumpSpeed)
				c.body.SetVelocity(rl.Vector3Add(c.body.Velocity(), jump))

				c.gravity.SetCanApplyGravity(false)
				c.gravity.SetCanChangeDirection(false)
			} else if !c.usingPound && c.airTime > c.MinAirTimeForPound {
				if c.animator != nil {
					c.animator.SetGroundPound(true)
				}
				pound := rl.Vector3Scale(c.gravity.Direction(), c.GroundPoundSpeed)
				c.body.SetVelocity(rl.Vector3Add(c.body.Velocity(), pound))
				c.gravity.SetCanChangeDirection(!c.overrideGrav)
				c.usingPound = true
				c.Jump = false
			}
		}

		if c.jumping {
			c.jumpTimer -= deltaTime
			if c.jumpTimer <= 0 {
				c.Jump = false
			}
		}
	} else {
		c.gravity.SetCanApplyGravity(true)
		c.gravity.SetCanChangeDirection(!c.overrideGrav)
		c.jumping = false
	}

	// 2. movement
	var moveForce rl.Vector3
	if rl.Vector3Length(c.MoveDirection) > 0 {
		c.MoveDirection = rl.Vector3Normalize(c.MoveDirection)
		c.lookDirection = c.MoveDirection
		moveForce = rl.Vector3Scale(rl.Vector3RotateByQuaternion(c.MoveDirection, g.WorldRotation()), c.GroundedMoveForce)
	}

	if !c.grounded {
		moveForce = rl.Vector3Scale(moveForce, c.AirMoveForce)
	} else if c.animator != nil {
		c.animator.SetJump(false)
		c.animator.SetGroundPound(false)
	}

	if c.recoveryTimer <= 0 {
		c.body.AddForce(moveForce, engine.ForceModeVelocityChange)
	}

	// 3. speed limit on the plane perpendicular to gravity
	if c.grounded && rl.Vector3Length(c.MoveDirection) > 0.1 {
		c.body.SetDrag(c.GroundDrag)
	} else {
		c.body.SetDrag(c.AirDrag)
	}

	v := c.body.Velocity()
	planar := engine.ProjectOnPlane(v, rl.Vector3Negate(c.gravity.Direction()))
	drop := g.InverseTransformDirection(rl.Vector3Subtract(v, planar))
	c.speed = rl.Vector3Length(planar)

	if drop.Y <= 0 {
		c.gravity.SetCanChangeDirection(!c.overrideGrav)
	}

	if c.speed > c.MaxSpeed {
		limited := rl.Vector3Scale(rl.Vector3Normalize(planar), c.MaxSpeed)
		c.body.SetVelocity(rl.Vector3Add(rl.Vector3Subtract(v, planar), limited))
		c.speed = c.MaxSpeed
	}

	if c.animator != nil {
		c.animator.SetGrounded(c.grounded)
		c.animator.SetSpeed(c.speed)
	}
}

func worldOf(g *engine.GameObject) engine.WorldAccess {
	if g == nil || g.Scene == nil {
		return nil
	}
	return g.Scene.World
}
