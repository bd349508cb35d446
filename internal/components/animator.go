package components

import (
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
)

// Animator receives character state for animation playback.
type Animator interface {
	SetJump(active bool)
	SetGroundPound(active bool)
	SetGrounded(grounded bool)
	SetSpeed(speed float32)
}

// CharacterAnimator tracks animation triggers and parameters without playing clips.
// The simulator uses it to report what a renderer would show.
type CharacterAnimator struct {
	engine.BaseComponent
	Jump        bool
	GroundPound bool
	Grounded    bool
	Speed       float32

	Jumps        int
	GroundPounds int
}

func (a *CharacterAnimator) SetJump(active bool) {
	if active && !a.Jump {
		a.Jumps++
		logger.L().Debug("animation trigger", "object", a.GetGameObject().Name, "trigger", "Jump")
	}
	a.Jump = active
}

func (a *CharacterAnimator) SetGroundPound(active bool) {
	if active && !a.GroundPound {
		a.GroundPounds++
		logger.L().Debug("animation trigger", "object", a.GetGameObject().Name, "trigger", "GroundPound")
	}
	a.GroundPound = active
}

func (a *CharacterAnimator) SetGrounded(grounded bool) { a.Grounded = grounded }
func (a *CharacterAnimator) SetSpeed(speed float32)    { a.Speed = speed }
