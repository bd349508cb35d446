package components

import (
	"cubeplanets/internal/engine"
)

func init() {
	engine.RegisterScript("DestroyOnEnter", destroyOnEnterFactory)
	engine.RegisterScript("GravityOverrideOnEnter", gravityOverrideFactory)
	engine.RegisterScript("PlayerWrangler", playerWranglerFactory)
	engine.RegisterScript("CharacterAnimator", characterAnimatorFactory)
}

func destroyOnEnterFactory(props engine.Props) (engine.Component, error) {
	return &DestroyOnEnter{}, nil
}

func gravityOverrideFactory(props engine.Props) (engine.Component, error) {
	o := NewGravityOverrideOnEnter()
	o.Multiplier = props.Float("multiplier", o.Multiplier)
	return o, nil
}

func playerWranglerFactory(props engine.Props) (engine.Component, error) {
	return &PlayerWrangler{}, nil
}

func characterAnimatorFactory(props engine.Props) (engine.Component, error) {
	return &CharacterAnimator{}, nil
}
