package components

import (
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
)

// DestroyOnEnter sits on a trigger collider. Destroyable planets that touch it are
// deactivated, except the planet the trigger belongs to.
type DestroyOnEnter struct {
	engine.BaseComponent
	myPlanet *Planet
}

func (d *DestroyOnEnter) Start() {
	d.myPlanet = engine.GetComponentInParent[*Planet](d.GetGameObject())
	if d.myPlanet == nil {
		logger.L().Warn("destroy trigger has no planet of its own", "object", d.GetGameObject().Name)
	}
}

func (d *DestroyOnEnter) OnTriggerEnter(other *engine.GameObject) {
	planet := engine.GetComponentInParent[*Planet](other)
	if planet == nil || !planet.Destroyable || planet == d.myPlanet {
		return
	}
	target := planet.GetGameObject()

	// players standing on the planet must not vanish with it
	for _, p := range engine.GetComponentsInChildren[*PlayerStats](target) {
		if err := p.GetGameObject().SetParent(nil, true); err != nil {
			logger.L().Warn("cannot detach player", "player", p.GetGameObject().Name, "error", err)
		}
	}
	target.Active = false
	logger.L().Info("planet destroyed", "planet", target.Name, "by", d.GetGameObject().Name)
}

func (d *DestroyOnEnter) OnTriggerExit(other *engine.GameObject) {}

// GravityOverrideOnEnter strengthens the gravity of bodies inside its volume and
// forces it on, restoring both when they leave.
type GravityOverrideOnEnter struct {
	engine.BaseComponent
	Multiplier float32

	original map[*Gravity]float32
}

func NewGravityOverrideOnEnter() *GravityOverrideOnEnter {
	return &GravityOverrideOnEnter{Multiplier: 2}
}

func (o *GravityOverrideOnEnter) OnTriggerEnter(other *engine.GameObject) {
	g := engine.GetComponent[*Gravity](other)
	if g == nil {
		return
	}
	if o.original == nil {
		o.original = make(map[*Gravity]float32)
	}
	if _, inside := o.original[g]; inside {
		return
	}
	o.original[g] = g.Acceleration
	g.Acceleration *= o.Multiplier
	g.SetForceApplyGravity(true)
}

func (o *GravityOverrideOnEnter) OnTriggerExit(other *engine.GameObject) {
	g := engine.GetComponent[*Gravity](other)
	if g == nil {
		return
	}
	acc, inside := o.original[g]
	if !inside {
		return
	}
	delete(o.original, g)
	g.Acceleration = acc
	g.SetForceApplyGravity(false)
}
