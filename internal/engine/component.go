package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// FixedUpdater is implemented by components that need the fixed-timestep physics tick.
// Gravity and character physics run here so that transforms written by rotation tasks
// are read at a consistent point in the tick.
type FixedUpdater interface {
	FixedUpdate(deltaTime float32)
}

// TriggerHandler is implemented by components that want trigger volume callbacks.
// The physics world calls these when a collider marked as a trigger starts or stops
// overlapping another collider.
type TriggerHandler interface {
	OnTriggerEnter(other *GameObject)
	OnTriggerExit(other *GameObject)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
