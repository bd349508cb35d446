package engine

import (
	"errors"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrParentCycle is returned when a reparent would make an object its own ancestor.
var ErrParentCycle = errors.New("engine: reparent would create a cycle")

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

type GameObject struct {
	UID       uint64
	Name      string
	Transform Transform
	Active    bool
	Scene     *Scene

	// Parent is a non-owning back-reference. Only SetParent writes it, and SetParent
	// keeps the hierarchy acyclic.
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.QuaternionIdentity(),
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component on g assignable to T.
func GetComponent[T any](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponents returns every component on g assignable to T.
func GetComponents[T any](g *GameObject) []T {
	if g == nil {
		return nil
	}
	var result []T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			result = append(result, typed)
		}
	}
	return result
}

// GetComponentInParent searches g and then its ancestors, nearest first.
func GetComponentInParent[T any](g *GameObject) T {
	var zero T
	for obj := g; obj != nil; obj = obj.Parent {
		for _, c := range obj.components {
			if typed, ok := c.(T); ok {
				return typed
			}
		}
	}
	return zero
}

// GetComponentsInParent collects matches on g and all of its ancestors, nearest first.
func GetComponentsInParent[T any](g *GameObject) []T {
	var result []T
	for obj := g; obj != nil; obj = obj.Parent {
		result = append(result, GetComponents[T](obj)...)
	}
	return result
}

// GetComponentsInChildren collects matches on g and all of its descendants, depth first.
func GetComponentsInChildren[T any](g *GameObject) []T {
	if g == nil {
		return nil
	}
	result := GetComponents[T](g)
	for _, child := range g.Children {
		result = append(result, GetComponentsInChildren[T](child)...)
	}
	return result
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.ActiveInHierarchy() {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) FixedUpdate(deltaTime float32) {
	if !g.ActiveInHierarchy() {
		return
	}
	for _, c := range g.components {
		if f, ok := c.(FixedUpdater); ok {
			f.FixedUpdate(deltaTime)
		}
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

// ActiveInHierarchy reports whether g and all of its ancestors are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for obj := g; obj != nil; obj = obj.Parent {
		if !obj.Active {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether g appears in other's parent chain.
func (g *GameObject) IsAncestorOf(other *GameObject) bool {
	for p := other.Parent; p != nil; p = p.Parent {
		if p == g {
			return true
		}
	}
	return false
}

// AddChild attaches child under g, keeping the child's local transform.
func (g *GameObject) AddChild(child *GameObject) error {
	return child.SetParent(g, false)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetParent moves g under parent (nil means the world root). With keepWorld the world
// position, rotation and scale are preserved by rewriting the local transform.
// A parent that is g itself or one of its descendants is rejected with ErrParentCycle.
func (g *GameObject) SetParent(parent *GameObject, keepWorld bool) error {
	if parent == g.Parent {
		return nil
	}
	if parent == g || (parent != nil && g.IsAncestorOf(parent)) {
		return ErrParentCycle
	}

	worldPos := g.WorldPosition()
	worldRot := g.WorldRotation()
	worldScale := g.WorldScale()

	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	g.Parent = parent
	if parent != nil {
		parent.Children = append(parent.Children, g)
	}

	if keepWorld {
		g.SetWorldPosition(worldPos)
		g.SetWorldRotation(worldRot)
		if parent != nil {
			g.Transform.Scale = divideSafe(worldScale, parent.WorldScale())
		} else {
			g.Transform.Scale = worldScale
		}
	}
	return nil
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}
	return rl.Vector3Add(parentPos, rl.Vector3RotateByQuaternion(scaled, parentRot))
}

func (g *GameObject) WorldRotation() rl.Quaternion {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.QuaternionMultiply(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

func (g *GameObject) SetWorldPosition(pos rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = pos
		return
	}
	g.Transform.Position = g.Parent.InverseTransformPoint(pos)
}

func (g *GameObject) SetWorldRotation(rot rl.Quaternion) {
	rot = rl.QuaternionNormalize(rot)
	if g.Parent == nil {
		g.Transform.Rotation = rot
		return
	}
	inv := rl.QuaternionInvert(g.Parent.WorldRotation())
	g.Transform.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(inv, rot))
}

// TransformPoint converts a point from g's local space to world space.
func (g *GameObject) TransformPoint(local rl.Vector3) rl.Vector3 {
	scale := g.WorldScale()
	scaled := rl.Vector3{X: local.X * scale.X, Y: local.Y * scale.Y, Z: local.Z * scale.Z}
	return rl.Vector3Add(g.WorldPosition(), rl.Vector3RotateByQuaternion(scaled, g.WorldRotation()))
}

// InverseTransformPoint converts a world-space point into g's local space.
func (g *GameObject) InverseTransformPoint(world rl.Vector3) rl.Vector3 {
	rel := rl.Vector3Subtract(world, g.WorldPosition())
	unrotated := rl.Vector3RotateByQuaternion(rel, rl.QuaternionInvert(g.WorldRotation()))
	return divideSafe(unrotated, g.WorldScale())
}

// TransformDirection rotates a local direction into world space, ignoring scale.
func (g *GameObject) TransformDirection(dir rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(dir, g.WorldRotation())
}

// InverseTransformDirection rotates a world direction into local space, ignoring scale.
func (g *GameObject) InverseTransformDirection(dir rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(dir, rl.QuaternionInvert(g.WorldRotation()))
}

func (g *GameObject) Right() rl.Vector3 {
	return g.TransformDirection(rl.Vector3{X: 1})
}

func (g *GameObject) Up() rl.Vector3 {
	return g.TransformDirection(rl.Vector3{Y: 1})
}

func (g *GameObject) Forward() rl.Vector3 {
	return g.TransformDirection(rl.Vector3{Z: 1})
}

// RotateAround rotates g about a world-space pivot and axis by angle degrees,
// moving its position and turning its orientation together.
func (g *GameObject) RotateAround(pivot, axis rl.Vector3, angle float32) {
	q := rl.QuaternionFromAxisAngle(rl.Vector3Normalize(axis), angle*rl.Deg2rad)
	offset := rl.Vector3Subtract(g.WorldPosition(), pivot)
	g.SetWorldPosition(rl.Vector3Add(pivot, rl.Vector3RotateByQuaternion(offset, q)))
	g.SetWorldRotation(rl.QuaternionMultiply(q, g.WorldRotation()))
}

// LookAt turns g so its forward axis points at target. A target at g's own
// position leaves the rotation unchanged.
func (g *GameObject) LookAt(target, worldUp rl.Vector3) {
	forward := rl.Vector3Subtract(target, g.WorldPosition())
	if rl.Vector3Length(forward) < 1e-6 {
		return
	}
	g.SetWorldRotation(LookRotation(forward, worldUp))
}

func divideSafe(v, by rl.Vector3) rl.Vector3 {
	div := func(a, b float32) float32 {
		if b == 0 {
			return a
		}
		return a / b
	}
	return rl.Vector3{X: div(v.X, by.X), Y: div(v.Y, by.Y), Z: div(v.Z, by.Z)}
}
