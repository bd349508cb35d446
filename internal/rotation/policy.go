package rotation

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/engine"
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Policy names accepted by NewPolicy and the level files.
const (
	PolicyRotatable          = "rotatable"
	PolicyFurthestFromAxis   = "furthest_from_axis"
	PolicyFurthestFromOrigin = "furthest_from_origin"
)

// slabThickness is the depth of the overlap box along the rotation axis for the
// axis-aligned policies.
const slabThickness = 0.1

// neighbourSkin extends the neighbour probe of FurthestFromAxis past the planet face.
const neighbourSkin = 0.1

var ErrUnknownPolicy = errors.New("rotation: unknown policy")

// Settings are the tuning values shared by every policy.
type Settings struct {
	MaxDistanceFromAxis float32
	// NeighbourDistance is the probe length the rotatable policy uses to look for a
	// planet next to the struck one.
	NeighbourDistance float32
	Mask              engine.LayerMask
}

func DefaultSettings() Settings {
	return Settings{
		MaxDistanceFromAxis: 30,
		NeighbourDistance:   26,
		Mask:                engine.MaskOf(engine.LayerGround),
	}
}

// Hit is the input of an axis policy: one ground pound landing on a planet of a galaxy.
type Hit struct {
	World  engine.WorldAccess
	Galaxy *engine.GameObject
	Planet *components.Planet
	Point  rl.Vector3
	Normal rl.Vector3
}

// Request is a resolved rotation: which axis to turn about, which way, and the box
// that selects the member planets.
type Request struct {
	Axis     rl.Vector3 // world space, unit
	Positive bool
	// Center, HalfExtents and Orientation describe the membership overlap box.
	Center      rl.Vector3
	HalfExtents rl.Vector3
	Orientation rl.Quaternion
	// Steal reassigns captured planets to the rotating galaxy's physics group.
	Steal bool
}

// Sign returns +1 or -1 for the rotation direction.
func (r Request) Sign() float32 {
	if r.Positive {
		return 1
	}
	return -1
}

// AxisPolicy turns a hit into a rotation request. Policies only read the scene.
type AxisPolicy interface {
	Name() string
	Resolve(hit Hit) Request
}

// NewPolicy builds the named policy.
func NewPolicy(name string, s Settings) (AxisPolicy, error) {
	switch name {
	case PolicyRotatable, "":
		return &Rotatable{Settings: s}, nil
	case PolicyFurthestFromAxis:
		return &FurthestFromAxis{Settings: s}, nil
	case PolicyFurthestFromOrigin:
		return &FurthestFromOrigin{Settings: s}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Rotatable works with the galaxy's world basis, so it handles galaxies in any
// orientation. Planets it captures join the rotating galaxy's group.
type Rotatable struct {
	Settings
}

func (p *Rotatable) Name() string { return PolicyRotatable }

func (p *Rotatable) Resolve(hit Hit) Request {
	galaxy := hit.Galaxy
	galaxyPos := galaxy.WorldPosition()
	galaxyRot := galaxy.WorldRotation()
	planetPos := hit.Planet.GetGameObject().WorldPosition()

	galaxyHit := rl.Vector3Subtract(hit.Point, galaxyPos)
	planetHit := rl.Vector3Subtract(hit.Point, planetPos)

	up, forward, right := galaxy.Up(), galaxy.Forward(), galaxy.Right()
	distUp := rl.Vector3Length(engine.Project(hit.Normal, up))
	distForward := rl.Vector3Length(engine.Project(hit.Normal, forward))
	distRight := rl.Vector3Length(engine.Project(hit.Normal, right))

	var normalAxis, closest, furthest rl.Vector3
	switch {
	case distUp > distForward && distUp > distRight:
		normalAxis, closest, furthest = up, forward, right
	case distForward > distRight:
		normalAxis, closest, furthest = forward, up, right
	default:
		normalAxis, closest, furthest = right, forward, up
	}

	// the axis the hit lies further along is the one we are least likely to turn about
	if projectedLength(galaxyHit, furthest) > projectedLength(galaxyHit, closest) {
		closest, furthest = furthest, closest
	}

	// on an edge with no neighbour beyond it, turn about the closer axis when the
	// hit is nearer to it
	probe := furthest
	if engine.Angle(furthest, engine.ProjectOnPlane(planetHit, normalAxis)) >= 90 {
		probe = rl.Vector3Negate(furthest)
	}
	_, neighbour := hit.World.Raycast(planetPos, probe, p.NeighbourDistance, p.Mask)

	axis, unused := furthest, closest
	if !neighbour && projectedLength(planetHit, closest) < projectedLength(planetHit, furthest) {
		axis, unused = closest, furthest
	}

	inv := rl.QuaternionInvert(galaxyRot)
	size := rl.Vector3Add(rl.Vector3RotateByQuaternion(unused, inv), rl.Vector3RotateByQuaternion(normalAxis, inv))
	size = engine.AbsVector(rl.Vector3Scale(rl.Vector3Normalize(size), p.MaxDistanceFromAxis))

	return Request{
		Axis:        axis,
		Positive:    angleDirection(axis, galaxyHit, normalAxis) < 1,
		Center:      rl.Vector3Add(galaxyPos, engine.Project(galaxyHit, axis)),
		HalfExtents: rl.Vector3Scale(size, 0.5),
		Orientation: galaxyRot,
		Steal:       true,
	}
}

// FurthestFromAxis classifies the hit in galaxy local space and probes for a
// neighbouring planet next to the struck face. It assumes an unrotated galaxy: the
// planet-relative hit is rotated by the galaxy rotation instead of its inverse.
type FurthestFromAxis struct {
	Settings
}

func (p *FurthestFromAxis) Name() string { return PolicyFurthestFromAxis }

func (p *FurthestFromAxis) Resolve(hit Hit) Request {
	galaxy := hit.Galaxy
	planetObj := hit.Planet.GetGameObject()
	planetPos := planetObj.WorldPosition()
	box := hit.Planet.BoundingBoxSize

	local := galaxy.InverseTransformPoint(hit.Point)
	normal := galaxy.InverseTransformDirection(hit.Normal)
	planetLocal := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(hit.Point, planetPos), galaxy.WorldRotation())

	// open reports whether nothing of the ground mask lies along dir within reach
	open := func(dir rl.Vector3, reach float32) bool {
		_, ok := hit.World.Raycast(planetPos, dir, reach/2+neighbourSkin, p.Mask)
		return !ok
	}
	sameSign := func(a, b float32) bool { return engine.Sign(a) == engine.Sign(b) }

	var slab int
	switch dominantAxis(normal) {
	case axisX:
		var onZ bool
		if engine.Abs(planetLocal.Y) > engine.Abs(planetLocal.Z) {
			dir := galaxy.TransformDirection(rl.Vector3Scale(galaxy.Up(), engine.Sign(planetLocal.Y)))
			if open(dir, box.Y) {
				onZ = sameSign(local.Y, planetLocal.Y)
			} else {
				onZ = engine.Abs(local.Z) < engine.Abs(local.Y)
			}
		} else {
			dir := galaxy.TransformDirection(rl.Vector3{Z: engine.Sign(planetLocal.Z)})
			if open(dir, box.Z) {
				onZ = !sameSign(local.Z, planetLocal.Z)
			} else {
				onZ = engine.Abs(local.Y) > engine.Abs(local.Z)
			}
		}
		slab = pick(onZ, axisZ, axisY)
	case axisY:
		var onX bool
		if engine.Abs(planetLocal.Z) > engine.Abs(planetLocal.X) {
			dir := galaxy.TransformDirection(rl.Vector3{Z: engine.Sign(planetLocal.Z)})
			if open(dir, box.Z) {
				onX = sameSign(local.Z, planetLocal.Z)
			} else {
				onX = engine.Abs(local.X) < engine.Abs(local.Z)
			}
		} else {
			dir := galaxy.TransformDirection(rl.Vector3{X: engine.Sign(planetLocal.X)})
			if open(dir, box.X) {
				onX = !sameSign(local.X, planetLocal.X)
			} else {
				onX = engine.Abs(local.Z) > engine.Abs(local.X)
			}
		}
		slab = pick(onX, axisX, axisZ)
	default:
		var onY bool
		if engine.Abs(planetLocal.X) > engine.Abs(planetLocal.Y) {
			dir := galaxy.TransformDirection(rl.Vector3{X: engine.Sign(planetLocal.X)})
			if open(dir, box.X) {
				onY = sameSign(local.X, planetLocal.X)
			} else {
				onY = engine.Abs(local.Y) < engine.Abs(local.X)
			}
		} else {
			dir := galaxy.TransformDirection(rl.Vector3{Y: engine.Sign(planetLocal.Y)})
			if open(dir, box.Y) {
				onY = !sameSign(local.Y, planetLocal.Y)
			} else {
				onY = engine.Abs(local.X) > engine.Abs(local.Y)
			}
		}
		slab = pick(onY, axisY, axisX)
	}
	return slabRequest(hit, local, slab, p.MaxDistanceFromAxis)
}

// FurthestFromOrigin turns about the galaxy local axis the hit lies closest to,
// without looking for neighbours.
type FurthestFromOrigin struct {
	Settings
}

func (p *FurthestFromOrigin) Name() string { return PolicyFurthestFromOrigin }

func (p *FurthestFromOrigin) Resolve(hit Hit) Request {
	local := hit.Galaxy.InverseTransformPoint(hit.Point)
	normal := hit.Galaxy.InverseTransformDirection(hit.Normal)

	var slab int
	switch dominantAxis(normal) {
	case axisX:
		slab = pick(engine.Abs(local.Y) > engine.Abs(local.Z), axisZ, axisY)
	case axisY:
		slab = pick(engine.Abs(local.Z) > engine.Abs(local.X), axisX, axisZ)
	default:
		slab = pick(engine.Abs(local.X) > engine.Abs(local.Y), axisY, axisX)
	}
	return slabRequest(hit, local, slab, p.MaxDistanceFromAxis)
}

const (
	axisX = iota
	axisY
	axisZ
)

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}

// dominantAxis returns the local axis the vector is most aligned with. Ties fall
// through to the later axis.
func dominantAxis(v rl.Vector3) int {
	x, y, z := engine.Abs(v.X), engine.Abs(v.Y), engine.Abs(v.Z)
	switch {
	case x > y && x > z:
		return axisX
	case y > z:
		return axisY
	default:
		return axisZ
	}
}

func component(v rl.Vector3, axis int) float32 {
	switch axis {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	}
	return v.Z
}

func basis(axis int, length float32) rl.Vector3 {
	switch axis {
	case axisX:
		return rl.Vector3{X: length}
	case axisY:
		return rl.Vector3{Y: length}
	}
	return rl.Vector3{Z: length}
}

// slabRequest builds the request shared by the axis-aligned policies: a thin box
// across the galaxy at the hit's offset along the chosen local axis.
func slabRequest(hit Hit, local rl.Vector3, slab int, maxDistance float32) Request {
	galaxy := hit.Galaxy
	galaxyPos := galaxy.WorldPosition()
	galaxyRot := galaxy.WorldRotation()

	offset := basis(slab, component(local, slab))
	dir := basis(slab, 1)
	if rl.Vector3Length(offset) > 1e-6 {
		dir = rl.Vector3Normalize(offset)
	}
	axis := galaxy.TransformDirection(dir)

	size := rl.Vector3{X: maxDistance, Y: maxDistance, Z: maxDistance}
	switch slab {
	case axisX:
		size.X = slabThickness
	case axisY:
		size.Y = slabThickness
	default:
		size.Z = slabThickness
	}

	toHit := rl.Vector3Subtract(hit.Point, galaxyPos)
	return Request{
		Axis:        axis,
		Positive:    rl.Vector3DotProduct(rl.Vector3CrossProduct(hit.Normal, toHit), axis) > 0,
		Center:      rl.Vector3Add(galaxyPos, rl.Vector3RotateByQuaternion(offset, galaxyRot)),
		HalfExtents: rl.Vector3Scale(size, 0.5),
		Orientation: galaxyRot,
	}
}

func projectedLength(v, onto rl.Vector3) float32 {
	return rl.Vector3Length(engine.Project(v, onto))
}

// angleDirection is +1 when target lies to the right of forward around up, -1 to
// the left, and 0 when they are parallel.
func angleDirection(forward, target, up rl.Vector3) float32 {
	d := rl.Vector3DotProduct(rl.Vector3CrossProduct(forward, target), up)
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}
