package components

import (
	"cubeplanets/internal/engine"
	"cubeplanets/internal/physicsgroup"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Planet is a rotatable, possibly destroyable, block inside a galaxy.
type Planet struct {
	engine.BaseComponent
	ID              uuid.UUID
	BoundingBoxSize rl.Vector3 // full extents
	Destroyable     bool

	// InMotion is held by at most one cluster rotation at a time.
	InMotion bool
	// PhysicsGroupID is the rotation domain the planet belongs to. It changes at galaxy
	// initialization and when a rotation captures the planet.
	PhysicsGroupID int
}

func NewPlanet() *Planet {
	return &Planet{
		ID:              uuid.New(),
		BoundingBoxSize: rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// HalfExtents returns half the bounding box size.
func (p *Planet) HalfExtents() rl.Vector3 {
	return rl.Vector3Scale(p.BoundingBoxSize, 0.5)
}

func (p *Planet) Name() string {
	if g := p.GetGameObject(); g != nil {
		return g.Name
	}
	return p.ID.String()
}

// Galaxy owns a rotation domain. Its planets are the Planet components below it.
type Galaxy struct {
	engine.BaseComponent
	MaxPlayerDistance float32

	groupID int
}

func NewGalaxy(maxPlayerDistance float32) *Galaxy {
	return &Galaxy{MaxPlayerDistance: maxPlayerDistance}
}

func (g *Galaxy) Start() {
	g.PhysicsGroupID()
}

// PhysicsGroupID returns the galaxy's group id. The id is drawn from the registry on
// first use and stamped onto every planet below the galaxy at that moment, so a
// friend galaxy can be asked for its id before its own Start has run.
func (g *Galaxy) PhysicsGroupID() int {
	if g.groupID != physicsgroup.Undefined {
		return g.groupID
	}
	g.groupID = physicsgroup.Next()
	for _, p := range engine.GetComponentsInChildren[*Planet](g.GetGameObject()) {
		p.PhysicsGroupID = g.groupID
	}
	return g.groupID
}

// Planets returns the planets currently parented below the galaxy.
func (g *Galaxy) Planets() []*Planet {
	return engine.GetComponentsInChildren[*Planet](g.GetGameObject())
}

func (g *Galaxy) Name() string {
	if obj := g.GetGameObject(); obj != nil {
		return obj.Name
	}
	return ""
}

// InRange reports whether pos is within the galaxy's player distance.
func (g *Galaxy) InRange(pos rl.Vector3) bool {
	return g.MaxPlayerDistance > rl.Vector3Distance(pos, g.GetGameObject().WorldPosition())
}
