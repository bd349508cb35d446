// Package rotation turns ground pound hits into Rubik's cube style quarter turns of
// planet clusters inside a galaxy.
package rotation

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"cubeplanets/internal/metrics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

// Outcome labels for rotation requests.
const (
	OutcomeCommitted        = "committed"
	OutcomeRejectedInMotion = "rejected_in_motion"
	OutcomeRejectedAxis     = "rejected_axis"
	OutcomeRejectedCycle    = "rejected_cycle"
	OutcomeEmpty            = "empty"
)

// axisTolerance is how far apart two axes may be, compared per component by
// absolute value, and still count as the same axis.
const axisTolerance = 0.01

// quarterTurn is the angle every rotation covers, in degrees.
const quarterTurn = 90

// Completion describes a finished rotation.
type Completion struct {
	Axis    rl.Vector3
	Planets []*components.Planet
}

// ClusterRotator sits on a galaxy and rotates the planets around a struck planet.
type ClusterRotator struct {
	engine.BaseComponent
	Policy AxisPolicy
	Speed  float32 // degrees per second
	Mask   engine.LayerMask

	// FriendNames are resolved to FriendGroups at Start.
	FriendNames  []string
	FriendGroups []engine.GameObjectRef

	Metrics *metrics.Collector

	// Finished fires once per committed rotation after the last step.
	Finished engine.EventWithArg[Completion]

	galaxy          *components.Galaxy
	activeRotations int
	currentAxis     rl.Vector3
}

func NewClusterRotator(policy AxisPolicy) *ClusterRotator {
	return &ClusterRotator{Policy: policy, Speed: 18, Mask: engine.MaskOf(engine.LayerGround)}
}

func (r *ClusterRotator) Start() {
	obj := r.GetGameObject()
	r.galaxy = engine.GetComponent[*components.Galaxy](obj)
	if r.galaxy == nil {
		logger.L().Error("cluster rotator needs a galaxy, rotations disabled", "object", obj.Name)
		return
	}
	if r.Policy == nil {
		r.Policy = &Rotatable{Settings: DefaultSettings()}
	}
	// make sure the planets carry the group id before anything can be hit
	r.galaxy.PhysicsGroupID()

	for _, name := range r.FriendNames {
		friend := obj.Scene.FindByName(name)
		if friend == nil || engine.GetComponent[*components.Galaxy](friend) == nil {
			logger.L().Warn("friend galaxy not found", "galaxy", obj.Name, "friend", name)
			continue
		}
		r.FriendGroups = append(r.FriendGroups, engine.RefTo(friend))
	}
}

// SetMetrics lets the world builder wire metrics into scripted rotators.
func (r *ClusterRotator) SetMetrics(m *metrics.Collector) {
	r.Metrics = m
}

// ActiveRotations returns how many rotations this rotator is animating.
func (r *ClusterRotator) ActiveRotations() int {
	return r.activeRotations
}

// CurrentAxis returns the axis of the most recently accepted request.
func (r *ClusterRotator) CurrentAxis() rl.Vector3 {
	return r.currentAxis
}

// OnHit resolves the hit into a rotation and, when nothing blocks it, starts the
// animation on the scene scheduler.
func (r *ClusterRotator) OnHit(user *components.PlayerStats, planet *components.Planet, point, normal rl.Vector3) {
	r.Rotate(planet, point, normal)
}

// Rotate is OnHit without the player, returning what happened to the request.
func (r *ClusterRotator) Rotate(planet *components.Planet, point, normal rl.Vector3) string {
	obj := r.GetGameObject()
	if r.galaxy == nil || planet == nil || obj.Scene == nil || obj.Scene.World == nil {
		return OutcomeEmpty
	}

	req := r.Policy.Resolve(Hit{
		World:  obj.Scene.World,
		Galaxy: obj,
		Planet: planet,
		Point:  point,
		Normal: normal,
	})

	if r.activeRotations != 0 && !sameAxis(r.currentAxis, req.Axis) {
		return r.record(OutcomeRejectedAxis, req, planet)
	}

	cluster := r.members(req)
	if len(cluster) == 0 {
		return r.record(OutcomeEmpty, req, planet)
	}
	if lo.SomeBy(cluster, func(p *components.Planet) bool { return p.InMotion }) {
		return r.record(OutcomeRejectedInMotion, req, planet)
	}
	if lo.SomeBy(cluster, func(p *components.Planet) bool { return p.GetGameObject().IsAncestorOf(obj) }) {
		return r.record(OutcomeRejectedCycle, req, planet)
	}

	r.commit(req, cluster)
	return r.record(OutcomeCommitted, req, planet)
}

// members finds the planets inside the request's box that belong to this galaxy's
// group or a friend group.
func (r *ClusterRotator) members(req Request) []*components.Planet {
	world := r.GetGameObject().Scene.World
	hits := world.OverlapBox(req.Center, req.HalfExtents, req.Orientation, r.Mask)

	groups := r.groupIDs()
	planets := lo.FilterMap(hits, func(g *engine.GameObject, _ int) (*components.Planet, bool) {
		p := engine.GetComponentInParent[*components.Planet](g)
		return p, p != nil && lo.Contains(groups, p.PhysicsGroupID)
	})
	return lo.Uniq(planets)
}

func (r *ClusterRotator) groupIDs() []int {
	ids := []int{r.galaxy.PhysicsGroupID()}
	scene := r.GetGameObject().Scene
	for _, ref := range r.FriendGroups {
		if g := engine.GetComponent[*components.Galaxy](ref.Get(scene)); g != nil {
			ids = append(ids, g.PhysicsGroupID())
		}
	}
	return ids
}

func (r *ClusterRotator) commit(req Request, cluster []*components.Planet) {
	obj := r.GetGameObject()
	r.currentAxis = req.Axis
	r.activeRotations++
	for _, p := range cluster {
		if err := p.GetGameObject().SetParent(obj, true); err != nil {
			// ancestry was checked above, so this only logs
			logger.L().Warn("cannot capture planet", "galaxy", obj.Name, "planet", p.Name(), "planet_id", p.ID, "error", err)
		}
		p.InMotion = true
		if req.Steal {
			p.PhysicsGroupID = r.galaxy.PhysicsGroupID()
		}
	}
	r.Metrics.RotationStarted(obj.Name, len(cluster))
	obj.Scene.Scheduler.Start(&clusterRotation{
		rotator:   r,
		planets:   cluster,
		axis:      req.Axis,
		sign:      req.Sign(),
		remaining: quarterTurn,
	})
}

func (r *ClusterRotator) finish(rot *clusterRotation) {
	for _, p := range rot.planets {
		p.InMotion = false
	}
	r.activeRotations--
	name := r.GetGameObject().Name
	r.Metrics.RotationFinished(name, rot.elapsed)
	logger.L().Debug("rotation finished", "galaxy", name, "axis", rot.axis, "planets", len(rot.planets))
	r.Finished.Invoke(Completion{Axis: rot.axis, Planets: rot.planets})
}

func (r *ClusterRotator) record(outcome string, req Request, planet *components.Planet) string {
	name := r.GetGameObject().Name
	r.Metrics.RecordRotation(name, outcome)
	log := logger.L().Debug
	if outcome == OutcomeCommitted {
		log = logger.L().Info
	}
	log("rotation request", "galaxy", name, "planet", planet.Name(), "planet_id", planet.ID, "policy", r.Policy.Name(),
		"axis", req.Axis, "positive", req.Positive, "outcome", outcome)
	return outcome
}

func sameAxis(a, b rl.Vector3) bool {
	diff := rl.Vector3Subtract(engine.AbsVector(a), engine.AbsVector(b))
	return rl.Vector3Length(diff) < axisTolerance
}
