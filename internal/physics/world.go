package physics

import (
	"cubeplanets/internal/components"
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"sort"

	"github.com/dhconnelly/rtreego"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

// triggerSkin is how far a collider must reach into a trigger before it counts as
// inside. Planets resting face to face only touch.
const triggerSkin = 1e-3

type colliderEntry struct {
	collider components.Collider
	seq      int
	aabb     AABB
	bounds   rtreego.Rect
	indexed  bool
}

func (e *colliderEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// triggerPair is a trigger collider's object and an object overlapping it.
type triggerPair struct {
	trigger, other *engine.GameObject
}

// World indexes colliders in an R-tree and answers the scene's spatial queries. It
// also integrates rigidbodies, keeps them out of solid colliders and dispatches
// trigger enter and exit callbacks.
type World struct {
	tree    *rtreego.Rtree
	entries map[components.Collider]*colliderEntry
	order   []*colliderEntry
	bodies  []*components.Rigidbody
	nextSeq int

	activeTriggers map[triggerPair]bool
}

var _ engine.WorldAccess = (*World)(nil)

func NewWorld() *World {
	return &World{
		tree:           rtreego.NewTree(3, 4, 16),
		entries:        make(map[components.Collider]*colliderEntry),
		activeTriggers: make(map[triggerPair]bool),
	}
}

// AddScene registers every object of the scene and installs the world as the
// scene's spatial query service.
func (w *World) AddScene(s *engine.Scene) {
	for _, g := range s.GameObjects {
		w.AddObject(g)
	}
	s.World = w
}

// AddObject registers g's colliders and rigidbody. Registering twice is a no-op.
func (w *World) AddObject(g *engine.GameObject) {
	for _, c := range engine.GetComponents[components.Collider](g) {
		if _, ok := w.entries[c]; ok {
			continue
		}
		if _, ok := ShapeOf(c); !ok {
			logger.L().Warn("unsupported collider type", "object", g.Name)
			continue
		}
		e := &colliderEntry{collider: c, seq: w.nextSeq}
		w.nextSeq++
		w.entries[c] = e
		w.order = append(w.order, e)
		w.refresh(e)
	}
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && !lo.Contains(w.bodies, rb) {
		w.bodies = append(w.bodies, rb)
	}
}

func (w *World) RemoveObject(g *engine.GameObject) {
	for _, c := range engine.GetComponents[components.Collider](g) {
		e, ok := w.entries[c]
		if !ok {
			continue
		}
		if e.indexed {
			w.tree.Delete(e)
		}
		delete(w.entries, c)
		w.order = lo.Without(w.order, e)
	}
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		w.bodies = lo.Without(w.bodies, rb)
	}
	for pair := range w.activeTriggers {
		if pair.trigger == g || pair.other == g {
			delete(w.activeTriggers, pair)
		}
	}
}

// ColliderCount returns the number of registered colliders.
func (w *World) ColliderCount() int {
	return len(w.order)
}

// refresh re-indexes e when its collider moved since the last sync.
func (w *World) refresh(e *colliderEntry) {
	shape, ok := ShapeOf(e.collider)
	if !ok {
		return
	}
	box := shape.Bounds()
	if e.indexed && box == e.aabb {
		return
	}
	if e.indexed {
		w.tree.Delete(e)
	}
	e.aabb = box
	e.bounds = box.Rect()
	w.tree.Insert(e)
	e.indexed = true
}

func (w *World) sync() {
	for _, e := range w.order {
		w.refresh(e)
	}
}

// candidates returns solid, active colliders on masked layers whose bounds touch box,
// in registration order.
func (w *World) candidates(box AABB, mask engine.LayerMask) []*colliderEntry {
	w.sync()
	var out []*colliderEntry
	for _, s := range w.tree.SearchIntersect(box.Rect()) {
		e := s.(*colliderEntry)
		if e.collider.Trigger() || !mask.Contains(e.collider.ColliderLayer()) {
			continue
		}
		if !e.collider.GetGameObject().ActiveInHierarchy() {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func owners(entries []*colliderEntry) []*engine.GameObject {
	return lo.Uniq(lo.Map(entries, func(e *colliderEntry, _ int) *engine.GameObject {
		return e.collider.GetGameObject()
	}))
}

func (w *World) OverlapBox(center, halfExtents rl.Vector3, orientation rl.Quaternion, mask engine.LayerMask) []*engine.GameObject {
	query := NewOBB(center, rl.Vector3Scale(halfExtents, 2), orientation)
	hits := lo.Filter(w.candidates(query.Bounds(), mask), func(e *colliderEntry, _ int) bool {
		shape, _ := ShapeOf(e.collider)
		return shape.OverlapsOBB(query)
	})
	return owners(hits)
}

func (w *World) OverlapSphere(center rl.Vector3, radius float32, mask engine.LayerMask) []*engine.GameObject {
	r := rl.Vector3{X: radius, Y: radius, Z: radius}
	box := AABB{Min: rl.Vector3Subtract(center, r), Max: rl.Vector3Add(center, r)}
	hits := lo.Filter(w.candidates(box, mask), func(e *colliderEntry, _ int) bool {
		shape, _ := ShapeOf(e.collider)
		return shape.OverlapsSphere(center, radius)
	})
	return owners(hits)
}

// Raycast returns the nearest solid collider hit along the ray. Colliders containing
// the origin are not hit.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (engine.RaycastResult, bool) {
	if rl.Vector3Length(direction) == 0 || maxDistance <= 0 {
		return engine.RaycastResult{}, false
	}
	direction = rl.Vector3Normalize(direction)
	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, maxDistance))

	var closest engine.RaycastResult
	found := false
	for _, e := range w.candidates(AABBFromPoints(origin, end), mask) {
		shape, _ := ShapeOf(e.collider)
		hit, ok := shape.Raycast(origin, direction, maxDistance)
		if !ok || (found && hit.Distance >= closest.Distance) {
			continue
		}
		closest = engine.RaycastResult{
			GameObject: e.collider.GetGameObject(),
			Point:      hit.Point,
			Normal:     hit.Normal,
			Distance:   hit.Distance,
		}
		found = true
	}
	return closest, found
}

// ClosestPoint returns the point on obj's solid colliders nearest to point. Objects
// without colliders answer with their position.
func (w *World) ClosestPoint(obj *engine.GameObject, point rl.Vector3) rl.Vector3 {
	best := obj.WorldPosition()
	bestDist := float32(-1)
	for _, c := range engine.GetComponents[components.Collider](obj) {
		if c.Trigger() {
			continue
		}
		shape, ok := ShapeOf(c)
		if !ok {
			continue
		}
		p := shape.ClosestPoint(point)
		if d := rl.Vector3Distance(p, point); bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// Step integrates bodies, separates them from solid colliders and fires trigger
// callbacks for the tick.
func (w *World) Step(deltaTime float32) {
	for _, rb := range w.bodies {
		if rb.GetGameObject().ActiveInHierarchy() {
			rb.Integrate(deltaTime)
		}
	}
	for _, rb := range w.bodies {
		if !rb.IsKinematic && rb.GetGameObject().ActiveInHierarchy() {
			w.resolveBody(rb)
		}
	}
	w.updateTriggers()
}

func (w *World) updateTriggers() {
	current := make(map[triggerPair]bool)
	for _, e := range w.order {
		trigObj := e.collider.GetGameObject()
		if !e.collider.Trigger() || !trigObj.ActiveInHierarchy() {
			continue
		}
		shape, _ := ShapeOf(e.collider)
		shape = shape.Shrink(triggerSkin)
		for _, o := range w.candidates(shape.Bounds(), engine.AllLayers) {
			other := o.collider.GetGameObject()
			if other == trigObj {
				continue
			}
			otherShape, _ := ShapeOf(o.collider)
			if shape.Overlaps(otherShape) {
				current[triggerPair{trigger: trigObj, other: other}] = true
			}
		}
	}

	var entered, exited []triggerPair
	for pair := range current {
		if !w.activeTriggers[pair] {
			entered = append(entered, pair)
		}
	}
	for pair := range w.activeTriggers {
		if !current[pair] {
			exited = append(exited, pair)
		}
	}
	w.activeTriggers = current

	sortPairs(exited)
	for _, p := range exited {
		notifyTriggerExit(p.trigger, p.other)
		notifyTriggerExit(p.other, p.trigger)
	}
	sortPairs(entered)
	for _, p := range entered {
		notifyTriggerEnter(p.trigger, p.other)
		notifyTriggerEnter(p.other, p.trigger)
	}
}

func sortPairs(pairs []triggerPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].trigger.UID != pairs[j].trigger.UID {
			return pairs[i].trigger.UID < pairs[j].trigger.UID
		}
		return pairs[i].other.UID < pairs[j].other.UID
	})
}

// notifyTriggerEnter calls OnTriggerEnter on all handlers in obj
func notifyTriggerEnter(obj, other *engine.GameObject) {
	for _, h := range engine.GetComponents[engine.TriggerHandler](obj) {
		h.OnTriggerEnter(other)
	}
}

// notifyTriggerExit calls OnTriggerExit on all handlers in obj
func notifyTriggerExit(obj, other *engine.GameObject) {
	for _, h := range engine.GetComponents[engine.TriggerHandler](obj) {
		h.OnTriggerExit(other)
	}
}
