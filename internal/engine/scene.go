package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject

	// World answers spatial queries for components. Nil until a physics backend is attached.
	World WorldAccess
	// Scheduler runs per-tick tasks such as cluster rotations and path travel.
	Scheduler *Scheduler

	uidMap map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		Scheduler:   NewScheduler(),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
	g.Scene = s
}

// RemoveGameObject removes g and all of its descendants from the scene.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range g.Children {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.uidMap, g.UID)
			return
		}
	}
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// FixedUpdate advances scheduled tasks first, then component physics callbacks, so
// every rotation step of a tick lands before any gravity query reads the transforms.
func (s *Scene) FixedUpdate(deltaTime float32) {
	s.Scheduler.Step(deltaTime)
	for _, g := range s.GameObjects {
		g.FixedUpdate(deltaTime)
	}
}
