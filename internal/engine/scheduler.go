package engine

// Task is a resumable piece of gameplay work. Step is called once per fixed tick and
// reports true when the task has finished. Progress lives in the task's own fields.
type Task interface {
	Step(deltaTime float32) (done bool)
}

// TaskFunc adapts a closure to the Task interface.
type TaskFunc func(deltaTime float32) bool

func (f TaskFunc) Step(deltaTime float32) bool {
	return f(deltaTime)
}

// Scheduler steps every running task exactly once per tick, in start order.
// Tasks started while a tick is in progress first run on the following tick.
type Scheduler struct {
	tasks    []Task
	pending  []Task
	stepping bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Start(t Task) {
	if t == nil {
		return
	}
	if s.stepping {
		s.pending = append(s.pending, t)
		return
	}
	s.tasks = append(s.tasks, t)
}

func (s *Scheduler) Step(deltaTime float32) {
	s.stepping = true
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Step(deltaTime) {
			live = append(live, t)
		}
	}
	// clear the tail so finished tasks can be collected
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = append(live, s.pending...)
	s.pending = nil
	s.stepping = false
}

// Len returns the number of running tasks, including ones queued for the next tick.
func (s *Scheduler) Len() int {
	return len(s.tasks) + len(s.pending)
}
