package beerpong

import "sort"

// TaskID identifies a scheduled task. Zero is never issued.
type TaskID uint64

type task struct {
	id       TaskID
	deadline float64
	fn       func()
}

// Scheduler runs deferred callbacks against the simulation clock. Deadlines
// are absolute and monotonic; tasks due at the same time run in the order
// they were scheduled.
type Scheduler struct {
	now    float64
	nextID TaskID
	tasks  []task
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) TaskID {
	s.nextID++
	s.tasks = append(s.tasks, task{id: s.nextID, deadline: s.now + max(delay, 0), fn: fn})
	return s.nextID
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of tasks not yet run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock to now and runs every task whose deadline has
// passed. Time never moves backwards. Tasks scheduled by a running task
// run in the same call if they are already due.
func (s *Scheduler) Advance(now float64) {
	if now > s.now {
		s.now = now
	}
	for {
		due := -1
		for i, t := range s.tasks {
			if t.deadline <= s.now && (due < 0 || t.deadline < s.tasks[due].deadline) {
				due = i
			}
		}
		if due < 0 {
			return
		}
		t := s.tasks[due]
		s.tasks = append(s.tasks[:due], s.tasks[due+1:]...)
		t.fn()
	}
}

// Step advances the clock by dt seconds.
func (s *Scheduler) Step(dt float64) {
	s.Advance(s.now + dt)
}

// deadlines returns pending deadlines in run order, for tests.
func (s *Scheduler) deadlines() []float64 {
	out := make([]float64, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.deadline)
	}
	sort.Float64s(out)
	return out
}
