package scheduler

import "time"

// Manual is a Scheduler whose tasks only run when Fire is called. It runs
// everything on the caller's goroutine, which makes engine tests
// deterministic.
type Manual struct {
	tasks []*manualTask
}

// NewManual returns an empty Manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Every(d time.Duration, fn func(now time.Time)) Task {
	t := &manualTask{interval: d, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Fire calls every active task with now.
func (m *Manual) Fire(now time.Time) {
	for _, t := range m.tasks {
		if !t.stopped {
			t.fn(now)
		}
	}
}

// Active reports the number of tasks that have not been stopped.
func (m *Manual) Active() int {
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Created reports how many tasks were ever started.
func (m *Manual) Created() int {
	return len(m.tasks)
}

// LastInterval returns the interval of the most recently created task.
func (m *Manual) LastInterval() time.Duration {
	if len(m.tasks) == 0 {
		return 0
	}
	return m.tasks[len(m.tasks)-1].interval
}

type manualTask struct {
	interval time.Duration
	fn       func(time.Time)
	stopped  bool
}

func (t *manualTask) Stop() { t.stopped = true }
