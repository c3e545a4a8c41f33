package scheduler

import "time"

// Scheduler creates repeating tasks.
type Scheduler interface {
	// Every calls fn with the current time roughly every d until the
	// returned Task is stopped. Implementations decide which goroutine fn
	// runs on; Loop runs it on the loop goroutine.
	Every(d time.Duration, fn func(now time.Time)) Task
}

// Task is a handle to a repeating task.
type Task interface {
	// Stop cancels the task. It is safe to call more than once, and no call
	// to the task's function starts after Stop returns on the loop goroutine.
	Stop()
}
