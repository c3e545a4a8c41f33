package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/speechtimer/internal/clock"
)

// DefaultQueueSize is the number of closures a Loop buffers before Post
// blocks.
const DefaultQueueSize = 64

// Loop serializes work onto one goroutine.
type Loop struct {
	clock clock.Clock
	work  chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a Loop whose repeating tasks use clk for ticking.
func NewLoop(clk clock.Clock) *Loop {
	return &Loop{
		clock: clk,
		work:  make(chan func(), DefaultQueueSize),
		done:  make(chan struct{}),
	}
}

// Run executes posted work until ctx is cancelled. Work still queued when ctx
// ends is discarded.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.work:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post queues fn to run on the loop goroutine. It blocks while the queue is
// full and reports false if the loop has already stopped.
func (l *Loop) Post(fn func()) bool {
	return l.post(nil, fn)
}

func (l *Loop) post(cancel <-chan struct{}, fn func()) bool {
	select {
	case l.work <- fn:
		return true
	case <-l.done:
		return false
	case <-cancel:
		return false
	}
}

// Every implements Scheduler. fn runs on the loop goroutine.
func (l *Loop) Every(d time.Duration, fn func(now time.Time)) Task {
	t := &loopTask{stop: make(chan struct{})}
	ticker := l.clock.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-l.done:
				return
			case now := <-ticker.C():
				l.post(t.stop, func() {
					if t.stopped.Load() {
						return
					}
					fn(now)
				})
			}
		}
	}()

	return t
}

type loopTask struct {
	stop    chan struct{}
	stopped atomic.Bool
	once    sync.Once
}

func (t *loopTask) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.stop)
	})
}
