package canvas

import (
	"context"
	"sync"
	"time"
)

// Scheduler defers callbacks to the next frame.
type Scheduler interface {
	// Schedule arranges for fn to run once on the next frame and returns a
	// function that cancels it if it has not run yet.
	Schedule(fn func()) (cancel func())
}

type frameTask struct {
	id int
	fn func()
}

// frameQueue is the set of callbacks waiting for the next frame.
type frameQueue struct {
	mu    sync.Mutex
	next  int
	tasks []frameTask
}

func (q *frameQueue) schedule(fn func()) func() {
	q.mu.Lock()
	q.next++
	id := q.next
	q.tasks = append(q.tasks, frameTask{id: id, fn: fn})
	q.mu.Unlock()
	return func() { q.cancel(id) }
}

func (q *frameQueue) cancel(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.tasks {
		if t.id == id {
			q.tasks = append(q.tasks[:i:i], q.tasks[i+1:]...)
			return
		}
	}
}

func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// run calls the callbacks queued so far. Callbacks scheduled while running
// wait for the following frame.
func (q *frameQueue) run() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, t := range tasks {
		t.fn()
	}
	return len(tasks)
}

// ManualScheduler runs callbacks only when Flush is called. It suits tests
// and batch rendering.
type ManualScheduler struct {
	q frameQueue
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(fn func()) func() {
	return s.q.schedule(fn)
}

// Pending returns the number of callbacks waiting.
func (s *ManualScheduler) Pending() int { return s.q.len() }

// Flush runs the waiting callbacks and returns how many ran.
func (s *ManualScheduler) Flush() int { return s.q.run() }

// DefaultFrameInterval is the frame period of a FrameLoop created with a
// non-positive interval.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameLoop runs scheduled callbacks on a ticker from its own goroutine.
//
// The loop goroutine owns the canvases it drives: once Run is started, all
// calls on those canvases must be made through Post or Do.
type FrameLoop struct {
	interval time.Duration
	q        frameQueue
	posts    chan func()
}

// NewFrameLoop creates a loop ticking every interval.
func NewFrameLoop(interval time.Duration) *FrameLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameLoop{
		interval: interval,
		posts:    make(chan func(), 64),
	}
}

// Schedule implements Scheduler.
func (l *FrameLoop) Schedule(fn func()) func() {
	return l.q.schedule(fn)
}

// Post queues fn to run on the loop goroutine before the next frame. It
// blocks while the post queue is full and must not be called from the loop
// goroutine.
func (l *FrameLoop) Post(fn func()) {
	l.posts <- fn
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *FrameLoop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case l.posts <- func() { defer close(done); fn() }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes posted functions and frame callbacks until ctx is done. It
// returns the context error.
func (l *FrameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case fn := <-l.posts:
			fn()
		case <-ticker.C:
			l.q.run()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
