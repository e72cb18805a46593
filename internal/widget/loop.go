package widget

import (
	"context"
	"sync"
)

// Loop runs posted tasks one at a time on the goroutine that called Run.
// Blocking work goes through Go, whose completion is posted back so that
// state is only ever touched from the loop goroutine. Once Run returns the
// loop is closed: queued and later posted tasks are dropped.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	pending sync.WaitGroup
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn. It never blocks, so it is safe to call from inside a task
// or from a platform callback.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.pending.Add(1)
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Go runs work on its own goroutine and posts the completion it returns.
// A nil completion is skipped.
func (l *Loop) Go(work func() func()) {
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		if done := work(); done != nil {
			l.Post(done)
		}
	}()
}

// Run processes tasks until ctx is done. A Loop runs at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.close()
	for {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			fn()
			l.pending.Done()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Wait blocks until every posted task and every Go work item has finished.
func (l *Loop) Wait() {
	l.pending.Wait()
}

func (l *Loop) close() {
	l.mu.Lock()
	dropped := len(l.queue)
	l.queue = nil
	l.closed = true
	l.mu.Unlock()

	for i := 0; i < dropped; i++ {
		l.pending.Done()
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}
