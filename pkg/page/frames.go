package page

import (
	"context"
	"sync"
	"time"
)

// Frames schedules work for the next rendering frame
type Frames interface {
	Request(fn func())
}

// ManualFrames queues frame callbacks until Flush is called
type ManualFrames struct {
	pending []func()
}

// Request implements Frames
func (m *ManualFrames) Request(fn func()) {
	m.pending = append(m.pending, fn)
}

// Pending returns the number of queued callbacks
func (m *ManualFrames) Pending() int { return len(m.pending) }

// Flush runs one frame: every callback queued before the call.
// Callbacks requested while flushing wait for the next frame.
func (m *ManualFrames) Flush() int {
	batch := m.pending
	m.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// FrameInterval is the frame period of Loop
const FrameInterval = 16 * time.Millisecond

// Loop is a single-goroutine event loop. Tasks posted to it run one at a time
// in order; frame callbacks run together on the next tick.
type Loop struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}

	frames   []func()
	interval time.Duration
}

// NewLoop creates a loop ticking every interval
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = FrameInterval
	}
	return &Loop{
		wake:     make(chan struct{}, 1),
		interval: interval,
	}
}

// Post schedules fn to run on the loop. It never blocks, so tasks may post
// further tasks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Request implements Frames. It must be called from the loop goroutine.
func (l *Loop) Request(fn func()) {
	l.frames = append(l.frames, fn)
}

func (l *Loop) drain() {
	l.mu.Lock()
	batch := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
}

// Run processes tasks and frames until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.drain()
		case <-ticker.C:
			batch := l.frames
			l.frames = nil
			for _, fn := range batch {
				fn()
			}
		}
	}
}

// Settle runs the loop just long enough to execute fn and the frame that
// follows it, then stops. One-shot hosts such as previews use it.
func (l *Loop) Settle(ctx context.Context, fn func()) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	settled := make(chan struct{})
	l.Post(func() {
		fn()
		l.Request(func() { close(settled) })
	})

	var err error
	select {
	case <-settled:
	case <-ctx.Done():
		err = ctx.Err()
	}
	cancel()
	<-done
	return err
}
