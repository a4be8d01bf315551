package page

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDocumentQueryAndContainers(t *testing.T) {
	doc := NewDocument("?week=spring-line&x=1", "week-content")

	assert.Equal(t, "spring-line", doc.Query("week"))
	assert.Equal(t, "", doc.Query("missing"))

	_, ok := doc.Element("week-content")
	assert.True(t, ok)
	_, ok = doc.Element("stops")
	assert.False(t, ok)

	el := doc.Ensure("stops")
	el.AddClass("b")
	el.AddClass("a")
	assert.Equal(t, []string{"a", "b"}, el.ClassList())
	assert.Same(t, el, doc.Ensure("stops"))
}

func TestDispatcherRoutesByTarget(t *testing.T) {
	events := NewDispatcher()
	var order []string

	events.On(EventClick, func(*Event) { order = append(order, "document") })
	events.OnElement("card", EventClick, func(*Event) { order = append(order, "card") })
	events.OnElement("other", EventClick, func(*Event) { order = append(order, "other") })

	events.Click("title", "card", "list")
	assert.Equal(t, []string{"card", "document"}, order)
}

func TestEventClosest(t *testing.T) {
	ev := &Event{Target: "img-3", Ancestors: []string{"gallery-item-3", "gallery"}}
	id, ok := ev.Closest("gallery-item-")
	require.True(t, ok)
	assert.Equal(t, "gallery-item-3", id)

	_, ok = ev.Closest("stop-")
	assert.False(t, ok)
}

func TestThrottleCoalescesWithinFrame(t *testing.T) {
	frames := &ManualFrames{}
	calls := 0
	throttle := NewThrottle(frames, func() { calls++ })

	for i := 0; i < 10; i++ {
		throttle.Trigger()
	}
	assert.Equal(t, 1, frames.Pending())

	frames.Flush()
	assert.Equal(t, 1, calls)

	throttle.Trigger()
	frames.Flush()
	assert.Equal(t, 2, calls)
}

func TestHeaderScroll(t *testing.T) {
	doc := NewDocument("", "header")
	events := NewDispatcher()
	frames := &ManualFrames{}

	doc.Viewport.ScrollY = 120
	HeaderScroll(doc, events, frames)
	header, _ := doc.Element("header")
	assert.True(t, header.HasClass("scrolled"))

	doc.Viewport.ScrollY = 50
	events.Scroll()
	events.Scroll()
	assert.True(t, header.HasClass("scrolled"), "update waits for the frame")
	assert.Equal(t, 1, frames.Flush())
	assert.False(t, header.HasClass("scrolled"))

	doc.Viewport.ScrollY = 51
	events.Scroll()
	frames.Flush()
	assert.True(t, header.HasClass("scrolled"))
}

func TestHeaderScrollWithoutHeader(t *testing.T) {
	events := NewDispatcher()
	frames := &ManualFrames{}
	HeaderScroll(NewDocument(""), events, frames)
	events.Scroll()
	assert.Equal(t, 0, frames.Pending())
}

func TestShowUnavailable(t *testing.T) {
	doc := NewDocument("", "main")
	events := NewDispatcher()

	require.NoError(t, ShowUnavailable(doc, events))
	main, _ := doc.Element("main")
	assert.Contains(t, main.HTML, "Content Unavailable")
	assert.Contains(t, main.HTML, RetryID)

	events.Click(RetryID)
	assert.Equal(t, 1, doc.Reloads())
}

func TestLoopRunsTasksAndFrames(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	var frameRan atomic.Bool
	finished := make(chan struct{})
	loop.Post(func() {
		loop.Request(func() {
			frameRan.Store(true)
			close(finished)
		})
	})

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback never ran")
	}
	assert.True(t, frameRan.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestLoopPostFromLoopDoesNotBlock(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewLoop(time.Millisecond)
	var count atomic.Int32

	err := loop.Settle(context.Background(), func() {
		for i := 0; i < 200; i++ {
			loop.Post(func() { count.Add(1) })
		}
	})
	require.NoError(t, err)
	assert.Equal(t, int32(200), count.Load())
}

func TestLoopSettleRunsFollowingFrame(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewLoop(time.Millisecond)
	var order []string

	err := loop.Settle(context.Background(), func() {
		order = append(order, "task")
		loop.Request(func() { order = append(order, "frame") })
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"task", "frame"}, order)
}

func TestLoopSettleCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewLoop(time.Hour).Settle(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}
