package page

// Throttle coalesces triggers so fn runs at most once per frame
type Throttle struct {
	frames  Frames
	fn      func()
	ticking bool
}

// NewThrottle creates a throttle running fn on frames
func NewThrottle(frames Frames, fn func()) *Throttle {
	return &Throttle{frames: frames, fn: fn}
}

// Trigger requests a frame unless one is already in flight
func (t *Throttle) Trigger() {
	if t.ticking {
		return
	}
	t.ticking = true
	t.frames.Request(func() {
		t.fn()
		t.ticking = false
	})
}

// HeaderScrollThreshold is the scroll offset past which the header is "scrolled"
const HeaderScrollThreshold = 50

// HeaderScroll toggles the "scrolled" class on the header element as the page
// scrolls, recomputing at most once per frame.
func HeaderScroll(doc *Document, events *Dispatcher, frames Frames) {
	header, ok := doc.Element("header")
	if !ok {
		return
	}

	update := func() {
		if doc.Viewport.ScrollY > HeaderScrollThreshold {
			header.AddClass("scrolled")
		} else {
			header.RemoveClass("scrolled")
		}
	}

	throttle := NewThrottle(frames, update)
	events.On(EventScroll, func(*Event) { throttle.Trigger() })

	update()
}
