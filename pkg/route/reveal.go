package route

import (
	"fmt"
	"math"
	"time"

	"bus-route/pkg/page"
)

// Reveal fades stops in the first time they scroll into view. Each stop is
// revealed once and then no longer observed.
type Reveal struct {
	doc      *page.Document
	opts     Options
	observed []string
}

// NewReveal observes the elements with the given ids
func NewReveal(doc *page.Document, ids []string, opts Options) *Reveal {
	return &Reveal{
		doc:      doc,
		opts:     opts,
		observed: append([]string(nil), ids...),
	}
}

// Observed returns the ids still waiting to be revealed
func (r *Reveal) Observed() []string { return r.observed }

func (r *Reveal) intersecting(rect page.Rect) bool {
	rootBottom := r.doc.Viewport.Height + r.opts.MarginBottom
	visible := math.Min(rect.Bottom(), rootBottom) - math.Max(rect.Top, 0)
	if visible <= 0 {
		return false
	}
	if rect.Height <= 0 {
		return true
	}
	return visible/rect.Height >= r.opts.Threshold
}

// Check reveals every observed element now in view and returns their ids.
// Elements revealed in the same batch get increasing transition delays.
func (r *Reveal) Check() []string {
	var revealed []string
	remaining := r.observed[:0]

	for _, id := range r.observed {
		rect, ok := r.doc.Rect(id)
		if !ok || !r.intersecting(rect) {
			remaining = append(remaining, id)
			continue
		}

		el := r.doc.Ensure(id)
		delay := time.Duration(len(revealed)) * r.opts.Stagger
		el.Style["transition-delay"] = fmt.Sprintf("%gs", delay.Seconds())
		el.AddClass("is-visible")
		revealed = append(revealed, id)
	}

	r.observed = remaining
	return revealed
}
