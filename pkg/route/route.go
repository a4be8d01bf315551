// Package route renders the landing page: one stop per week along a route,
// revealed as they scroll into view, with a progress line tracking the scroll.
package route

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"bus-route/pkg/models"
	"bus-route/pkg/page"
)

// Container ids owned by the page
const (
	StopsID     = "stops"
	ProgressID  = "route-progress"
	BusNumberID = "bus-number"
	TrackID     = "route-track"
)

// ErrMissingContainer is returned when the page has no stops container
var ErrMissingContainer = errors.New("stops container not found")

// Options tune the scroll reveal
type Options struct {
	// Threshold is the visible fraction at which a stop counts as in view
	Threshold float64
	// MarginBottom grows (or, when negative, shrinks) the viewport's bottom edge
	MarginBottom float64
	Stagger      time.Duration
}

// DefaultOptions returns the reveal settings used when the content sets none
func DefaultOptions() Options {
	return Options{
		Threshold:    0.15,
		MarginBottom: -80,
		Stagger:      100 * time.Millisecond,
	}
}

// WithRouteConfig applies overrides from the content document
func (o Options) WithRouteConfig(cfg models.RouteConfig) Options {
	if cfg.RevealThreshold != nil {
		o.Threshold = *cfg.RevealThreshold
	}
	if cfg.RevealMarginBottom != nil {
		o.MarginBottom = *cfg.RevealMarginBottom
	}
	return o
}

// Route is a mounted route page
type Route struct {
	Stops  []Stop
	Reveal *Reveal

	doc *page.Document
}

// Mount renders weeks into the stops container and wires scroll reveal,
// route progress, stop navigation and the header state.
func Mount(doc *page.Document, events *page.Dispatcher, frames page.Frames, weeks []models.Week, opts Options) (*Route, error) {
	container, ok := doc.Element(StopsID)
	if !ok {
		return nil, ErrMissingContainer
	}

	markup, stops, err := RenderStops(weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to render stops: %w", err)
	}
	container.HTML = markup

	r := &Route{Stops: stops, doc: doc}

	ids := make([]string, 0, len(stops))
	for _, stop := range stops {
		ids = append(ids, stop.ID)
		r.setupStop(events, stop)
	}

	r.Reveal = NewReveal(doc, ids, opts)
	reveal := page.NewThrottle(frames, func() { r.Reveal.Check() })
	events.On(page.EventScroll, func(*page.Event) { reveal.Trigger() })
	reveal.Trigger()

	r.setupProgress(events, frames)
	page.HeaderScroll(doc, events, frames)

	return r, nil
}

func (r *Route) setupStop(events *page.Dispatcher, stop Stop) {
	el := r.doc.Ensure(stop.ID)
	el.AddClass("stop")
	el.Attrs["data-week"] = strconv.Itoa(stop.Week.WeekNumber)

	if !stop.Published() {
		el.AddClass("stop--draft")
		el.Attrs["data-href"] = "#"
		el.Attrs["aria-disabled"] = "true"
		el.Style["cursor"] = "default"
		return
	}

	el.Attrs["data-href"] = stop.Href
	el.Attrs["tabindex"] = "0"
	el.Attrs["role"] = "link"
	el.Attrs["aria-label"] = fmt.Sprintf("View week %d", stop.Week.WeekNumber)
	el.Style["cursor"] = "pointer"

	events.OnElement(stop.ID, page.EventClick, func(ev *page.Event) {
		if ev.InLink {
			return
		}
		r.doc.Navigate(stop.Href)
	})
	events.OnElement(stop.ID, page.EventKeyDown, func(ev *page.Event) {
		if ev.Key == "Enter" || ev.Key == " " {
			ev.PreventDefault()
			r.doc.Navigate(stop.Href)
		}
	})

	if stop.ImageID == "" {
		return
	}
	img := r.doc.Ensure(stop.ImageID)
	img.AddClass("img-loading")
	media := r.doc.Ensure(stop.ImageContainerID)
	media.AddClass("stop__image")

	events.OnElement(stop.ImageID, page.EventLoad, func(*page.Event) {
		img.RemoveClass("img-loading")
	})
	events.OnElement(stop.ImageID, page.EventError, func(*page.Event) {
		media.AddClass("stop__image--empty")
	})
}

func (r *Route) setupProgress(events *page.Dispatcher, frames page.Frames) {
	fill, ok := r.doc.Element(ProgressID)
	if !ok {
		return
	}
	if _, ok := r.doc.Rect(TrackID); !ok {
		return
	}
	busNumber, hasBusNumber := r.doc.Element(BusNumberID)
	total := len(r.Stops)

	update := func() {
		track, ok := r.doc.Rect(TrackID)
		if !ok {
			return
		}
		progress := Progress(r.doc.Viewport.Height, track.Top, track.Height)
		fill.Style["height"] = fmt.Sprintf("%g%%", progress)

		if hasBusNumber && total > 0 {
			busNumber.Text = strconv.Itoa(StopNumber(progress, total))
		}
	}

	throttle := page.NewThrottle(frames, update)
	events.On(page.EventScroll, func(*page.Event) { throttle.Trigger() })

	update()
}
