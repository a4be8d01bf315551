package route

import (
	"bus-route/pkg/models"
	"bus-route/pkg/views"
)

// Stop is the rendered unit for one week
type Stop struct {
	Week models.Week
	ID   string
	// Href is empty for drafts, which have no detail page
	Href string
	// ImageID and ImageContainerID are set when a featured image is shown
	ImageID          string
	ImageContainerID string
}

// Published reports whether the stop is interactive
func (s Stop) Published() bool { return s.Href != "" }

// StopID returns the element id of a week's stop
func StopID(week models.Week) string {
	return "stop-" + week.Slug
}

// NewStop derives the stop for a week
func NewStop(week models.Week) Stop {
	stop := Stop{Week: week, ID: StopID(week)}
	if !week.Published() {
		return stop
	}
	stop.Href = week.Href()
	if week.HasFeaturedImage() {
		stop.ImageID = stop.ID + "-image"
		stop.ImageContainerID = stop.ID + "-media"
	}
	return stop
}

func stopView(stop Stop) views.Stop {
	week := stop.Week
	v := views.Stop{
		ID:          stop.ID,
		Class:       "stop",
		WeekNumber:  week.WeekNumber,
		Href:        "#",
		StopName:    week.StopName,
		Title:       week.Title,
		DateDisplay: week.DateDisplay,
	}
	if !stop.Published() {
		v.Class = "stop stop--draft"
		return v
	}

	v.Href = stop.Href
	if stop.ImageID == "" {
		v.Placeholder = true
		v.PlaceholderID = stop.ID + "-media"
		return v
	}

	img := *week.FeaturedImage
	v.Image = &views.StopImage{
		ContainerID: stop.ImageContainerID,
		ID:          stop.ImageID,
		Src:         img.Src,
		WebP:        img.WebP(),
		Alt:         img.AltOr(week.Title),
	}
	return v
}

// RenderStops renders one stop per week, in list order
func RenderStops(weeks []models.Week) (string, []Stop, error) {
	stops := make([]Stop, 0, len(weeks))
	page := views.StopsPage{Stops: make([]views.Stop, 0, len(weeks))}
	for _, week := range weeks {
		stop := NewStop(week)
		stops = append(stops, stop)
		page.Stops = append(page.Stops, stopView(stop))
	}

	markup, err := views.Render(views.Stops, page)
	if err != nil {
		return "", nil, err
	}
	return markup, stops, nil
}
