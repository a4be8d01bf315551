package models

import (
	"net/url"
	"regexp"
	"slices"
)

// Status is the publish state of a week
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Document is the root content document served as content.json
type Document struct {
	Site  Site        `json:"site"`
	Weeks []Week      `json:"weeks"`
	Route RouteConfig `json:"route"`
}

// Site holds site-wide metadata
type Site struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// RouteConfig holds optional settings for the route page
type RouteConfig struct {
	Name               string   `json:"name,omitempty"`
	Description        string   `json:"description,omitempty"`
	RevealThreshold    *float64 `json:"revealThreshold,omitempty"`
	RevealMarginBottom *float64 `json:"revealMarginBottom,omitempty"`
}

// Clone returns a copy of the settings that shares no memory with c
func (c RouteConfig) Clone() RouteConfig {
	if c.RevealThreshold != nil {
		v := *c.RevealThreshold
		c.RevealThreshold = &v
	}
	if c.RevealMarginBottom != nil {
		v := *c.RevealMarginBottom
		c.RevealMarginBottom = &v
	}
	return c
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Site: d.Site, Route: d.Route.Clone()}
	if d.Weeks != nil {
		out.Weeks = make([]Week, len(d.Weeks))
		for i, w := range d.Weeks {
			out.Weeks[i] = w.Clone()
		}
	}
	return out
}

// Week represents one stop on the route
type Week struct {
	WeekNumber    int     `json:"weekNumber"`
	Slug          string  `json:"slug"`
	Status        Status  `json:"status"`
	Title         string  `json:"title"`
	StopName      string  `json:"stopName"`
	DateDisplay   string  `json:"dateDisplay"`
	FeaturedImage *Image  `json:"featuredImage,omitempty"`
	Essay         string  `json:"essay,omitempty"`
	Images        []Image `json:"images,omitempty"`
}

// Image is a featured or gallery image
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Published reports whether the week may be shown in full
func (w Week) Published() bool {
	return w.Status == StatusPublished
}

// Clone returns a copy of the week that shares no memory with w
func (w Week) Clone() Week {
	if w.FeaturedImage != nil {
		img := *w.FeaturedImage
		w.FeaturedImage = &img
	}
	w.Images = slices.Clone(w.Images)
	return w
}

// HasFeaturedImage reports whether the week carries a usable featured image
func (w Week) HasFeaturedImage() bool {
	return w.FeaturedImage != nil && w.FeaturedImage.Src != ""
}

// Href returns the week page address for this week
func (w Week) Href() string {
	return "/week.html?week=" + url.QueryEscape(w.Slug)
}

var jpgExtension = regexp.MustCompile(`(?i)\.jpg$`)

// WebP returns the path of the webp sibling of a jpg image
func (i Image) WebP() string {
	return jpgExtension.ReplaceAllString(i.Src, ".webp")
}

// AltOr returns the alt text, or fallback when none is set
func (i Image) AltOr(fallback string) string {
	if i.Alt != "" {
		return i.Alt
	}
	return fallback
}
