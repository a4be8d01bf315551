// Package week renders a single week's page: hero, essay, gallery, neighbour
// links and the lightbox, or the not-found and coming-soon states.
package week

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bus-route/pkg/content"
	"bus-route/pkg/models"
	"bus-route/pkg/page"
	"bus-route/pkg/views"
)

// ContentID is the container the week page renders into
const ContentID = "week-content"

// QueryParam is the page address parameter carrying the week slug
const QueryParam = "week"

// DefaultSiteName is used in page titles when the content names no site
const DefaultSiteName = "Bus Route"

const galleryItemPrefix = "gallery-item-"

// ErrMissingContainer is returned when the page has no week container
var ErrMissingContainer = errors.New("week container not found")

// State is the outcome of resolving a slug
type State int

const (
	StateNotFound State = iota
	StateComingSoon
	StatePublished
)

func (s State) String() string {
	switch s {
	case StateComingSoon:
		return "coming-soon"
	case StatePublished:
		return "published"
	default:
		return "not-found"
	}
}

// Lookup is the read side of the content store the week page needs
type Lookup interface {
	Site() *models.Site
	WeekBySlug(slug string) (models.Week, bool)
	AdjacentWeeks(weekNumber int) content.Adjacent
}

// Page is a mounted week page
type Page struct {
	State    State
	Week     models.Week
	Lightbox *Lightbox
}

func siteName(store Lookup) string {
	if store == nil {
		return DefaultSiteName
	}
	if site := store.Site(); site != nil && site.Name != "" {
		return site.Name
	}
	return DefaultSiteName
}

// Mount resolves slug against store and renders the matching state
func Mount(doc *page.Document, events *page.Dispatcher, frames page.Frames, store Lookup, slug string) (*Page, error) {
	if _, ok := doc.Element(ContentID); !ok {
		return nil, ErrMissingContainer
	}

	week, found := models.Week{}, false
	if slug != "" {
		week, found = store.WeekBySlug(slug)
	}
	if !found {
		return &Page{State: StateNotFound}, ShowNotFound(doc, siteName(store))
	}

	if !week.Published() {
		return &Page{State: StateComingSoon, Week: week}, showComingSoon(doc, week, siteName(store))
	}

	p := &Page{State: StatePublished, Week: week}
	if err := render(doc, store, week); err != nil {
		return nil, err
	}

	doc.Title = fmt.Sprintf("%s | %s", week.Title, siteName(store))
	if desc := MetaDescription(week.Essay); desc != "" {
		doc.SetMeta("description", desc)
	}

	p.bindGallery(doc, events)
	page.HeaderScroll(doc, events, frames)
	return p, nil
}

// ShowNotFound renders the not-found state
func ShowNotFound(doc *page.Document, site string) error {
	main, ok := doc.Element(ContentID)
	if !ok {
		return ErrMissingContainer
	}
	markup, err := views.Render(views.NotFound, nil)
	if err != nil {
		return err
	}
	doc.Title = "Week Not Found | " + site
	main.HTML = markup
	return nil
}

func showComingSoon(doc *page.Document, week models.Week, site string) error {
	main, _ := doc.Element(ContentID)
	markup, err := views.Render(views.ComingSoon, views.ComingSoonPage{
		WeekNumber:  week.WeekNumber,
		StopName:    week.StopName,
		DateDisplay: week.DateDisplay,
	})
	if err != nil {
		return err
	}
	doc.Title = "Coming Soon | " + site
	main.HTML = markup
	return nil
}

func galleryItemID(i int) string  { return galleryItemPrefix + strconv.Itoa(i) }
func galleryImageID(i int) string { return "gallery-image-" + strconv.Itoa(i) }

func render(doc *page.Document, store Lookup, week models.Week) error {
	data := views.WeekPage{
		Title:       week.Title,
		StopName:    week.StopName,
		WeekNumber:  week.WeekNumber,
		DateDisplay: week.DateDisplay,
		Paragraphs:  Paragraphs(week.Essay),
	}
	if week.HasFeaturedImage() {
		data.Hero = &views.Image{Src: week.FeaturedImage.Src, Alt: week.FeaturedImage.AltOr(week.Title)}
	}
	for i, img := range week.Images {
		data.Gallery = append(data.Gallery, views.GalleryItem{
			ID:      galleryItemID(i),
			ImageID: galleryImageID(i),
			Index:   i,
			Src:     img.Src,
			Alt:     img.AltOr(week.Title),
			Caption: img.Caption,
		})
	}

	adj := store.AdjacentWeeks(week.WeekNumber)
	if adj.Prev != nil {
		data.Prev = &views.NavLink{Href: adj.Prev.Href(), Title: adj.Prev.Title}
	}
	if adj.Next != nil {
		data.Next = &views.NavLink{Href: adj.Next.Href(), Title: adj.Next.Title}
	}

	markup, err := views.Render(views.Week, data)
	if err != nil {
		return err
	}
	main, _ := doc.Element(ContentID)
	main.HTML = markup
	return nil
}

func (p *Page) bindGallery(doc *page.Document, events *page.Dispatcher) {
	images := p.Week.Images
	for i := range images {
		figure := doc.Ensure(galleryItemID(i))
		figure.AddClass("gallery-item")
		figure.Attrs["data-index"] = strconv.Itoa(i)

		events.OnElement(galleryImageID(i), page.EventError, func(*page.Event) {
			figure.Hidden = true
		})
	}

	lightbox, ok := NewLightbox(doc)
	if !ok {
		return
	}
	p.Lightbox = lightbox
	lightbox.Bind(events)

	events.On(page.EventClick, func(ev *page.Event) {
		id, ok := ev.Closest(galleryItemPrefix)
		if !ok {
			return
		}
		index, err := strconv.Atoi(strings.TrimPrefix(id, galleryItemPrefix))
		if err != nil {
			return
		}
		lightbox.Open(images, index)
	})
}
