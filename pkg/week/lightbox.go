package week

import (
	"bus-route/pkg/models"
	"bus-route/pkg/page"
)

// Lightbox element ids
const (
	LightboxID        = "lightbox"
	LightboxImageID   = "lightbox-image"
	LightboxCaptionID = "lightbox-caption"
	LightboxCloseID   = "lightbox-close"
	LightboxPrevID    = "lightbox-prev"
	LightboxNextID    = "lightbox-next"
)

// NextIndex returns the index after i in a gallery of n images, wrapping
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PrevIndex returns the index before i in a gallery of n images, wrapping
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// Lightbox is the modal image viewer of a week page
type Lightbox struct {
	doc     *page.Document
	el      *page.Element
	image   *page.Element
	caption *page.Element

	images []models.Image
	index  int
}

// NewLightbox binds to the page's lightbox element, if it has one
func NewLightbox(doc *page.Document) (*Lightbox, bool) {
	el, ok := doc.Element(LightboxID)
	if !ok {
		return nil, false
	}
	el.Hidden = true
	return &Lightbox{
		doc:     doc,
		el:      el,
		image:   doc.Ensure(LightboxImageID),
		caption: doc.Ensure(LightboxCaptionID),
	}, true
}

// IsOpen reports whether the viewer is showing
func (l *Lightbox) IsOpen() bool { return !l.el.Hidden }

// Index returns the position of the image on display
func (l *Lightbox) Index() int { return l.index }

// Open shows images[index] and suspends page scrolling. Opening an empty
// gallery or an index outside it does nothing.
func (l *Lightbox) Open(images []models.Image, index int) {
	if index < 0 || index >= len(images) {
		return
	}
	l.images = images
	l.el.Hidden = false
	l.doc.BodyOverflow = "hidden"
	l.show(index)
}

// Close hides the viewer and restores page scrolling
func (l *Lightbox) Close() {
	l.el.Hidden = true
	l.doc.BodyOverflow = ""
}

// Next moves to the following image, wrapping to the first
func (l *Lightbox) Next() {
	if len(l.images) == 0 {
		return
	}
	l.show(NextIndex(l.index, len(l.images)))
}

// Prev moves to the preceding image, wrapping to the last
func (l *Lightbox) Prev() {
	if len(l.images) == 0 {
		return
	}
	l.show(PrevIndex(l.index, len(l.images)))
}

func (l *Lightbox) show(index int) {
	l.index = index
	img := l.images[index]
	l.image.Attrs["src"] = img.Src
	l.image.Attrs["alt"] = img.Alt
	l.caption.Text = img.Caption
}

// Bind wires the viewer's controls and keyboard shortcuts
func (l *Lightbox) Bind(events *page.Dispatcher) {
	events.OnElement(LightboxCloseID, page.EventClick, func(*page.Event) { l.Close() })
	events.OnElement(LightboxPrevID, page.EventClick, func(*page.Event) { l.Prev() })
	events.OnElement(LightboxNextID, page.EventClick, func(*page.Event) { l.Next() })

	events.OnElement(LightboxID, page.EventClick, func(ev *page.Event) {
		if ev.Target == LightboxID {
			l.Close()
		}
	})

	events.On(page.EventKeyDown, func(ev *page.Event) {
		if !l.IsOpen() {
			return
		}
		switch ev.Key {
		case "Escape":
			l.Close()
		case "ArrowLeft":
			l.Prev()
		case "ArrowRight":
			l.Next()
		}
	})
}
