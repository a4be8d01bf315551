// Package page models the host a renderer draws into: containers addressed by
// fixed ids, document title and meta tags, viewport geometry and navigation.
package page

import (
	"net/url"
	"sort"
	"strings"
)

// Element is one addressable node of the page
type Element struct {
	ID      string
	HTML    string
	Text    string
	Hidden  bool
	Classes map[string]bool
	Style   map[string]string
	Attrs   map[string]string
}

func newElement(id string) *Element {
	return &Element{
		ID:      id,
		Classes: make(map[string]bool),
		Style:   make(map[string]string),
		Attrs:   make(map[string]string),
	}
}

// AddClass adds a class to the element
func (e *Element) AddClass(name string) { e.Classes[name] = true }

// RemoveClass removes a class from the element
func (e *Element) RemoveClass(name string) { delete(e.Classes, name) }

// HasClass reports whether the element carries a class
func (e *Element) HasClass(name string) bool { return e.Classes[name] }

// ClassList returns the element's classes in sorted order
func (e *Element) ClassList() []string {
	list := make([]string, 0, len(e.Classes))
	for name := range e.Classes {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Rect is an element's bounding box relative to the viewport
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns the lower edge of the box
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Viewport describes the visible window
type Viewport struct {
	ScrollY float64
	Height  float64
}

// Document is the page host
type Document struct {
	Title        string
	BodyOverflow string
	Viewport     Viewport

	elements map[string]*Element
	rects    map[string]Rect
	meta     map[string]string
	query    url.Values

	navigations []string
	reloads     int
}

// NewDocument creates a page whose address carries rawQuery and whose
// externally-owned containers are the given ids.
func NewDocument(rawQuery string, containers ...string) *Document {
	query, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	d := &Document{
		elements: make(map[string]*Element),
		rects:    make(map[string]Rect),
		meta:     make(map[string]string),
		query:    query,
	}
	for _, id := range containers {
		d.elements[id] = newElement(id)
	}
	return d
}

// Element returns the element with the given id
func (d *Document) Element(id string) (*Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}

// Ensure returns the element with the given id, creating it if needed.
// Renderers use it for nodes they produce themselves.
func (d *Document) Ensure(id string) *Element {
	if el, ok := d.elements[id]; ok {
		return el
	}
	el := newElement(id)
	d.elements[id] = el
	return el
}

// Query returns a query parameter of the page address
func (d *Document) Query(name string) string {
	return d.query.Get(name)
}

// SetMeta sets the content of a named meta tag
func (d *Document) SetMeta(name, content string) { d.meta[name] = content }

// Meta returns the content of a named meta tag
func (d *Document) Meta(name string) string { return d.meta[name] }

// SetRect records the layout box of an element
func (d *Document) SetRect(id string, r Rect) { d.rects[id] = r }

// Rect returns the layout box of an element
func (d *Document) Rect(id string) (Rect, bool) {
	r, ok := d.rects[id]
	return r, ok
}

// Navigate moves the page to href
func (d *Document) Navigate(href string) { d.navigations = append(d.navigations, href) }

// Navigations returns every href navigated to, oldest first
func (d *Document) Navigations() []string { return d.navigations }

// Reload requests a full page reload
func (d *Document) Reload() { d.reloads++ }

// Reloads returns how many reloads were requested
func (d *Document) Reloads() int { return d.reloads }
