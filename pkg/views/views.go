// Package views holds the pug templates the page renderers fill in.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/eknkc/pug"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.pug
var templateFS embed.FS

// Template names
const (
	Stops       = "stops"
	Week        = "week"
	NotFound    = "not_found"
	ComingSoon  = "coming_soon"
	Unavailable = "unavailable"
)

var (
	compiled = make(map[string]*template.Template)
	mu       sync.Mutex

	essaySanitizer = bluemonday.UGCPolicy()
)

func lookup(name string) (*template.Template, error) {
	mu.Lock()
	defer mu.Unlock()

	if tpl, ok := compiled[name]; ok {
		return tpl, nil
	}

	src, err := templateFS.ReadFile("templates/" + name + ".pug")
	if err != nil {
		return nil, fmt.Errorf("unknown template %s: %w", name, err)
	}

	tpl, err := pug.CompileString(string(src), pug.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to compile template %s: %w", name, err)
	}
	compiled[name] = tpl
	return tpl, nil
}

// Render executes the named template and returns the markup
func Render(name string, data any) (string, error) {
	tpl, err := lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Paragraph sanitizes one essay paragraph. Templates emit the result unescaped.
func Paragraph(text string) string {
	return essaySanitizer.Sanitize(text)
}

// StopImage is the featured image block of a published stop
type StopImage struct {
	ContainerID string
	ID          string
	Src         string
	WebP        string
	Alt         string
}

// Stop is one stop on the route page
type Stop struct {
	ID            string
	Class         string
	WeekNumber    int
	Href          string
	StopName      string
	Title         string
	DateDisplay   string
	Image         *StopImage
	Placeholder   bool
	PlaceholderID string
}

// StopsPage is the data for the stops template
type StopsPage struct {
	Stops []Stop
}

// Image is a plain image reference
type Image struct {
	Src string
	Alt string
}

// GalleryItem is one figure in the week gallery
type GalleryItem struct {
	ID      string
	ImageID string
	Index   int
	Src     string
	Alt     string
	Caption string
}

// NavLink points at a neighbouring week
type NavLink struct {
	Href  string
	Title string
}

// WeekPage is the data for the week template
type WeekPage struct {
	Title       string
	StopName    string
	WeekNumber  int
	DateDisplay string
	Hero        *Image
	Paragraphs  []string
	Gallery     []GalleryItem
	Prev        *NavLink
	Next        *NavLink
}

// ComingSoonPage is the data for the coming soon template
type ComingSoonPage struct {
	WeekNumber  int
	StopName    string
	DateDisplay string
}
