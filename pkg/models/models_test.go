package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDocumentClone(t *testing.T) {
	threshold := 0.3
	doc := &Document{
		Site:  Site{Name: "Route"},
		Route: RouteConfig{RevealThreshold: &threshold},
		Weeks: []Week{{Slug: "a", FeaturedImage: &Image{Src: "/a.jpg"}, Images: []Image{{Src: "/a-1.jpg"}}}},
	}

	clone := doc.Clone()
	assert.Empty(t, cmp.Diff(doc, clone))

	clone.Weeks[0].FeaturedImage.Src = "/b.jpg"
	clone.Weeks[0].Images[0].Src = "/b-1.jpg"
	*clone.Route.RevealThreshold = 0.9
	assert.Equal(t, "/a.jpg", doc.Weeks[0].FeaturedImage.Src)
	assert.Equal(t, "/a-1.jpg", doc.Weeks[0].Images[0].Src)
	assert.Equal(t, 0.3, *doc.Route.RevealThreshold)

	var empty *Document
	assert.Nil(t, empty.Clone())
}

func TestImageHelpers(t *testing.T) {
	assert.Equal(t, "/a.webp", Image{Src: "/a.JPG"}.WebP())
	assert.Equal(t, "/a.png", Image{Src: "/a.png"}.WebP())
	assert.Equal(t, "fallback", Image{}.AltOr("fallback"))
	assert.Equal(t, "/week.html?week=a+b", Week{Slug: "a b"}.Href())
}
