package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-route/pkg/models"
)

const scenarioDoc = `{
  "site": {"name": "Test Route"},
  "route": {"name": "Line 7"},
  "weeks": [
    {"weekNumber": 1, "slug": "a", "status": "published", "title": "Week A", "stopName": "Alpha", "dateDisplay": "Jan 1", "essay": "First."},
    {"weekNumber": 2, "slug": "b", "status": "draft", "title": "Week B", "stopName": "Bravo", "dateDisplay": "Jan 8", "essay": "Secret."},
    {"weekNumber": 3, "slug": "c", "status": "published", "title": "Week C", "stopName": "Charlie", "dateDisplay": "Jan 15"}
  ]
}`

type countingSource struct {
	body  string
	err   error
	calls atomic.Int32
}

func (s *countingSource) Fetch(context.Context) ([]byte, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.body), nil
}

type failingCache struct{}

func (failingCache) Get(string) (string, bool, error) { return "", false, errors.New("storage disabled") }
func (failingCache) Set(string, string) error         { return errors.New("quota exceeded") }

func newMemCache(t *testing.T) *MemoryCache {
	t.Helper()
	c, err := NewMemoryCache("")
	require.NoError(t, err)
	return c
}

func slugs(weeks []models.Week) []string {
	out := make([]string, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, w.Slug)
	}
	return out
}

func TestLoadFetchesOnce(t *testing.T) {
	src := &countingSource{body: scenarioDoc}
	store := NewStore(src, newMemCache(t))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test Route", doc.Site.Name)

	again, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(doc, again))
	assert.NotSame(t, doc, again)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.True(t, store.Loaded())
}

func TestLoadPersistsDocumentAndTimestamp(t *testing.T) {
	cache := newMemCache(t)
	stamp := time.UnixMilli(1700000000123)
	store := NewStore(&countingSource{body: scenarioDoc}, cache, WithClock(func() time.Time { return stamp }))

	_, err := store.Load(context.Background())
	require.NoError(t, err)

	raw, found, err := cache.Get(CacheKeyContent)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, scenarioDoc, raw)

	at, ok := store.CachedAt()
	require.True(t, ok)
	assert.True(t, at.Equal(stamp))
}

func TestLoadSwallowsCacheWriteFailure(t *testing.T) {
	store := NewStore(&countingSource{body: scenarioDoc}, failingCache{})

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Weeks, 3)
}

func TestLoadFailsWithoutCache(t *testing.T) {
	store := NewStore(&countingSource{err: ErrFetch}, newMemCache(t))

	doc, err := store.Load(context.Background())
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, store.Loaded())
	assert.Empty(t, store.AllWeeks())
	assert.Nil(t, store.Site())
}

func TestLoadFallsBackToCache(t *testing.T) {
	cache := newMemCache(t)
	fresh := NewStore(&countingSource{body: scenarioDoc}, cache)
	_, err := fresh.Load(context.Background())
	require.NoError(t, err)

	stale := NewStore(&countingSource{err: ErrFetch}, cache)
	doc, err := stale.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)

	if diff := cmp.Diff(fresh.AllWeeks(), stale.AllWeeks()); diff != "" {
		t.Errorf("cached weeks differ (-fresh +cached):\n%s", diff)
	}
	assert.Equal(t, slugs(fresh.PublishedWeeks()), slugs(stale.PublishedWeeks()))
	assert.Equal(t, fresh.AdjacentWeeks(3), stale.AdjacentWeeks(3))
}

func TestLoadIgnoresCorruptCache(t *testing.T) {
	cache := newMemCache(t)
	require.NoError(t, cache.Set(CacheKeyContent, "{not json"))

	store := NewStore(&countingSource{err: ErrFetch}, cache)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLoadRejectsInvalidDocument(t *testing.T) {
	store := NewStore(&countingSource{body: "<html>"}, newMemCache(t))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLoadOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/content.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scenarioDoc))
	}))
	defer srv.Close()

	store := NewStore(&HTTPSource{URL: srv.URL + "/content.json"}, nil)
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Weeks, 3)

	missing := NewStore(&HTTPSource{URL: srv.URL + "/missing.json"}, nil)
	_, err = missing.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func loadedStore(t *testing.T, body string) *Store {
	t.Helper()
	store := NewStore(&countingSource{body: body}, nil)
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	return store
}

func TestPublishedWeeks(t *testing.T) {
	store := loadedStore(t, scenarioDoc)

	assert.Equal(t, []string{"a", "b", "c"}, slugs(store.AllWeeks()))
	assert.Equal(t, []string{"a", "c"}, slugs(store.PublishedWeeks()))
	for _, w := range store.PublishedWeeks() {
		assert.Equal(t, models.StatusPublished, w.Status)
	}
}

func TestWeekLookups(t *testing.T) {
	store := loadedStore(t, scenarioDoc)

	week, ok := store.WeekBySlug("b")
	require.True(t, ok)
	assert.Equal(t, 2, week.WeekNumber)

	_, ok = store.WeekBySlug("z")
	assert.False(t, ok)

	week, ok = store.WeekByNumber(3)
	require.True(t, ok)
	assert.Equal(t, "c", week.Slug)

	_, ok = store.WeekByNumber(9)
	assert.False(t, ok)

	assert.Equal(t, "Line 7", store.RouteConfig().Name)
}

const imageDoc = `{
  "route": {"revealThreshold": 0.25},
  "weeks": [
    {"weekNumber": 1, "slug": "a", "status": "published", "title": "Week A",
     "featuredImage": {"src": "/a.jpg"}, "images": [{"src": "/a-1.jpg"}]}
  ]
}`

func TestAccessorsReturnCopies(t *testing.T) {
	store := loadedStore(t, imageDoc)

	weeks := store.AllWeeks()
	weeks[0].Title = "mutated"
	weeks[0].FeaturedImage.Src = "/mutated.jpg"
	weeks[0].Images[0].Src = "/mutated-1.jpg"

	week, ok := store.WeekBySlug("a")
	require.True(t, ok)
	assert.Equal(t, "Week A", week.Title)
	assert.Equal(t, "/a.jpg", week.FeaturedImage.Src)
	assert.Equal(t, "/a-1.jpg", week.Images[0].Src)

	week.FeaturedImage.Src = "/again.jpg"
	published := store.PublishedWeeks()
	assert.Equal(t, "/a.jpg", published[0].FeaturedImage.Src)

	*store.RouteConfig().RevealThreshold = 0.9
	assert.Equal(t, 0.25, *store.RouteConfig().RevealThreshold)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	doc.Weeks[0].Images[0].Src = "/from-load.jpg"
	week, _ = store.WeekBySlug("a")
	assert.Equal(t, "/a-1.jpg", week.Images[0].Src)
}

func TestAdjacentWeeks(t *testing.T) {
	store := loadedStore(t, scenarioDoc)

	adj := store.AdjacentWeeks(3)
	require.NotNil(t, adj.Prev)
	assert.Equal(t, "a", adj.Prev.Slug)
	assert.Nil(t, adj.Next)

	adj = store.AdjacentWeeks(1)
	assert.Nil(t, adj.Prev)
	require.NotNil(t, adj.Next)
	assert.Equal(t, "c", adj.Next.Slug)

	adj = store.AdjacentWeeks(2)
	assert.Nil(t, adj.Prev)
	assert.Nil(t, adj.Next)
}

func TestAdjacentWeeksOrdersByWeekNumber(t *testing.T) {
	store := loadedStore(t, `{"weeks": [
		{"weekNumber": 10, "slug": "ten", "status": "published"},
		{"weekNumber": 4, "slug": "four", "status": "published"},
		{"weekNumber": 7, "slug": "seven", "status": "draft"},
		{"weekNumber": 20, "slug": "twenty", "status": "published"}
	]}`)

	adj := store.AdjacentWeeks(10)
	require.NotNil(t, adj.Prev)
	require.NotNil(t, adj.Next)
	assert.Equal(t, "four", adj.Prev.Slug)
	assert.Equal(t, "twenty", adj.Next.Slug)
}
