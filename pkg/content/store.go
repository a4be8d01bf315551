package content

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"bus-route/pkg/models"
)

// Store loads the content document once per page view and answers read
// queries against the in-memory snapshot.
type Store struct {
	source Source
	cache  LocalCache
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	doc    *models.Document
	loaded bool
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the clock used to timestamp cached copies
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store reading from source. A nil cache disables persistence.
func NewStore(source Source, localCache LocalCache, opts ...Option) *Store {
	if localCache == nil {
		localCache = NoCache{}
	}
	s := &Store{
		source: source,
		cache:  localCache,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns a copy of the content document. The first successful call
// fetches it; later calls copy the same snapshot without touching the source. When the
// fetch fails the last persisted copy is used instead, and ErrUnavailable is
// returned if there is none.
func (s *Store) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.doc.Clone(), nil
	}

	doc, raw, err := s.fetch(ctx)
	if err == nil {
		s.doc = doc
		s.loaded = true
		s.persist(raw)
		return s.doc.Clone(), nil
	}

	s.logger.Warn("Content load error", zap.Error(err))

	cached, ok := s.readCache()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.logger.Info("Using cached content")
	s.doc = cached
	s.loaded = true
	return s.doc.Clone(), nil
}

func (s *Store) fetch(ctx context.Context) (*models.Document, []byte, error) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid content document: %v", ErrFetch, err)
	}
	return &doc, raw, nil
}

// persist writes the raw document and a timestamp; failures are only logged
func (s *Store) persist(raw []byte) {
	if err := s.cache.Set(CacheKeyContent, string(raw)); err != nil {
		s.logger.Debug("Skipping content cache", zap.Error(err))
		return
	}
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.cache.Set(CacheKeyCachedAt, stamp); err != nil {
		s.logger.Debug("Skipping content cache timestamp", zap.Error(err))
	}
}

func (s *Store) readCache() (*models.Document, bool) {
	raw, found, err := s.cache.Get(CacheKeyContent)
	if err != nil || !found {
		return nil, false
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logger.Debug("Ignoring corrupt cached content", zap.Error(err))
		return nil, false
	}
	return &doc, true
}

// Loaded reports whether a document is held in memory
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// CachedAt returns when the persisted copy was written, if known
func (s *Store) CachedAt() (time.Time, bool) {
	raw, found, err := s.cache.Get(CacheKeyCachedAt)
	if err != nil || !found {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func (s *Store) document() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Site returns the site metadata, or nil before a successful load
func (s *Store) Site() *models.Site {
	doc := s.document()
	if doc == nil {
		return nil
	}
	site := doc.Site
	return &site
}

// RouteConfig returns the route settings of the loaded document
func (s *Store) RouteConfig() models.RouteConfig {
	doc := s.document()
	if doc == nil {
		return models.RouteConfig{}
	}
	return doc.Route.Clone()
}

// AllWeeks returns every week in document order
func (s *Store) AllWeeks() []models.Week {
	doc := s.document()
	if doc == nil {
		return []models.Week{}
	}
	weeks := make([]models.Week, len(doc.Weeks))
	for i, week := range doc.Weeks {
		weeks[i] = week.Clone()
	}
	return weeks
}

// PublishedWeeks returns the published weeks in document order
func (s *Store) PublishedWeeks() []models.Week {
	var published []models.Week
	for _, week := range s.AllWeeks() {
		if week.Published() {
			published = append(published, week)
		}
	}
	return published
}

// WeekBySlug returns the week with the given slug
func (s *Store) WeekBySlug(slug string) (models.Week, bool) {
	for _, week := range s.AllWeeks() {
		if week.Slug == slug {
			return week, true
		}
	}
	return models.Week{}, false
}

// WeekByNumber returns the first week with the given ordinal
func (s *Store) WeekByNumber(num int) (models.Week, bool) {
	for _, week := range s.AllWeeks() {
		if week.WeekNumber == num {
			return week, true
		}
	}
	return models.Week{}, false
}

// Adjacent holds the published neighbours of a week; either may be nil
type Adjacent struct {
	Prev *models.Week
	Next *models.Week
}

// AdjacentWeeks returns the neighbours of a week within the published weeks
// ordered by week number. Drafts never appear as neighbours, and a week that is
// not itself published has none.
func (s *Store) AdjacentWeeks(weekNumber int) Adjacent {
	published := s.PublishedWeeks()
	slices.SortStableFunc(published, func(a, b models.Week) int {
		return a.WeekNumber - b.WeekNumber
	})

	idx := slices.IndexFunc(published, func(w models.Week) bool {
		return w.WeekNumber == weekNumber
	})
	if idx < 0 {
		return Adjacent{}
	}

	var adj Adjacent
	if idx > 0 {
		prev := published[idx-1]
		adj.Prev = &prev
	}
	if idx < len(published)-1 {
		next := published[idx+1]
		adj.Next = &next
	}
	return adj
}
