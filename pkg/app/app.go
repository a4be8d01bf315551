// Package app bootstraps a page: load the content, then hand it to the
// route or week renderer, or show the unavailable state.
package app

import (
	"context"

	"go.uber.org/zap"

	"bus-route/pkg/content"
	"bus-route/pkg/page"
	"bus-route/pkg/route"
	"bus-route/pkg/week"
)

// Env is everything a page needs for one page view
type Env struct {
	Doc    *page.Document
	Events *page.Dispatcher
	Frames page.Frames
	Store  *content.Store
	Logger *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// RunRoute boots the route page
func RunRoute(ctx context.Context, env Env) (*route.Route, error) {
	if _, err := env.Store.Load(ctx); err != nil {
		env.logger().Error("Content unavailable", zap.Error(err))
		return nil, page.ShowUnavailable(env.Doc, env.Events)
	}

	opts := route.DefaultOptions().WithRouteConfig(env.Store.RouteConfig())
	r, err := route.Mount(env.Doc, env.Events, env.Frames, env.Store.AllWeeks(), opts)
	if err != nil {
		return nil, err
	}
	env.logger().Debug("Route rendered", zap.Int("stops", len(r.Stops)))
	return r, nil
}

// RunWeek boots the week page for the slug in the page address
func RunWeek(ctx context.Context, env Env) (*week.Page, error) {
	slug := env.Doc.Query(week.QueryParam)
	if slug == "" {
		return &week.Page{State: week.StateNotFound}, week.ShowNotFound(env.Doc, week.DefaultSiteName)
	}

	if _, err := env.Store.Load(ctx); err != nil {
		env.logger().Error("Content unavailable", zap.Error(err))
		return nil, page.ShowUnavailable(env.Doc, env.Events)
	}

	p, err := week.Mount(env.Doc, env.Events, env.Frames, env.Store, slug)
	if err != nil {
		return nil, err
	}
	env.logger().Debug("Week rendered", zap.String("slug", slug), zap.Stringer("state", p.State))
	return p, nil
}
