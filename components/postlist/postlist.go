// Package postlist replaces the blog's latest-posts listing with a
// searchable one. The ?q= term narrows posts to those whose title or
// abstract contains it, case-insensitively, and the trimmed term is exposed
// to templates as search_query. Everything else (ordering, pagination,
// rendering) is inherited from the stories listing.
package postlist

import (
	"net/http"

	"github.com/goliatone/go-cmstheme/components/stories"
	"github.com/goliatone/go-cmstheme/pkg/blog"
	"github.com/goliatone/go-cmstheme/pkg/routes"
)

// ContextKey is the template variable carrying the trimmed search term.
const ContextKey = "search_query"

type Options struct {
	SearchParam string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{SearchParam: "q"}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	return opts
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

// SearchTerm returns the trimmed search parameter of r.
func SearchTerm(r *http.Request, param string) string {
	return blog.NormalizeSearch(r.URL.Query().Get(param))
}

// SearchFilter applies the search term to the listing query. A blank term
// leaves the query untouched.
func SearchFilter(param string) stories.QueryFilter {
	return func(r *http.Request, q *blog.PostQuery) error {
		if term := SearchTerm(r, param); term != "" {
			q.Search = term
		}
		return nil
	}
}

// SearchContext exposes the trimmed term as search_query.
func SearchContext(param string) stories.ContextHook {
	return func(r *http.Request, data map[string]any) {
		data[ContextKey] = SearchTerm(r, param)
	}
}

// NewView extends the app's latest-posts listing with search.
func NewView(app *stories.App, fns ...OptionFn) *stories.ListView {
	opts := NewOptions(fns...)
	return app.Latest.Extend(
		[]stories.QueryFilter{SearchFilter(opts.SearchParam)},
		[]stories.ContextHook{SearchContext(opts.SearchParam)},
	)
}

// Routes returns the app's route table with posts-latest served by the
// search view at the same path and name, so existing links and reversals
// keep working. All other routes are re-exposed unchanged.
func Routes(app *stories.App, fns ...OptionFn) routes.Table {
	vendor := app.Routes()
	pattern := routes.MountPath(app.Options.BasePath, "/")
	if latest, ok := vendor.Lookup(stories.RouteLatest); ok {
		pattern = latest.Pattern
	}
	return routes.Override(vendor, routes.Route{
		Name:    stories.RouteLatest,
		Pattern: pattern,
		Handler: NewView(app, fns...),
	})
}
