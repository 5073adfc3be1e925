package stories

import (
	"fmt"

	"github.com/goliatone/go-cmstheme/pkg/blog"
	"github.com/goliatone/go-cmstheme/pkg/render/template"
	"github.com/goliatone/go-cmstheme/pkg/routes"
	"github.com/goliatone/go-cmstheme/pkg/templatetags"
)

// App wires the blog views to a store and renderer.
type App struct {
	Options Options

	Latest   *ListView
	Category *ListView
	Archive  *ListView
	Detail   *DetailView
}

// New builds the views. tags may be nil; when set its Routes field is
// usually filled in after the final route table is assembled.
func New(store blog.Store, renderer template.TemplateRenderer, tags *templatetags.Library, fns ...OptionFn) (*App, error) {
	if store == nil {
		return nil, fmt.Errorf("stories: missing store")
	}
	if renderer == nil {
		return nil, fmt.Errorf("stories: missing renderer")
	}
	opts := NewOptions(fns...)

	base := ListView{Store: store, Renderer: renderer, Tags: tags, Options: opts}
	return &App{
		Options:  opts,
		Latest:   base.Extend(nil, nil),
		Category: base.Extend([]QueryFilter{CategoryFilter(store)}, nil),
		Archive:  base.Extend([]QueryFilter{YearFilter}, nil),
		Detail:   &DetailView{Store: store, Renderer: renderer, Tags: tags, Options: opts},
	}, nil
}

// Routes returns the app's route table mounted under Options.BasePath.
// Specific patterns come first: the archive's year pattern must win over a
// post slug made of four digits.
func (a *App) Routes() routes.Table {
	return routes.Table{
		{Name: RouteLatest, Pattern: "/", Handler: a.Latest},
		{Name: RouteCategory, Pattern: "/category/{category}/", Handler: a.Category},
		{Name: RouteArchive, Pattern: "/{year:[0-9]{4}}/", Handler: a.Archive},
		{Name: RouteDetail, Pattern: "/{slug}/", Handler: a.Detail},
	}.WithPrefix(a.Options.BasePath)
}
