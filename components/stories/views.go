package stories

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-cmstheme/pkg/blog"
	"github.com/goliatone/go-cmstheme/pkg/pagination"
	"github.com/goliatone/go-cmstheme/pkg/render/template"
	"github.com/goliatone/go-cmstheme/pkg/templatetags"
)

// QueryFilter narrows the listing query for a request. Returning an error
// aborts the request with the error's status (404 for missing objects).
type QueryFilter func(r *http.Request, q *blog.PostQuery) error

// ContextHook adds or replaces template context values.
type ContextHook func(r *http.Request, data map[string]any)

// ListView renders a paginated post listing. The base listing is ordered
// newest first by the store; Filters and Hooks refine it.
type ListView struct {
	Store    blog.Store
	Renderer template.TemplateRenderer
	Tags     *templatetags.Library
	Options  Options
	Filters  []QueryFilter
	Hooks    []ContextHook
}

// Extend returns a copy of v with extra filters and hooks appended.
func (v *ListView) Extend(filters []QueryFilter, hooks []ContextHook) *ListView {
	clone := *v
	clone.Filters = append(append([]QueryFilter{}, v.Filters...), filters...)
	clone.Hooks = append(append([]ContextHook{}, v.Hooks...), hooks...)
	return &clone
}

func (v *ListView) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, err := v.contextData(r)
	if err != nil {
		writeError(w, r, v.Options, err)
		return
	}
	render(w, r, v.Renderer, v.Options.ListTemplate, data, v.Options)
}

func (v *ListView) contextData(r *http.Request) (map[string]any, error) {
	query := blog.PostQuery{}
	for _, filter := range v.Filters {
		if err := filter(r, &query); err != nil {
			return nil, err
		}
	}

	countQuery := query
	countQuery.Limit = 1
	counted, err := v.Store.ListPosts(r.Context(), countQuery)
	if err != nil {
		return nil, err
	}
	paginator := pagination.NewPaginator(counted.Total, v.Options.PerPage)
	number, err := paginator.ParsePage(r.URL.Query().Get(v.Options.PageParam))
	if err != nil {
		return nil, err
	}
	window, err := paginator.Page(number)
	if err != nil {
		return nil, err
	}

	query.Limit = window.Limit
	query.Offset = window.Offset
	page, err := v.Store.ListPosts(r.Context(), query)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"posts":        postRows(page.Posts),
		"is_paginated": window.HasOther(),
		"page": map[string]any{
			"number":       window.Number,
			"num_pages":    window.NumPages,
			"count":        window.Count,
			"has_next":     window.HasNext(),
			"has_previous": window.HasPrevious(),
			"next":         window.Next(),
			"previous":     window.Previous(),
			"radius":       v.Options.Radius,
		},
		"request_query":    r.URL.RawQuery,
		"current_category": query.Category,
		"year":             query.Year,
	}
	v.decorate(r, data)
	for _, hook := range v.Hooks {
		hook(r, data)
	}
	return data, nil
}

func (v *ListView) decorate(r *http.Request, data map[string]any) {
	decorate(r, data, v.Tags, v.Options)
}

// DetailView renders a single post addressed by its slug.
type DetailView struct {
	Store    blog.Store
	Renderer template.TemplateRenderer
	Tags     *templatetags.Library
	Options  Options
}

func (v *DetailView) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := v.Store.GetPost(r.Context(), slug)
	if err != nil {
		writeError(w, r, v.Options, err)
		return
	}
	data := map[string]any{"post": postRow(post), "request_query": r.URL.RawQuery}
	decorate(r, data, v.Tags, v.Options)
	render(w, r, v.Renderer, v.Options.DetailTemplate, data, v.Options)
}

func postRows(posts []blog.Post) []map[string]any {
	out := make([]map[string]any, len(posts))
	for i, p := range posts {
		out[i] = postRow(p)
	}
	return out
}

func postRow(p blog.Post) map[string]any {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return map[string]any{
		"id":           p.ID,
		"slug":         p.Slug,
		"title":        p.Title,
		"abstract":     p.Abstract,
		"body":         p.Body,
		"published_at": p.PublishedAt,
		"categories":   categories,
	}
}

// CategoryFilter restricts a listing to the category named by the
// "category" URL parameter; unknown categories are 404s.
func CategoryFilter(store blog.Store) QueryFilter {
	return func(r *http.Request, q *blog.PostQuery) error {
		slug := chi.URLParam(r, "category")
		if _, err := store.GetCategory(r.Context(), slug); err != nil {
			return err
		}
		q.Category = slug
		return nil
	}
}

// YearFilter restricts a listing to the "year" URL parameter.
func YearFilter(r *http.Request, q *blog.PostQuery) error {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		return NotFound(fmt.Errorf("stories: invalid year %q", chi.URLParam(r, "year")))
	}
	q.Year = year
	return nil
}

func decorate(r *http.Request, data map[string]any, tags *templatetags.Library, opts Options) {
	lang := opts.Language(r)
	data["lang"] = lang
	if tags == nil {
		tags = &templatetags.Library{}
	}
	for name, fn := range tags.ForRequest(requestContext(r), lang) {
		data[name] = fn
	}
	for _, hook := range opts.ContextHooks {
		hook(r, data)
	}
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

func render(w http.ResponseWriter, r *http.Request, renderer template.TemplateRenderer, name string, data map[string]any, opts Options) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	out, err := renderer.RenderTemplate(name, data)
	if err != nil {
		writeError(w, r, opts, fmt.Errorf("stories: render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(out))
}

func writeError(w http.ResponseWriter, r *http.Request, opts Options, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		opts.Logger.ErrorContext(requestContext(r), "stories: request failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
	} else {
		opts.Logger.DebugContext(requestContext(r), "stories: request rejected",
			slog.String("path", r.URL.Path), slog.Int("status", code), slog.Any("error", err))
	}
	http.Error(w, http.StatusText(code), code)
}
