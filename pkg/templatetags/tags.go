// Package templatetags exposes the theme's template helpers: the category
// listing, the pagination strip, page links and route reversal.
package templatetags

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-cmstheme/pkg/blog"
	"github.com/goliatone/go-cmstheme/pkg/pagination"
	"github.com/goliatone/go-cmstheme/pkg/routes"
)

// CategoryRouteName is reversed to link each listed category.
const CategoryRouteName = "posts-category"

// CategoryLister returns categories ordered for display.
type CategoryLister interface {
	Categories(ctx context.Context, lang string) ([]blog.LocalizedCategory, error)
}

// DefaultSearchParam is the query parameter the search form submits when
// the library does not name one.
const DefaultSearchParam = "q"

// Library binds helpers to their data sources.
type Library struct {
	Categories CategoryLister
	Routes     routes.Table
	// PageParam and SearchParam are the listing's query parameter names.
	// Empty values mean "page" and "q".
	PageParam   string
	SearchParam string
}

func (l Library) pageParam() string {
	if l.PageParam == "" {
		return pagination.DefaultPageKey
	}
	return l.PageParam
}

func (l Library) searchParam() string {
	if l.SearchParam == "" {
		return DefaultSearchParam
	}
	return l.SearchParam
}

// Globals returns the request-independent helpers:
//
//	pagination_range(current, total[, radius])
//	page_url(query, page)
//	url(name, key, value, ...)
func (l Library) Globals() map[string]any {
	pageParam := l.pageParam()
	return map[string]any{
		"pagination_range": func(current, total any, extra ...any) []map[string]any {
			r := pagination.DefaultRadius
			if len(extra) > 0 {
				if n, ok := toInt(extra[0]); ok {
					r = n
				}
			}
			c, _ := toInt(current)
			t, _ := toInt(total)
			return PaginationRange(c, t, r)
		},
		"page_url": func(query, page any) string {
			n, ok := toInt(page)
			if !ok {
				n = 1
			}
			return PageURL(query, n, pageParam)
		},
		"url": func(name any, params ...any) (string, error) {
			pairs := make([]string, len(params))
			for i, p := range params {
				pairs[i] = fmt.Sprint(p)
			}
			return l.Routes.Reverse(fmt.Sprint(name), pairs...)
		},
	}
}

// ForRequest returns helpers bound to one request's context and language,
// plus search_param for the search form.
func (l Library) ForRequest(ctx context.Context, lang string) map[string]any {
	return map[string]any{
		"get_blog_categories": func() ([]map[string]any, error) {
			return l.BlogCategories(ctx, lang)
		},
		"search_param": l.searchParam(),
	}
}

// BlogCategories lists categories (priority, then localized name) as
// template rows with slug, name, priority and url keys.
func (l Library) BlogCategories(ctx context.Context, lang string) ([]map[string]any, error) {
	if l.Categories == nil {
		return []map[string]any{}, nil
	}
	categories, err := l.Categories.Categories(ctx, lang)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		href, err := l.Routes.Reverse(CategoryRouteName, "category", c.Slug)
		if err != nil {
			href = ""
		}
		out = append(out, map[string]any{
			"slug":     c.Slug,
			"name":     c.Name,
			"priority": c.Priority,
			"url":      href,
		})
	}
	return out, nil
}

// PaginationRange converts the page strip into template rows with number
// and ellipsis keys.
func PaginationRange(current, total, radius int) []map[string]any {
	items := pagination.Range(current, total, radius)
	out := make([]map[string]any, len(items))
	for i, item := range items {
		out[i] = map[string]any{
			"number":   item.Number,
			"ellipsis": item.Ellipsis,
			"label":    item.String(),
		}
	}
	return out
}

// PageURL builds "?<query with key set to page>" from a raw query string or
// url.Values.
func PageURL(query any, page int, key string) string {
	var raw string
	switch q := query.(type) {
	case nil:
	case string:
		raw = q
	case url.Values:
		raw = q.Encode()
	case *url.URL:
		raw = q.RawQuery
	default:
		raw = fmt.Sprint(q)
	}
	return "?" + pagination.PageQuery(raw, page, key)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}
