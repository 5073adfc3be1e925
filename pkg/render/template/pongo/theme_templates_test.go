package pongo_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	cmstheme "github.com/goliatone/go-cmstheme"
	"github.com/goliatone/go-cmstheme/pkg/render/template/pongo"
	"github.com/goliatone/go-cmstheme/pkg/templatetags"
)

func themeEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	engine, err := pongo.New(
		pongo.WithFS(cmstheme.TemplatesFS()),
		pongo.WithTemplateFunc(map[string]any{
			"translate": func(_ any, key any, args ...any) string {
				return fmt.Sprintf(fmt.Sprint(key), args...)
			},
			"url": func(name any, params ...any) string {
				return "/" + fmt.Sprint(append([]any{name}, params...)...)
			},
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	for name, fn := range (templatetags.Library{PageParam: "p"}).Globals() {
		if name == "url" {
			continue
		}
		if err := engine.RegisterFunc(name, fn); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	return engine
}

func TestThemePostListTemplate(t *testing.T) {
	engine := themeEngine(t)

	got, err := engine.RenderTemplate("blog/post_list", map[string]any{
		"lang":          "en",
		"search_param":  "s",
		"search_query":  "alpha",
		"request_query": "s=alpha",
		"is_paginated":  true,
		"posts": []map[string]any{
			{"slug": "alpha-launch", "title": "Alpha Launch", "abstract": "First", "published_at": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
		"page": map[string]any{
			"number": 1, "num_pages": 3, "has_next": true, "has_previous": false, "next": 2, "previous": 0, "radius": 1,
		},
		"get_blog_categories": func() []map[string]any {
			return []map[string]any{{"slug": "news", "name": "News", "url": "/blog/category/news/"}}
		},
		"theme": map[string]any{"stylesheets": []string{"/static/css/cmstheme.css"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"<title>Search: alpha</title>",
		`name="s"`,
		"Alpha Launch",
		`datetime="2024-03-01"`,
		`href="/blog/category/news/"`,
		`href="?s=alpha&amp;p=2"`,
		`href="/static/css/cmstheme.css"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestThemePostDetailTemplate(t *testing.T) {
	engine := themeEngine(t)

	got, err := engine.RenderTemplate("blog/post_detail", map[string]any{
		"lang": "en",
		"post": map[string]any{
			"slug": "alpha-launch", "title": "Alpha Launch", "body": "<p>Hello</p>",
			"published_at": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "categories": []string{"news"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "<h1>Alpha Launch</h1>") || !strings.Contains(got, "<p>Hello</p>") {
		t.Fatalf("unexpected detail output:\n%s", got)
	}
}
