package postlist

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmstheme/components/stories"
	"github.com/goliatone/go-cmstheme/pkg/testsupport"
)

func searchRouter(t *testing.T, fns ...OptionFn) (*testsupport.RecordingRenderer, http.Handler) {
	t.Helper()

	renderer := &testsupport.RecordingRenderer{}
	app, err := stories.New(testsupport.SampleStore(t), renderer, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	router, err := Routes(app, fns...).Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return renderer, router
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func slugs(t *testing.T, data map[string]any) []string {
	t.Helper()
	out := []string{}
	for _, row := range data["posts"].([]map[string]any) {
		out = append(out, row["slug"].(string))
	}
	return out
}

func TestSearchMatchesTitleOrAbstractInAnyCase(t *testing.T) {
	renderer, router := searchRouter(t)
	want := []string{"version-one", "beta-release", "logo-wall", "alpha-launch"}

	for _, q := range []string{"alpha", "ALPHA", "%20Alpha%20%20"} {
		rec := get(t, router, "/blog/?q="+q)
		if rec.Code != http.StatusOK {
			t.Fatalf("q=%s: expected 200, got %d", q, rec.Code)
		}
		call := renderer.Last(t)
		if diff := cmp.Diff(want, slugs(t, call.Data)); diff != "" {
			t.Fatalf("q=%s: results mismatch (-want +got):\n%s", q, diff)
		}
		if call.Data[ContextKey] == "" {
			t.Fatalf("q=%s: expected search_query", q)
		}
	}
	if got := renderer.Last(t).Data[ContextKey]; got != "Alpha" {
		t.Fatalf("expected trimmed term, got %q", got)
	}
}

func TestBlankSearchListsEverything(t *testing.T) {
	renderer, router := searchRouter(t)

	for _, target := range []string{"/blog/", "/blog/?q=", "/blog/?q=%20%20%20"} {
		get(t, router, target)
		call := renderer.Last(t)
		if call.Data[ContextKey] != "" {
			t.Fatalf("%s: expected empty search_query, got %q", target, call.Data[ContextKey])
		}
		page := call.Data["page"].(map[string]any)
		if page["count"] != 12 || len(slugs(t, call.Data)) != 10 {
			t.Fatalf("%s: expected unfiltered first page, got %v", target, page)
		}
	}
}

func TestSearchWithoutMatches(t *testing.T) {
	renderer, router := searchRouter(t)

	if rec := get(t, router, "/blog/?q=zzz"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	call := renderer.Last(t)
	if len(slugs(t, call.Data)) != 0 || call.Data[ContextKey] != "zzz" {
		t.Fatalf("unexpected data %v", call.Data)
	}
}

func TestSearchKeepsPagination(t *testing.T) {
	renderer, router := searchRouter(t)

	if rec := get(t, router, "/blog/?q=alpha&page=2"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 past the last search page, got %d", rec.Code)
	}

	get(t, router, "/blog/?q=e&page=2")
	call := renderer.Last(t)
	if call.Data["request_query"] != "q=e&page=2" {
		t.Fatalf("unexpected request_query %v", call.Data["request_query"])
	}
	if call.Data["page"].(map[string]any)["number"] != 2 {
		t.Fatalf("expected page 2, got %v", call.Data["page"])
	}
}

func TestCustomSearchParam(t *testing.T) {
	renderer, router := searchRouter(t, WithSearchParam("search"))

	get(t, router, "/blog/?search=coffee&q=alpha")
	call := renderer.Last(t)
	if diff := cmp.Diff([]string{"winter-meetup"}, slugs(t, call.Data)); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestRoutesOverrideOnlyLatest(t *testing.T) {
	renderer := &testsupport.RecordingRenderer{}
	app, err := stories.New(testsupport.SampleStore(t), renderer, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	vendor := app.Routes()
	table := Routes(app)

	if diff := cmp.Diff(vendor.Names(), table.Names()); diff != "" {
		t.Fatalf("route names mismatch (-want +got):\n%s", diff)
	}
	latest, _ := table.Lookup(stories.RouteLatest)
	vendorLatest, _ := vendor.Lookup(stories.RouteLatest)
	if latest.Pattern != vendorLatest.Pattern || latest.Handler == vendorLatest.Handler {
		t.Fatalf("expected posts-latest replaced at the same path")
	}
	for _, name := range []string{stories.RouteCategory, stories.RouteArchive, stories.RouteDetail} {
		got, _ := table.Lookup(name)
		want, _ := vendor.Lookup(name)
		if got.Pattern != want.Pattern || got.Handler != want.Handler {
			t.Fatalf("%s: expected vendor route unchanged", name)
		}
	}

	router, err := table.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	get(t, router, "/blog/category/news/?q=alpha")
	if _, ok := renderer.Last(t).Data[ContextKey]; ok {
		t.Fatalf("category listing should not be searchable")
	}
}
