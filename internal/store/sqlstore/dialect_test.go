package sqlstore

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmstheme/pkg/blog"
)

func TestRebind(t *testing.T) {
	query := `SELECT * FROM posts WHERE title_folded LIKE ? ESCAPE '\' AND note = '?' AND id IN (?, ?)`

	if got := SQLite.Rebind(query); got != query {
		t.Fatalf("sqlite should keep ? placeholders, got %q", got)
	}
	want := `SELECT * FROM posts WHERE title_folded LIKE $1 ESCAPE '\' AND note = '?' AND id IN ($2, $3)`
	if diff := cmp.Diff(want, Postgres.Rebind(query)); diff != "" {
		t.Fatalf("rebind mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPostFilter(t *testing.T) {
	where, args := buildPostFilter(blog.PostQuery{Search: "  50%_Off\\ "})
	want := ` WHERE (title_folded LIKE ? ESCAPE '\' OR abstract_folded LIKE ? ESCAPE '\')`
	if diff := cmp.Diff(want, where); diff != "" {
		t.Fatalf("where mismatch (-want +got):\n%s", diff)
	}
	pattern := `%50\%\_off\\%`
	if diff := cmp.Diff([]any{pattern, pattern}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}

	if where, args := buildPostFilter(blog.PostQuery{Search: " \t "}); where != "" || args != nil {
		t.Fatalf("blank search must not filter, got %q %v", where, args)
	}
}
