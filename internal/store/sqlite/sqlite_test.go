package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmstheme/internal/store/sqlstore"
	"github.com/goliatone/go-cmstheme/pkg/blog"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := Open(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedSearchFixture(t *testing.T, store *sqlstore.Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	if _, err := store.CreateCategory(ctx, blog.Category{Slug: "news", Priority: 1, Names: map[string]string{"en": "News", "de": "Neuigkeiten"}}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	posts := []blog.Post{
		{Slug: "alpha-news", Title: "Alpha News", Abstract: "x", PublishedAt: base, Categories: []string{"news"}},
		{Slug: "other", Title: "Other", Abstract: "contains alpha", PublishedAt: base.Add(time.Hour)},
		{Slug: "last-year", Title: "Beta", Abstract: "y", PublishedAt: base.AddDate(-1, 0, 0)},
	}
	for _, p := range posts {
		if _, err := store.CreatePost(ctx, p); err != nil {
			t.Fatalf("create post %s: %v", p.Slug, err)
		}
	}
}

func slugs(page blog.PostPage) []string {
	out := []string{}
	for _, p := range page.Posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestListPostsSearch(t *testing.T) {
	store := openStore(t)
	seedSearchFixture(t, store)
	ctx := context.Background()

	cases := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "lowercase", search: "alpha", want: []string{"other", "alpha-news"}},
		{name: "uppercase", search: "ALPHA", want: []string{"other", "alpha-news"}},
		{name: "padded", search: "  Alpha ", want: []string{"other", "alpha-news"}},
		{name: "empty", search: "", want: []string{"other", "alpha-news", "last-year"}},
		{name: "whitespace", search: "   ", want: []string{"other", "alpha-news", "last-year"}},
		{name: "no match", search: "zzz", want: []string{}},
		{name: "wildcards are literal", search: "%", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := store.ListPosts(ctx, blog.PostQuery{Search: tc.search})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff(tc.want, slugs(page)); diff != "" {
				t.Fatalf("slugs mismatch (-want +got):\n%s", diff)
			}
			if page.Total != len(tc.want) {
				t.Fatalf("expected total %d, got %d", len(tc.want), page.Total)
			}
		})
	}
}

func TestListPostsWindowAndFilters(t *testing.T) {
	store := openStore(t)
	seedSearchFixture(t, store)
	ctx := context.Background()

	page, err := store.ListPosts(ctx, blog.PostQuery{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha-news"}, slugs(page)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
	if diff := cmp.Diff([]string{"news"}, page.Posts[0].Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	page, err = store.ListPosts(ctx, blog.PostQuery{Category: "news"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha-news"}, slugs(page)); diff != "" {
		t.Fatalf("category filter mismatch (-want +got):\n%s", diff)
	}

	page, err = store.ListPosts(ctx, blog.PostQuery{Year: 2023})
	if err != nil {
		t.Fatalf("list by year: %v", err)
	}
	if diff := cmp.Diff([]string{"last-year"}, slugs(page)); diff != "" {
		t.Fatalf("year filter mismatch (-want +got):\n%s", diff)
	}
}

func TestGetPostAndCategory(t *testing.T) {
	store := openStore(t)
	seedSearchFixture(t, store)
	ctx := context.Background()

	post, err := store.GetPost(ctx, "alpha-news")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if post.Title != "Alpha News" || !post.PublishedAt.Equal(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected post %+v", post)
	}
	if _, err := store.GetPost(ctx, "missing"); !errors.Is(err, blog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	category, err := store.GetCategory(ctx, "news")
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	want := map[string]string{"en": "News", "de": "Neuigkeiten"}
	if diff := cmp.Diff(want, category.Names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestCreatePostUnknownCategoryRollsBack(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, err := store.CreatePost(ctx, blog.Post{Slug: "orphan", Title: "Orphan", Categories: []string{"nope"}})
	if !errors.Is(err, blog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	page, err := store.ListPosts(ctx, blog.PostQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("expected rollback, found %d posts", page.Total)
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blog.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.CreateCategory(context.Background(), blog.Category{Slug: "tips"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}
