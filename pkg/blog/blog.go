// Package blog holds the post and category model shared by the listing views,
// template helpers and storage backends.
package blog

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by stores when a post or category does not exist.
var ErrNotFound = errors.New("blog: not found")

// Post is a published article.
type Post struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug" yaml:"slug"`
	Title       string    `json:"title" yaml:"title"`
	Abstract    string    `json:"abstract" yaml:"abstract"`
	Body        string    `json:"body,omitempty" yaml:"body"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
	Categories  []string  `json:"categories,omitempty" yaml:"categories"`
}

// Category groups posts. Names are keyed by language code.
type Category struct {
	ID       int64             `json:"id"`
	Slug     string            `json:"slug" yaml:"slug"`
	Priority int               `json:"priority" yaml:"priority"`
	Names    map[string]string `json:"names" yaml:"names"`
}

// Name returns the category name in lang, then in fallback, then the slug.
func (c Category) Name(lang, fallback string) string {
	if name := strings.TrimSpace(c.Names[lang]); name != "" {
		return name
	}
	if name := strings.TrimSpace(c.Names[fallback]); name != "" {
		return name
	}
	return c.Slug
}

// PostQuery filters and windows a post listing.
type PostQuery struct {
	// Search matches title or abstract, case-insensitively. Blank disables
	// the filter.
	Search   string
	Category string
	Year     int
	Limit    int
	Offset   int
}

// PostPage is one window of a listing plus the unwindowed total.
type PostPage struct {
	Posts []Post
	Total int
}

// Store is the persistence contract for the blog. Listings are ordered newest
// published first, then by id descending.
type Store interface {
	ListPosts(ctx context.Context, q PostQuery) (PostPage, error)
	GetPost(ctx context.Context, slug string) (Post, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, slug string) (Category, error)
	CreatePost(ctx context.Context, p Post) (Post, error)
	CreateCategory(ctx context.Context, c Category) (Category, error)
}

// NormalizeSearch trims a raw search term. An empty result means no filter.
func NormalizeSearch(raw string) string {
	return strings.TrimSpace(raw)
}
