// Package seed loads sample categories and posts into a blog store.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cmstheme/pkg/blog"
)

//go:embed sample.yaml
var sample []byte

// Fixture is a set of categories and posts. Posts reference categories by
// slug, so categories are written first.
type Fixture struct {
	Categories []blog.Category `yaml:"categories"`
	Posts      []blog.Post     `yaml:"posts"`
}

// Result counts the records written by Apply.
type Result struct {
	Categories int
	Posts      int
}

// Sample returns the bundled fixture.
func Sample() (Fixture, error) {
	return Parse(sample)
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("seed: parse: %w", err)
	}
	return f, nil
}

// Apply writes every category then every post of f.
func Apply(ctx context.Context, store blog.Store, f Fixture) (Result, error) {
	var res Result
	for _, c := range f.Categories {
		if _, err := store.CreateCategory(ctx, c); err != nil {
			return res, fmt.Errorf("seed: category %s: %w", c.Slug, err)
		}
		res.Categories++
	}
	for _, p := range f.Posts {
		if _, err := store.CreatePost(ctx, p); err != nil {
			return res, fmt.Errorf("seed: post %s: %w", p.Slug, err)
		}
		res.Posts++
	}
	return res, nil
}

// ApplyIfEmpty applies f only when the store holds no posts and no
// categories. It reports whether anything was written.
func ApplyIfEmpty(ctx context.Context, store blog.Store, f Fixture) (Result, bool, error) {
	page, err := store.ListPosts(ctx, blog.PostQuery{Limit: 1})
	if err != nil {
		return Result{}, false, fmt.Errorf("seed: probe posts: %w", err)
	}
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return Result{}, false, fmt.Errorf("seed: probe categories: %w", err)
	}
	if page.Total > 0 || len(categories) > 0 {
		return Result{}, false, nil
	}
	res, err := Apply(ctx, store, f)
	return res, err == nil, err
}
