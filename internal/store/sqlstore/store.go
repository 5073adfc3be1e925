// Package sqlstore implements blog.Store on database/sql. Driver packages
// (sqlite, postgres) open the connection and pick a Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cmstheme/pkg/blog"
)

var _ blog.Store = (*Store)(nil)

// Store is a blog.Store backed by a SQL database.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps db. Call Migrate before first use.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Migrate creates the tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: migrate: %w", s.dialect.Name, err)
		}
	}
	return nil
}

// ListPosts returns one window of posts, newest first.
func (s *Store) ListPosts(ctx context.Context, q blog.PostQuery) (blog.PostPage, error) {
	where, args := buildPostFilter(q)

	var total int
	countQuery := s.dialect.Rebind("SELECT COUNT(*) FROM posts" + where)
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return blog.PostPage{}, fmt.Errorf("%s: count posts: %w", s.dialect.Name, err)
	}

	query := "SELECT id, slug, title, abstract, body, published_at FROM posts" + where +
		" ORDER BY published_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, max(q.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return blog.PostPage{}, fmt.Errorf("%s: list posts: %w", s.dialect.Name, err)
	}
	defer func() { _ = rows.Close() }()

	var posts []blog.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return blog.PostPage{}, fmt.Errorf("%s: scan post: %w", s.dialect.Name, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return blog.PostPage{}, fmt.Errorf("%s: iterate posts: %w", s.dialect.Name, err)
	}
	if err := s.attachCategories(ctx, posts); err != nil {
		return blog.PostPage{}, err
	}
	return blog.PostPage{Posts: posts, Total: total}, nil
}

// GetPost loads a post by slug.
func (s *Store) GetPost(ctx context.Context, slug string) (blog.Post, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.Rebind(
		"SELECT id, slug, title, abstract, body, published_at FROM posts WHERE slug = ?"), slug)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return blog.Post{}, fmt.Errorf("post %q: %w", slug, blog.ErrNotFound)
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("%s: get post: %w", s.dialect.Name, err)
	}
	posts := []blog.Post{post}
	if err := s.attachCategories(ctx, posts); err != nil {
		return blog.Post{}, err
	}
	return posts[0], nil
}

// ListCategories returns every category with its translated names.
func (s *Store) ListCategories(ctx context.Context) ([]blog.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, slug, priority FROM categories ORDER BY priority, slug")
	if err != nil {
		return nil, fmt.Errorf("%s: list categories: %w", s.dialect.Name, err)
	}
	defer func() { _ = rows.Close() }()

	var categories []blog.Category
	index := map[int64]int{}
	for rows.Next() {
		var c blog.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Priority); err != nil {
			return nil, fmt.Errorf("%s: scan category: %w", s.dialect.Name, err)
		}
		c.Names = map[string]string{}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate categories: %w", s.dialect.Name, err)
	}

	names, err := s.db.QueryContext(ctx, "SELECT category_id, lang, name FROM category_names")
	if err != nil {
		return nil, fmt.Errorf("%s: list category names: %w", s.dialect.Name, err)
	}
	defer func() { _ = names.Close() }()
	for names.Next() {
		var (
			id         int64
			lang, name string
		)
		if err := names.Scan(&id, &lang, &name); err != nil {
			return nil, fmt.Errorf("%s: scan category name: %w", s.dialect.Name, err)
		}
		if i, ok := index[id]; ok {
			categories[i].Names[lang] = name
		}
	}
	if err := names.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate category names: %w", s.dialect.Name, err)
	}
	return categories, nil
}

// GetCategory loads a category by slug.
func (s *Store) GetCategory(ctx context.Context, slug string) (blog.Category, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return blog.Category{}, err
	}
	for _, c := range categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return blog.Category{}, fmt.Errorf("category %q: %w", slug, blog.ErrNotFound)
}

// CreatePost inserts p and links it to its categories by slug.
func (s *Store) CreatePost(ctx context.Context, p blog.Post) (blog.Post, error) {
	if strings.TrimSpace(p.Slug) == "" {
		return blog.Post{}, fmt.Errorf("%s: create post: slug is required", s.dialect.Name)
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = time.Now()
	}
	p.PublishedAt = p.PublishedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return blog.Post{}, fmt.Errorf("%s: begin tx: %w", s.dialect.Name, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, s.dialect.Rebind(`INSERT INTO posts
		(slug, title, abstract, body, title_folded, abstract_folded, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		p.Slug, p.Title, p.Abstract, p.Body, fold(p.Title), fold(p.Abstract), p.PublishedAt.UnixNano(),
	).Scan(&p.ID)
	if err != nil {
		return blog.Post{}, fmt.Errorf("%s: insert post %q: %w", s.dialect.Name, p.Slug, err)
	}

	for _, slug := range p.Categories {
		var categoryID int64
		err := tx.QueryRowContext(ctx, s.dialect.Rebind("SELECT id FROM categories WHERE slug = ?"), slug).Scan(&categoryID)
		if errors.Is(err, sql.ErrNoRows) {
			return blog.Post{}, fmt.Errorf("category %q: %w", slug, blog.ErrNotFound)
		}
		if err != nil {
			return blog.Post{}, fmt.Errorf("%s: lookup category: %w", s.dialect.Name, err)
		}
		if _, err := tx.ExecContext(ctx, s.dialect.Rebind(
			"INSERT INTO post_categories (post_id, category_id) VALUES (?, ?)"), p.ID, categoryID); err != nil {
			return blog.Post{}, fmt.Errorf("%s: link category: %w", s.dialect.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return blog.Post{}, fmt.Errorf("%s: commit: %w", s.dialect.Name, err)
	}
	committed = true
	return p, nil
}

// CreateCategory inserts c with its translated names.
func (s *Store) CreateCategory(ctx context.Context, c blog.Category) (blog.Category, error) {
	if strings.TrimSpace(c.Slug) == "" {
		return blog.Category{}, fmt.Errorf("%s: create category: slug is required", s.dialect.Name)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return blog.Category{}, fmt.Errorf("%s: begin tx: %w", s.dialect.Name, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, s.dialect.Rebind(
		"INSERT INTO categories (slug, priority) VALUES (?, ?) RETURNING id"), c.Slug, c.Priority).Scan(&c.ID)
	if err != nil {
		return blog.Category{}, fmt.Errorf("%s: insert category %q: %w", s.dialect.Name, c.Slug, err)
	}
	for lang, name := range c.Names {
		if _, err := tx.ExecContext(ctx, s.dialect.Rebind(
			"INSERT INTO category_names (category_id, lang, name) VALUES (?, ?, ?)"), c.ID, lang, name); err != nil {
			return blog.Category{}, fmt.Errorf("%s: insert category name: %w", s.dialect.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return blog.Category{}, fmt.Errorf("%s: commit: %w", s.dialect.Name, err)
	}
	committed = true
	return c, nil
}

func (s *Store) attachCategories(ctx context.Context, posts []blog.Post) error {
	if len(posts) == 0 {
		return nil
	}
	index := make(map[int64]int, len(posts))
	args := make([]any, len(posts))
	for i, p := range posts {
		index[p.ID] = i
		args[i] = p.ID
	}
	query := "SELECT pc.post_id, c.slug FROM post_categories pc JOIN categories c ON c.id = pc.category_id" +
		" WHERE pc.post_id IN (" + placeholders(len(posts)) + ") ORDER BY c.priority, c.slug"
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%s: list post categories: %w", s.dialect.Name, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			postID int64
			slug   string
		)
		if err := rows.Scan(&postID, &slug); err != nil {
			return fmt.Errorf("%s: scan post category: %w", s.dialect.Name, err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Categories = append(posts[i].Categories, slug)
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (blog.Post, error) {
	var (
		p         blog.Post
		published int64
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Abstract, &p.Body, &published); err != nil {
		return blog.Post{}, err
	}
	p.PublishedAt = time.Unix(0, published).UTC()
	return p, nil
}

// buildPostFilter returns the WHERE clause (with leading space) and its args.
func buildPostFilter(q blog.PostQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if term := blog.NormalizeSearch(q.Search); term != "" {
		pattern := "%" + escapeLike(fold(term)) + "%"
		clauses = append(clauses, `(title_folded LIKE ? ESCAPE '\' OR abstract_folded LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if q.Category != "" {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM post_categories pc JOIN categories c ON c.id = pc.category_id"+
			" WHERE pc.post_id = posts.id AND c.slug = ?)")
		args = append(args, q.Category)
	}
	if q.Year > 0 {
		start := time.Date(q.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		clauses = append(clauses, "published_at >= ? AND published_at < ?")
		args = append(args, start.UnixNano(), start.AddDate(1, 0, 0).UnixNano())
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func fold(s string) string {
	return strings.ToLower(s)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
