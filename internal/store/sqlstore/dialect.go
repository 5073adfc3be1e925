package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures the few differences between the supported databases.
type Dialect struct {
	Name string
	// Numbered rewrites ? placeholders as $1, $2, ...
	Numbered bool
	// Schema is applied in order on Migrate.
	Schema []string
}

// Rebind rewrites ? placeholders for the dialect. Question marks inside
// single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for _, r := range query {
		switch {
		case r == '\'':
			quoted = !quoted
			b.WriteRune(r)
		case r == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SQLite is the dialect for modernc.org/sqlite.
var SQLite = Dialect{
	Name: "sqlite",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			title_folded TEXT NOT NULL,
			abstract_folded TEXT NOT NULL,
			published_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS posts_published_idx ON posts (published_at DESC, id DESC)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			priority INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS category_names (
			category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			lang TEXT NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (category_id, lang)
		)`,
		`CREATE TABLE IF NOT EXISTS post_categories (
			post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			PRIMARY KEY (post_id, category_id)
		)`,
	},
}

// Postgres is the dialect for github.com/jackc/pgx/v5/stdlib.
var Postgres = Dialect{
	Name:     "postgres",
	Numbered: true,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			title_folded TEXT NOT NULL,
			abstract_folded TEXT NOT NULL,
			published_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS posts_published_idx ON posts (published_at DESC, id DESC)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			priority INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS category_names (
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			lang TEXT NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (category_id, lang)
		)`,
		`CREATE TABLE IF NOT EXISTS post_categories (
			post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			PRIMARY KEY (post_id, category_id)
		)`,
	},
}
