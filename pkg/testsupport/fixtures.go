package testsupport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-cmstheme/internal/seed"
	"github.com/goliatone/go-cmstheme/internal/store/sqlite"
	"github.com/goliatone/go-cmstheme/internal/store/sqlstore"
	"github.com/goliatone/go-cmstheme/pkg/blog"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// NewStore opens a migrated in-memory SQLite store closed at test cleanup.
func NewStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	store, err := sqlite.Open(Context(), sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SampleStore returns a store loaded with the bundled sample posts.
func SampleStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	fixture, err := seed.Sample()
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	store := NewStore(t)
	if _, err := seed.Apply(Context(), store, fixture); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

// Posts creates n posts titled "Post 1".."Post n", one hour apart starting at
// start, so "Post n" is the newest.
func Posts(t *testing.T, store blog.Store, n int, start time.Time) {
	t.Helper()

	for i := 1; i <= n; i++ {
		post := blog.Post{
			Slug:        fmt.Sprintf("post-%d", i),
			Title:       fmt.Sprintf("Post %d", i),
			Abstract:    fmt.Sprintf("Abstract %d", i),
			PublishedAt: start.Add(time.Duration(i) * time.Hour),
		}
		if _, err := store.CreatePost(Context(), post); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}
}

// Slugs lists the slugs of page in order.
func Slugs(page blog.PostPage) []string {
	out := []string{}
	for _, p := range page.Posts {
		out = append(out, p.Slug)
	}
	return out
}

// RecordingRenderer satisfies the template renderer contract by recording
// the template name and context of each call and rendering nothing but the
// template name. View tests use it to assert on context data.
type RecordingRenderer struct {
	mu    sync.Mutex
	Calls []RenderCall
	Err   error
}

// RenderCall is one recorded render.
type RenderCall struct {
	Name string
	Data map[string]any
}

func (r *RecordingRenderer) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, RenderCall{Name: name, Data: data})
	if r.Err != nil {
		return "", r.Err
	}
	for _, w := range out {
		if _, err := io.WriteString(w, name); err != nil {
			return "", err
		}
	}
	return name, nil
}

// Last returns the most recent render call.
func (r *RecordingRenderer) Last(t *testing.T) RenderCall {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Calls) == 0 {
		t.Fatalf("expected a render call")
	}
	return r.Calls[len(r.Calls)-1]
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
