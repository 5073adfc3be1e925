// Package routes keeps named URL routes as data so a theme can re-expose a
// vendor's routes and swap individual entries before mounting them.
package routes

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

var (
	// ErrUnknownRoute reports a reverse lookup for a name not in the table.
	ErrUnknownRoute = errors.New("routes: unknown route")
	// ErrMissingParam reports a reverse lookup without a required parameter.
	ErrMissingParam = errors.New("routes: missing parameter")
	// ErrParamMismatch reports a parameter value rejected by the route pattern.
	ErrParamMismatch = errors.New("routes: parameter does not match pattern")
)

// Route is a named, mountable URL pattern. Patterns use chi syntax:
// {name} or {name:regexp}.
type Route struct {
	Name    string
	Pattern string
	Methods []string
	Handler http.Handler
}

func (r Route) methods() []string {
	if len(r.Methods) == 0 {
		return []string{http.MethodGet, http.MethodHead}
	}
	return r.Methods
}

// Table is an ordered route list. The first route with a given name wins
// reverse lookups.
type Table []Route

// Lookup returns the route named name.
func (t Table) Lookup(name string) (Route, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Names lists route names in table order.
func (t Table) Names() []string {
	out := make([]string, 0, len(t))
	for _, r := range t {
		out = append(out, r.Name)
	}
	return out
}

// Without returns a copy of t without the named routes.
func (t Table) Without(names ...string) Table {
	skip := make(map[string]struct{}, len(names))
	for _, name := range names {
		skip[name] = struct{}{}
	}
	out := make(Table, 0, len(t))
	for _, r := range t {
		if _, ok := skip[r.Name]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// WithPrefix returns a copy of t with every pattern mounted under base.
func (t Table) WithPrefix(base string) Table {
	out := make(Table, len(t))
	for i, r := range t {
		r.Pattern = MountPath(base, r.Pattern)
		out[i] = r
	}
	return out
}

// Override places route ahead of every other entry of t and drops the
// entries it replaces by name. The remaining routes keep their order, so a
// replacement takes precedence for both matching and reversing.
func Override(t Table, route Route) Table {
	out := make(Table, 0, len(t)+1)
	out = append(out, route)
	return append(out, t.Without(route.Name)...)
}

// Mux is the subset of chi.Router used to mount a table.
type Mux interface {
	Method(method, pattern string, handler http.Handler)
}

var _ Mux = (chi.Router)(nil)

// Mount registers every route of t on mux. Later routes with a pattern and
// method already taken are skipped.
func (t Table) Mount(mux Mux) error {
	if mux == nil {
		return fmt.Errorf("routes: missing mux")
	}
	seen := map[string]struct{}{}
	for _, r := range t {
		if r.Handler == nil {
			return fmt.Errorf("routes: %s: missing handler", r.Name)
		}
		for _, method := range r.methods() {
			key := method + " " + r.Pattern
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			mux.Method(method, r.Pattern, r.Handler)
		}
	}
	return nil
}

// Router builds a chi router serving t.
func (t Table) Router() (chi.Router, error) {
	r := chi.NewRouter()
	if err := t.Mount(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Reverse builds the path of the named route, substituting params given as
// alternating name/value pairs.
func (t Table) Reverse(name string, pairs ...string) (string, error) {
	route, ok := t.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params[pairs[i]] = pairs[i+1]
	}
	return Expand(route.Pattern, params)
}

// Expand substitutes params into a chi pattern. Values are path-escaped and,
// when the placeholder carries a regexp, must match it entirely.
func Expand(pattern string, params map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] != '{' {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		end := closingBrace(pattern, i)
		if end < 0 {
			return "", fmt.Errorf("routes: unbalanced pattern %q", pattern)
		}
		name, expr, _ := strings.Cut(pattern[i+1:end], ":")
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %q in %q", ErrMissingParam, name, pattern)
		}
		if expr != "" {
			re, err := regexp.Compile("^(?:" + expr + ")$")
			if err != nil {
				return "", fmt.Errorf("routes: %q: %w", pattern, err)
			}
			if !re.MatchString(value) {
				return "", fmt.Errorf("%w: %s=%q", ErrParamMismatch, name, value)
			}
		}
		b.WriteString(url.PathEscape(value))
		i = end + 1
	}
	return b.String(), nil
}

func closingBrace(pattern string, start int) int {
	depth := 0
	for i := start; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MountPath joins basePath and routePath into a rooted pattern.
func MountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
