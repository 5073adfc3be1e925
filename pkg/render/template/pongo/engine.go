// Package pongo implements template.TemplateRenderer with pongo2, so theme
// templates keep the Django syntax ({% extends %}, {% block %}, filters).
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cmstheme/pkg/render/template"
)

const templateExt = ".html"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	templateFn map[string]any
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk. Disk templates take
// precedence over an fs.FS supplied with WithFS, so a site can shadow
// individual theme templates.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplateFunc registers callables as template globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[name] = fn
		}
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[key] = value
		}
	}
}

// rootLoader resolves every template name against the template root, the way
// Django does, instead of against the directory of the including template.
// "blog/post_list.html" extends "base.html" and includes
// "blog/includes/pagination.html".
type rootLoader struct {
	files fs.FS
}

func (l rootLoader) Abs(_, name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

func (l rootLoader) Get(name string) (io.Reader, error) {
	data, err := fs.ReadFile(l.files, name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Engine is a pongo2 template set. Compiled templates are cached by the set.
type Engine struct {
	set *pongo2.TemplateSet
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		info, err := os.Stat(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pongo: template dir %s is not a directory", cfg.baseDir)
		}
		loaders = append(loaders, rootLoader{files: os.DirFS(cfg.baseDir)})
	}
	if cfg.templates != nil {
		loaders = append(loaders, rootLoader{files: cfg.templates})
	}
	if len(loaders) == 0 {
		return nil, errors.New("pongo: need to provide either base dir or fs.FS")
	}

	engine := &Engine{set: pongo2.NewSet("cmstheme", loaders...)}
	engine.set.Globals = pongo2.Context{}
	engine.set.Globals.Update(pongo2.Context(cfg.globalData))
	for name, fn := range cfg.templateFn {
		if err := engine.RegisterFunc(name, fn); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// RenderTemplate renders the named template file; ".html" is appended when
// missing.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	if !strings.HasSuffix(name, templateExt) {
		name += templateExt
	}

	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("pongo: load template %q: %w", name, err)
	}
	rendered, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", name, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// RegisterFunc exposes fn to every template under name. Function parameters
// should be typed any since template arguments arrive untyped. Register
// functions before the engine starts rendering.
func (e *Engine) RegisterFunc(name string, fn any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("pongo: template func needs a name")
	}
	if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("pongo: template func %q is not a function", name)
	}
	e.set.Globals[name] = fn
	return nil
}
