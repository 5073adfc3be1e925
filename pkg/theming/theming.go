// Package theming selects a go-theme manifest and variant and turns it into
// the token, CSS variable and asset values the templates read from "theme".
package theming

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownTheme   = errors.New("theming: unknown theme")
	ErrUnknownVariant = errors.New("theming: unknown variant")
)

type manifestRegistry interface {
	Register(*theme.Manifest) error
}

// Selector resolves theme selections from registered manifests.
type Selector struct {
	mu             sync.RWMutex
	registry       manifestRegistry
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector returns an empty selector. Blank names passed to Select fall
// back to defaultTheme and defaultVariant.
func NewSelector(defaultTheme, defaultVariant string) *Selector {
	return &Selector{
		registry:       theme.NewRegistry(),
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
}

// Register validates m through the go-theme registry and makes it
// selectable. The first registered manifest becomes the default theme when
// none was configured.
func (s *Selector) Register(m *theme.Manifest) error {
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("theming: manifest name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.registry.Register(m); err != nil {
		return fmt.Errorf("theming: register %s: %w", m.Name, err)
	}
	s.manifests[m.Name] = m
	if s.defaultTheme == "" {
		s.defaultTheme = m.Name
	}
	return nil
}

// Select implements theme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name = strings.TrimSpace(name); name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant = strings.TrimSpace(variant); variant == "" {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig derives the renderer view of a selection: variant tokens,
// templates and asset files override the manifest's, every token becomes a
// "--name" CSS variable, and asset keys resolve to URLs under the asset
// prefix.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	tokens := merge(m.Tokens, nil)
	partials := merge(m.Templates, nil)
	files := merge(m.Assets.Files, nil)
	prefix := m.Assets.Prefix
	if v, ok := m.Variants[sel.Variant]; ok {
		tokens = merge(tokens, v.Tokens)
		partials = merge(partials, v.Templates)
		files = merge(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// TemplateContext is the "theme" template value for cfg. Stylesheets are
// the URLs of asset keys named "stylesheet" or ending in ".stylesheet",
// sorted by key.
func TemplateContext(cfg *theme.RendererConfig, assetKeys []string) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	var keys []string
	for _, key := range assetKeys {
		if key == "stylesheet" || strings.HasSuffix(key, ".stylesheet") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	stylesheets := []string{}
	for _, key := range keys {
		if cfg.AssetURL == nil {
			break
		}
		if href := cfg.AssetURL(key); href != "" {
			stylesheets = append(stylesheets, href)
		}
	}
	return map[string]any{
		"name":        cfg.Theme,
		"variant":     cfg.Variant,
		"tokens":      merge(cfg.Tokens, nil),
		"css_vars":    merge(cfg.CSSVars, nil),
		"partials":    merge(cfg.Partials, nil),
		"stylesheets": stylesheets,
	}
}

// AssetKeys lists the asset keys of a selection, variant included.
func AssetKeys(sel *theme.Selection) []string {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	files := merge(sel.Manifest.Assets.Files, nil)
	if v, ok := sel.Manifest.Variants[sel.Variant]; ok {
		files = merge(files, v.Assets.Files)
	}
	keys := make([]string, 0, len(files))
	for key := range files {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ContextHook returns a template context hook publishing the selected
// theme under "theme". The variant may be switched per request with the
// variantParam query parameter; unknown variants fall back to the default.
func ContextHook(selector theme.ThemeSelector, name, variant, variantParam string) func(*http.Request, map[string]any) {
	return func(r *http.Request, data map[string]any) {
		requested := variant
		if variantParam != "" {
			if v := strings.TrimSpace(r.URL.Query().Get(variantParam)); v != "" {
				requested = v
			}
		}
		sel, err := selector.Select(name, requested)
		if err != nil && requested != variant {
			sel, err = selector.Select(name, variant)
		}
		if err != nil {
			return
		}
		data["theme"] = TemplateContext(RendererConfig(sel), AssetKeys(sel))
	}
}

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

// LoadManifest decodes a YAML theme manifest.
func LoadManifest(data []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("theming: decode manifest: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, fmt.Errorf("theming: manifest name required")
	}
	m := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Templates,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, v := range file.Variants {
			m.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return m, nil
}

func merge(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
