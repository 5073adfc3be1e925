package theming

import (
	"errors"
	"net/http/httptest"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func acme() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "radius": "4px"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{Files: map[string]string{"print.stylesheet": "print.css"}},
			},
		},
	}
}

func TestSelectAndDeriveRendererConfig(t *testing.T) {
	selector := NewSelector("", "")
	if err := selector.Register(acme()); err != nil {
		t.Fatalf("register: %v", err)
	}

	sel, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := RendererConfig(sel)

	if diff := cmp.Diff(map[string]string{"--brand": "#654321", "--radius": "4px"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected asset url %q", got)
	}

	ctx := TemplateContext(cfg, AssetKeys(sel))
	want := []string{"/assets/themes/acme/print.css", "/assets/themes/acme/theme.css"}
	if diff := cmp.Diff(want, ctx["stylesheets"]); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectErrors(t *testing.T) {
	selector := NewSelector("acme", "")
	if err := selector.Register(acme()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := selector.Select("missing", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select("acme", "sepia"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestContextHookVariantParameter(t *testing.T) {
	selector := NewSelector("acme", "")
	if err := selector.Register(acme()); err != nil {
		t.Fatalf("register: %v", err)
	}
	hook := ContextHook(selector, "", "", "variant")

	data := map[string]any{}
	hook(httptest.NewRequest("GET", "/blog/?variant=dark", nil), data)
	if data["theme"].(map[string]any)["variant"] != "dark" {
		t.Fatalf("expected dark variant, got %v", data["theme"])
	}

	data = map[string]any{}
	hook(httptest.NewRequest("GET", "/blog/?variant=sepia", nil), data)
	if data["theme"].(map[string]any)["variant"] != "" {
		t.Fatalf("expected fallback to default variant, got %v", data["theme"])
	}
}

func TestDefaultManifest(t *testing.T) {
	m, err := DefaultManifest()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	if m.Name != "cmstheme" || m.Assets.Files["stylesheet"] != "css/cmstheme.css" {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if _, ok := m.Variants["dark"]; !ok {
		t.Fatalf("expected dark variant")
	}
}
