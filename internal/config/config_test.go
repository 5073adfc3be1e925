package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmstheme.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
  read_timeout: 3s
database:
  driver: postgres
  dsn: postgres://cms@localhost/cms
blog:
  per_page: 5
choices:
  spacer_sizes:
    - {value: "0", label: "None"}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != 15*time.Second {
		t.Fatalf("expected default write timeout, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Blog.PerPage != 5 || cfg.Blog.Radius != 1 || cfg.Blog.SearchParam != "q" {
		t.Fatalf("unexpected blog config %+v", cfg.Blog)
	}
	want := model.ChoiceSets{"spacer_sizes": {{Value: "0", Label: "None"}}}
	if diff := cmp.Diff(want, cfg.Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "blog:\n  per_page: 5\n")
	t.Setenv("CMSTHEME_BLOG_PER_PAGE", "20")
	t.Setenv("CMSTHEME_LANGUAGES", "en, fr ,de")
	t.Setenv("CMSTHEME_SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("CMSTHEME_METRICS", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Blog.PerPage != 20 {
		t.Fatalf("expected env per_page, got %d", cfg.Blog.PerPage)
	}
	if diff := cmp.Diff([]string{"en", "fr", "de"}, cfg.I18n.Languages); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	if cfg.Server.ShutdownTimeout != time.Minute || cfg.Server.Metrics {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
}

func TestEnvFileIsLoaded(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(envPath, []byte("CMSTHEME_THEME_VARIANT=dark\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", envPath)
	t.Cleanup(func() { os.Unsetenv("CMSTHEME_THEME_VARIANT") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme.Variant != "dark" {
		t.Fatalf("expected variant from env file, got %q", cfg.Theme.Variant)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: mysql
blog:
  per_page: 0
log:
  format: xml
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"database.driver", "blog.per_page", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}
