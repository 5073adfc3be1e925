package cmstheme

import (
	"io/fs"
	"strings"
	"testing"
)

func TestTemplatesFSContainsBlogTemplates(t *testing.T) {
	for _, name := range []string{
		"base.html",
		"blog/post_list.html",
		"blog/post_detail.html",
		"blog/includes/pagination.html",
		"blog/includes/categories.html",
	} {
		if _, err := fs.Stat(TemplatesFS(), name); err != nil {
			t.Fatalf("expected template %s: %v", name, err)
		}
	}
}

func TestStaticFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(StaticFS(), StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".pagination") {
		t.Fatalf("expected stylesheet to style pagination")
	}
}
