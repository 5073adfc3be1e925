package cmstheme

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

// StylesheetName is the theme stylesheet under StaticFS.
const StylesheetName = "css/cmstheme.css"

// TemplatesFS exposes the theme templates (base layout, blog list, detail
// and includes) rooted at the templates directory.
func TemplatesFS() fs.FS {
	return subFS(embeddedTemplates, "templates")
}

// StaticFS exposes the theme's static files so Go applications can serve
// them without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(cmstheme.StaticFS()),
//	  ),
//	)
func StaticFS() fs.FS {
	return subFS(embeddedStatic, "static")
}

func subFS(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return fsys
	}
	return sub
}
