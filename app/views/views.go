// Package views holds the HTML templates and static assets compiled into
// the binary.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed layout.html partials.html public/*.html admin/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Parse builds one template set per page, keyed "public/home",
// "admin/projects" and so on. Admin pages use the admin shell except the
// login form, which uses the public layout.
func Parse(funcs template.FuncMap) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, dir := range []string{"public", "admin"} {
		entries, err := fs.ReadDir(templateFiles, dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || e.Name() == "layout.html" || !strings.HasSuffix(e.Name(), ".html") {
				continue
			}
			name := dir + "/" + strings.TrimSuffix(e.Name(), ".html")
			layout := "layout.html"
			if dir == "admin" && name != "admin/login" {
				layout = "admin/layout.html"
			}
			t, err := template.New(path.Base(layout)).Funcs(funcs).ParseFS(templateFiles, layout, "partials.html", dir+"/"+e.Name())
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
			pages[name] = t
		}
	}
	return pages, nil
}

// Static serves the embedded stylesheet and scripts.
func Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
