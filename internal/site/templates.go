// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

// pages are the top-level templates; each is parsed with the base layout
// and every partial.
var pages = []string{"index", "about", "list", "detail", "not_found"}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"join": strings.Join,
}

// templateCache maps page name to its parsed template set.
type templateCache map[string]*template.Template

func parseTemplates() (templateCache, *template.Template, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, nil, err
	}

	partials, err := template.New("partials").Funcs(funcs).ParseFS(sub, "partials/*.html")
	if err != nil {
		return nil, nil, fmt.Errorf("parsing partials: %w", err)
	}

	cache := make(templateCache, len(pages))
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(sub, "base.html", "partials/*.html", name+".html")
		if err != nil {
			return nil, nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		cache[name] = t
	}
	return cache, partials, nil
}
