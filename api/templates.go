package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex       = "index"
	pagePostDetails = "post-details"
	pagePostsList   = "posts-list"
	pageContacts    = "contacts"
	pageError       = "error"
)

// pages holds one parsed template set per page, each combined with the shared layout.
type pages map[string]*template.Template

func loadPages() (pages, error) {
	names := []string{pageIndex, pagePostDetails, pagePostsList, pageContacts, pageError}
	p := make(pages, len(names))
	for _, name := range names {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p[name] = tmpl
	}
	return p, nil
}

// render executes the page into a buffer so a failing template never leaves a half-written body.
func (p pages) render(name string, data any) ([]byte, error) {
	tmpl, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
