// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Page template names
const (
	PageRacks  = "racks.html"
	PageRack   = "rack.html"
	PageDevice = "device.html"
	PageAdd    = "add.html"
	PageDone   = "done.html"
	PageError  = "error.html"
)

//go:embed templates/*.html
var embedded embed.FS

const baseTemplate = "base.html"

// Renderer executes page templates. It is safe for concurrent use once built.
type Renderer struct {
	pages map[string]*template.Template
}

// New builds a renderer from the embedded templates
func New() (*Renderer, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub)
}

// NewFromFS builds a renderer from a directory holding base.html and one
// file per page.
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, page := range []string{PageRacks, PageRack, PageDevice, PageAdd, PageDone, PageError} {
		t, err := template.New(page).Funcs(funcs).ParseFS(fsys, baseTemplate, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// HTML renders page with data and writes it with the given status. Nothing
// is written if the template fails.
func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, page, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return humanize.Time(t)
	},
	"plural": func(n int, singular string) string {
		return english.Plural(n, singular, "")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict needs key/value pairs")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
}
