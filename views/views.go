// Package views renders the embedded HTML templates through fiber's Views
// interface. Every page file is parsed together with the shared _layout
// partials into its own template set.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var templateFiles embed.FS

type Engine struct {
	templates map[string]*template.Template
}

func New() *Engine {
	return &Engine{}
}

// Load parses every non-partial template. Fiber calls it once at startup.
func (e *Engine) Load() error {
	e.templates = make(map[string]*template.Template)

	entries, err := fs.ReadDir(templateFiles, "templates")
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".html") {
			continue
		}

		t, err := template.ParseFS(templateFiles, "templates/_layout.html", "templates/"+name)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}

		e.templates[strings.TrimSuffix(name, ".html")] = t
	}

	return nil
}

// Render executes the named page. Layout overrides are not used; every page
// pulls the shared partials itself.
func (e *Engine) Render(w io.Writer, name string, bind interface{}, layouts ...string) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, name+".html", bind)
}
