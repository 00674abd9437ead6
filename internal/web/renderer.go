package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
)

// Page names understood by Render.
const (
	PageIndex = "index"
	PageTasks = "tasks"
)

const layoutTemplate = "layout"

// IndexData is the view data of the index page.
type IndexData struct {
	Name string
}

// TasksData is the view data of the tasks page.
type TasksData struct {
	Tasks []domain.Task
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	return NewRendererFS(templateFS, "templates")
}

// NewRendererFS parses the layout and every page found in dir of fsys.
func NewRendererFS(fsys fs.FS, dir string) (*Renderer, error) {
	layout, err := template.ParseFS(fsys, dir+"/"+layoutTemplate+".html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	names, err := fs.Glob(fsys, dir+"/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range names {
		name := pageName(file)
		if name == layoutTemplate {
			continue
		}

		base, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}
		page, err := base.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = page
	}

	return r, nil
}

// Render writes the named page to w. The page is executed into a buffer
// first, so nothing is written when rendering fails.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

func pageName(file string) string {
	return strings.TrimSuffix(path.Base(file), ".html")
}
