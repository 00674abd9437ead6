package api

import (
	"bytes"
	"io/fs"
	"net/http"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/web"
)

// IndexName is the name shown on the index page.
const IndexName = "John Doe"

// PageHandler serves the greeting routes, the static pages and the index view.
type PageHandler struct {
	renderer *web.Renderer
	public   fs.FS
}

// NewPageHandler creates a PageHandler serving static files from public.
func NewPageHandler(renderer *web.Renderer, public fs.FS) *PageHandler {
	return &PageHandler{renderer: renderer, public: public}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, "Hello World")
}

// Hello handles GET /{name}.
func (h *PageHandler) Hello(w http.ResponseWriter, r *http.Request) {
	name := shared.PathParam(r, "name")
	shared.RespondWithText(w, r, http.StatusOK, "Hello, "+name+"!")
}

// About handles GET /about.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, web.AboutPage)
}

// Image handles GET /image.
func (h *PageHandler) Image(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, web.Image)
}

// Index handles GET /index.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.renderer, web.PageIndex, web.IndexData{Name: IndexName})
}

// Health handles GET /health.
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, "OK")
}

func (h *PageHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	if _, err := fs.Stat(h.public, name); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, "Not Found", err)
		return
	}
	http.ServeFileFS(w, r, h.public, name)
}

func render(w http.ResponseWriter, r *http.Request, renderer *web.Renderer, page string, data any) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, page, data); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	shared.RespondWithHTML(w, r, http.StatusOK, buf.Bytes())
}
