package site

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"github.com/ziadkadry99/robobook/internal/widget"
)

//go:embed static/style.css
var styleCSS []byte

// RegisterRoutes mounts the homepage, the chapter pages and the static
// assets on the given router.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		renderHTML(w, s.homePage())
	})
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.firstChapterURL(), http.StatusFound)
	})
	r.Get("/docs/*", s.handleChapter)
	r.Get(StylePath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		_, _ = w.Write(styleCSS)
	})
	r.Get(widget.ScriptPath, widget.ScriptHandler)
}

func (s *Site) handleChapter(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")
	slug = strings.TrimSuffix(slug, "/index.html")

	_, idx, err := s.Page(slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	renderHTML(w, s.chapterPage(idx))
}

func renderHTML(w http.ResponseWriter, page g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = page.Render(w)
}
