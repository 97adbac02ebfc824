package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Page names understood by Render.
const (
	PageHome         = "home"
	PageShop         = "shop"
	PageProduct      = "product"
	PageLoading      = "loading"
	PageConfirmation = "confirmation"
	PageAbout        = "about"
	PageContact      = "contact"
	PageNotFound     = "notfound"
)

var pageNames = []string{
	PageHome, PageShop, PageProduct, PageLoading, PageConfirmation, PageAbout, PageContact, PageNotFound,
}

// Store is the shop-wide data every page shows.
type Store struct {
	Name           string
	CurrencySymbol string
}

// Page wraps a view model with the layout data.
type Page struct {
	Store      Store
	Title      string
	Path       string
	Year       int
	Categories []string
	Data       any
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	store  Store
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses every page once at startup.
func NewRenderer(store Store, logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return store.CurrencySymbol + d.String() },
		"dict":  dict,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.tmpl").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.tmpl",
			"templates/partials.tmpl",
			"templates/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{store: store, pages: pages, logger: logger}, nil
}

// Render writes page with status. The page is rendered into a buffer first so
// a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page, title string, data any) {
	t, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", "page", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	view := Page{
		Store:      r.store,
		Title:      title,
		Path:       req.URL.Path,
		Year:       time.Now().Year(),
		Categories: models.Categories,
		Data:       data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view); err != nil {
		r.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("failed to write page", "page", page, "error", err)
	}
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict needs key/value pairs, got %d args", len(pairs))
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
}

// Assets serves the embedded static files.
func Assets() http.Handler {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
