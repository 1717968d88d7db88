// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render is the page shell. It wraps every page unit in the shared
// layout (navigation bar above, footer below) and supports HTMX partial
// rendering: boosted navigation receives only the content region plus an
// out-of-band nav swap, while a plain GET receives the full document.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/angelofallars/htmx-go"

	"rupinder/internal/content"
	"rupinder/internal/routes"
	"rupinder/internal/theme"
)

//go:embed templates/*.html templates/pages/*.html
var templatesFS embed.FS

// CSRFPlaceholder is written wherever the CSRF token belongs. Rendered pages
// are cacheable across visitors; FillCSRF swaps in the real token per request.
const CSRFPlaceholder = "__csrf_token__"

// ErrUnknownPage is returned when a route names a page unit that has no
// template or no content entry.
var ErrUnknownPage = errors.New("render: unknown page")

// PageData holds everything the layout and page templates read.
type PageData struct {
	Brand       string
	Owner       string
	FooterQuote string
	Path        string        // Request path, which may differ from Route.Path on a miss
	Route       routes.Route  // Route being rendered
	Page        content.Page  // Copy for Route.Page
	Nav         []routes.Link // Navigation bar links
	Footer      []routes.Link // Footer links
	Theme       theme.Theme   // Colour palette
	Year        int           // Current calendar year for the copyright line
	CSRFToken   string        // Hidden form field value
	OOB         bool          // Render nav as an out-of-band swap (partial responses)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the time source used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithDevMode loads the unminified HTMX build.
func WithDevMode(dev bool) Option {
	return func(r *Renderer) { r.devMode = dev }
}

// Renderer executes the page shell for the routes in a table.
type Renderer struct {
	table     *routes.Table
	site      content.Provider
	theme     theme.Theme
	now       func() time.Time
	devMode   bool
	templates map[string]*template.Template
}

// New parses base.html and partials.html together with each page unit's
// template. Every page named by table must have a template file.
func New(table *routes.Table, site content.Provider, th theme.Theme, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		table:     table,
		site:      site,
		theme:     th,
		now:       time.Now,
		templates: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}

	funcMap := template.FuncMap{
		// isDev returns true when the app runs in development mode.
		"isDev": func() bool { return r.devMode },
	}

	for _, page := range table.Pages() {
		file := "templates/pages/" + page + ".html"
		if _, err := fs.Stat(templatesFS, file); err != nil {
			return nil, fmt.Errorf("%w: no template for %q", ErrUnknownPage, page)
		}
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			templatesFS, "templates/base.html", "templates/partials.html", file,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}

	return r, nil
}

// Data assembles the view model for path rendered as route.
func (rn *Renderer) Data(path string, route routes.Route) (*PageData, error) {
	site := rn.site.Site()
	page, ok := site.Page(route.Page)
	if !ok {
		return nil, fmt.Errorf("%w: no content for %q", ErrUnknownPage, route.Page)
	}
	return &PageData{
		Brand:       site.Brand,
		Owner:       site.Owner,
		FooterQuote: site.FooterQuote,
		Path:        path,
		Route:       route,
		Page:        page,
		Nav:         rn.table.Nav(path),
		Footer:      rn.table.Footer(path),
		Theme:       rn.theme,
		Year:        rn.now().Year(),
		CSRFToken:   CSRFPlaceholder,
	}, nil
}

// Render produces the HTML for path rendered as route. When partial is
// true only the content region, title and out-of-band nav are produced.
// The output carries CSRFPlaceholder in place of the form token.
func (rn *Renderer) Render(path string, route routes.Route, partial bool) ([]byte, error) {
	tmpl, ok := rn.templates[route.Page]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, route.Page)
	}
	data, err := rn.Data(path, route)
	if err != nil {
		return nil, err
	}

	name := "base"
	if partial {
		name = "partial"
		data.OOB = true
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute %s/%s: %w", route.Page, name, err)
	}
	return buf.Bytes(), nil
}

// IsPartial reports whether r is an HTMX navigation that should receive
// only the content region. History restores get the full document because
// htmx swaps them into the whole body.
func IsPartial(r *http.Request) bool {
	return htmx.IsHTMX(r) && !htmx.IsHistoryRestoreRequest(r)
}

// FillCSRF replaces the placeholder with the request's token.
func FillCSRF(body []byte, token string) []byte {
	return bytes.ReplaceAll(body, []byte(CSRFPlaceholder), []byte(token))
}

// WriteHTML writes an HTML response with the given status.
func WriteHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
