// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"rupinder/internal/cache"
	"rupinder/internal/middleware"
	"rupinder/internal/render"
	"rupinder/internal/routes"
)

// notFoundKey is the cache path for every unmatched request. All misses
// render identically (no nav link is active), so they share one entry.
const notFoundKey = "!not_found"

// Public serves the site pages. The route table decides what renders; the
// Valkey page cache is checked before invoking the renderer, and rendered
// results are stored on miss.
type Public struct {
	table     *routes.Table
	renderer  *render.Renderer
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil.
func NewPublic(table *routes.Table, renderer *render.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{
		table:     table,
		renderer:  renderer,
		pageCache: pageCache,
	}
}

// Page renders whatever the route table resolves r.URL.Path to. A match
// is answered with 200; anything else gets the not-found page inside the
// normal shell with 404. HTMX navigations receive the partial variant.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	route, matched := p.table.Resolve(r.URL.Path)
	partial := render.IsPartial(r)

	status := http.StatusOK
	key := cache.PathKey(route.Path, partial)
	if !matched {
		status = http.StatusNotFound
		key = cache.PathKey(notFoundKey, partial)
	}

	body, ok := p.pageCache.Get(ctx, key)
	if !ok {
		rendered, err := p.renderer.Render(r.URL.Path, route, partial)
		if err != nil {
			slog.Error("render page failed", "error", err, "path", r.URL.Path, "page", route.Page)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		p.pageCache.Set(ctx, key, rendered)
		body = rendered
	}

	body = render.FillCSRF(body, middleware.GetCSRFToken(r))

	h := w.Header()
	h.Add("Vary", "HX-Request")
	h.Set("Cache-Control", "private, no-cache")
	render.WriteHTML(w, status, body)
}
