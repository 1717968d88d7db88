// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package routes defines the site's route table: the fixed mapping from URL
// path to the page unit that renders it, plus the navigation and footer link
// sets derived from it. Matching is exact string equality; there are no
// parameters, wildcards, or prefix matches.
package routes

import (
	"errors"
	"fmt"
)

// Page unit names. Each one has a template and a content entry.
const (
	PageHome      = "home"
	PageServices  = "services"
	PageResources = "resources"
	PageAbout     = "about"
	PageContact   = "contact"
	PageNotFound  = "not_found"
)

// PrivacyPath is linked from the footer but has no route of its own.
const PrivacyPath = "/privacy"

var (
	// ErrEmptyPath is returned when a route is declared without a path.
	ErrEmptyPath = errors.New("routes: empty path")
	// ErrDuplicatePath is returned when two routes share a path.
	ErrDuplicatePath = errors.New("routes: duplicate path")
)

// Route maps one path to a page unit. Path is the identity.
type Route struct {
	Path  string // e.g. "/about"
	Label string // Link text in the nav bar
	Page  string // Page unit name, e.g. PageAbout
}

// Link is a view model for a rendered anchor.
type Link struct {
	Href   string
	Label  string
	Active bool
}

// Table is an immutable, ordered route table with a fallback route used
// when nothing matches.
type Table struct {
	routes   []Route
	index    map[string]int
	fallback Route
	footer   []Link
}

// New builds a table from routes in nav order. fallback is returned by
// Resolve on a miss; its Path is ignored.
func New(fallback Route, routes ...Route) (*Table, error) {
	t := &Table{
		routes:   make([]Route, 0, len(routes)),
		index:    make(map[string]int, len(routes)),
		fallback: fallback,
	}
	for _, r := range routes {
		if r.Path == "" {
			return nil, fmt.Errorf("%w (page %q)", ErrEmptyPath, r.Page)
		}
		if _, dup := t.index[r.Path]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, r.Path)
		}
		t.index[r.Path] = len(t.routes)
		t.routes = append(t.routes, r)
	}
	return t, nil
}

// Default returns the site's five routes and the not-found fallback.
func Default() *Table {
	t, err := New(
		Route{Label: "Not Found", Page: PageNotFound},
		Route{Path: "/", Label: "Home", Page: PageHome},
		Route{Path: "/services", Label: "Services", Page: PageServices},
		Route{Path: "/resources", Label: "Resources", Page: PageResources},
		Route{Path: "/about", Label: "About", Page: PageAbout},
		Route{Path: "/contact", Label: "Contact", Page: PageContact},
	)
	if err != nil {
		panic(err) // static table; unreachable
	}
	t.footer = []Link{
		{Href: "/services", Label: "Services"},
		{Href: "/resources", Label: "Resources"},
		{Href: "/contact", Label: "Contact"},
		{Href: PrivacyPath, Label: "Privacy"},
	}
	return t
}

// WithFooter returns a copy of the table with the given footer links.
func (t *Table) WithFooter(links ...Link) *Table {
	cp := *t
	cp.footer = append([]Link(nil), links...)
	return &cp
}

// Match returns the route whose path equals p exactly. A miss returns the
// zero Route and false.
func (t *Table) Match(p string) (Route, bool) {
	i, ok := t.index[p]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Resolve is Match with the fallback route substituted on a miss, so the
// caller always has something to render. The bool reports whether p matched.
func (t *Table) Resolve(p string) (Route, bool) {
	if r, ok := t.Match(p); ok {
		return r, true
	}
	return t.fallback, false
}

// Fallback returns the route rendered for unmatched paths.
func (t *Table) Fallback() Route {
	return t.fallback
}

// Routes returns the routes in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Pages returns every page unit name in the table, fallback last.
func (t *Table) Pages() []string {
	pages := make([]string, 0, len(t.routes)+1)
	for _, r := range t.routes {
		pages = append(pages, r.Page)
	}
	return append(pages, t.fallback.Page)
}

// Nav builds the navigation bar links with the exact match for current
// marked active.
func (t *Table) Nav(current string) []Link {
	links := make([]Link, 0, len(t.routes))
	for _, r := range t.routes {
		links = append(links, Link{
			Href:   r.Path,
			Label:  r.Label,
			Active: r.Path == current,
		})
	}
	return links
}

// Footer builds the footer links with the exact match for current marked
// active.
func (t *Table) Footer(current string) []Link {
	links := make([]Link, 0, len(t.footer))
	for _, l := range t.footer {
		l.Active = l.Href == current
		links = append(links, l)
	}
	return links
}
