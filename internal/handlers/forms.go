// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/angelofallars/htmx-go"

	"rupinder/internal/content"
	"rupinder/internal/leads"
)

// MaxFormBytes caps the size of a posted lead form. The router applies it
// ahead of CSRF checking, which parses the body first.
const MaxFormBytes = 64 << 10

// Forms handles the subscribe and contact form posts. Fields are passed
// through to the intake unchanged.
type Forms struct {
	intake leads.Intake
	site   content.Provider
}

// NewForms creates a new Forms handler group. A nil intake drops leads.
func NewForms(intake leads.Intake, site content.Provider) *Forms {
	if intake == nil {
		intake = leads.Noop{}
	}
	return &Forms{intake: intake, site: site}
}

// Subscribe handles POST /subscribe.
func (f *Forms) Subscribe(w http.ResponseWriter, r *http.Request) {
	f.submit(w, r, content.FormSubscribe)
}

// Contact handles POST /contact.
func (f *Forms) Contact(w http.ResponseWriter, r *http.Request) {
	f.submit(w, r, content.FormContact)
}

func (f *Forms) submit(w http.ResponseWriter, r *http.Request, kind string) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	lead, err := leads.FromForm(kind, r.PostForm)
	if err != nil {
		slog.Error("build lead failed", "error", err, "kind", kind)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := f.intake.Submit(r.Context(), lead); err != nil {
		slog.Error("submit lead failed", "error", err, "kind", kind, "id", lead.ID)
		http.Error(w, "Your message could not be delivered. Please try again later.", http.StatusBadGateway)
		return
	}

	target := f.redirectFor(kind)
	if htmx.IsHTMX(r) {
		if err := htmx.NewResponse().Redirect(target).Write(w); err != nil {
			slog.Error("write htmx redirect failed", "error", err)
		}
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectFor returns where the browser goes after posting a form of the
// given kind, taken from the first page (by name) that carries one.
func (f *Forms) redirectFor(kind string) string {
	site := f.site.Site()
	for _, name := range slices.Sorted(maps.Keys(site.Pages)) {
		if form := site.Pages[name].Form; form != nil && form.Kind == kind && form.Redirect != "" {
			return form.Redirect
		}
	}
	return "/"
}
