package routes

import (
	"errors"
	"testing"
)

func TestDefaultMatch(t *testing.T) {
	table := Default()

	tests := []struct {
		path     string
		wantPage string
		wantOK   bool
	}{
		{"/", PageHome, true},
		{"/services", PageServices, true},
		{"/resources", PageResources, true},
		{"/about", PageAbout, true},
		{"/contact", PageContact, true},

		// Exact matching only.
		{"/about/", "", false},
		{"/About", "", false},
		{"/services/extra", "", false},
		{"/nonexistent", "", false},
		{"/privacy", "", false},
		{"", "", false},
		{"/?q=1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, ok := table.Match(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok: got %v, want %v", tt.path, ok, tt.wantOK)
			}
			if r.Page != tt.wantPage {
				t.Errorf("Match(%q) page: got %q, want %q", tt.path, r.Page, tt.wantPage)
			}
			if !ok && r != (Route{}) {
				t.Errorf("Match(%q) on miss: got %+v, want zero Route", tt.path, r)
			}
		})
	}
}

func TestResolveFallback(t *testing.T) {
	table := Default()

	r, ok := table.Resolve("/nonexistent")
	if ok {
		t.Error("Resolve(/nonexistent) should report a miss")
	}
	if r.Page != PageNotFound {
		t.Errorf("fallback page: got %q, want %q", r.Page, PageNotFound)
	}

	r, ok = table.Resolve("/about")
	if !ok || r.Page != PageAbout {
		t.Errorf("Resolve(/about): got (%q, %v), want (%q, true)", r.Page, ok, PageAbout)
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	fallback := Route{Page: PageNotFound}

	_, err := New(fallback, Route{Path: "/", Page: PageHome}, Route{Path: "/", Page: PageAbout})
	if !errors.Is(err, ErrDuplicatePath) {
		t.Errorf("duplicate path: got %v, want ErrDuplicatePath", err)
	}

	_, err = New(fallback, Route{Path: "", Page: PageHome})
	if !errors.Is(err, ErrEmptyPath) {
		t.Errorf("empty path: got %v, want ErrEmptyPath", err)
	}
}

func TestNav(t *testing.T) {
	table := Default()
	links := table.Nav("/resources")

	wantHrefs := []string{"/", "/services", "/resources", "/about", "/contact"}
	wantLabels := []string{"Home", "Services", "Resources", "About", "Contact"}
	if len(links) != len(wantHrefs) {
		t.Fatalf("nav length: got %d, want %d", len(links), len(wantHrefs))
	}
	for i, l := range links {
		if l.Href != wantHrefs[i] {
			t.Errorf("nav[%d].Href: got %q, want %q", i, l.Href, wantHrefs[i])
		}
		if l.Label != wantLabels[i] {
			t.Errorf("nav[%d].Label: got %q, want %q", i, l.Label, wantLabels[i])
		}
		if l.Active != (l.Href == "/resources") {
			t.Errorf("nav[%d].Active: got %v for %s", i, l.Active, l.Href)
		}
	}

	// The home link is only active on "/" itself.
	for _, l := range table.Nav("/nonexistent") {
		if l.Active {
			t.Errorf("no link should be active on a miss, %s was", l.Href)
		}
	}
}

func TestFooter(t *testing.T) {
	table := Default()
	links := table.Footer("/contact")

	want := []string{"/services", "/resources", "/contact", PrivacyPath}
	if len(links) != len(want) {
		t.Fatalf("footer length: got %d, want %d", len(links), len(want))
	}
	for i, l := range links {
		if l.Href != want[i] {
			t.Errorf("footer[%d]: got %q, want %q", i, l.Href, want[i])
		}
	}
	if !links[2].Active {
		t.Error("contact footer link should be active on /contact")
	}

	// Footer must not be shared between calls.
	links[0].Label = "mutated"
	if table.Footer("/")[0].Label != "Services" {
		t.Error("Footer() returned a shared slice")
	}
}

func TestPagesAndRoutes(t *testing.T) {
	table := Default()

	pages := table.Pages()
	want := []string{PageHome, PageServices, PageResources, PageAbout, PageContact, PageNotFound}
	if len(pages) != len(want) {
		t.Fatalf("pages: got %v, want %v", pages, want)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("pages[%d]: got %q, want %q", i, pages[i], want[i])
		}
	}

	rs := table.Routes()
	rs[0].Path = "/hijacked"
	if _, ok := table.Match("/"); !ok {
		t.Error("Routes() should return a copy")
	}
}

func TestWithFooter(t *testing.T) {
	table := Default().WithFooter(Link{Href: "/about", Label: "About"})

	links := table.Footer("/")
	if len(links) != 1 || links[0].Href != "/about" {
		t.Errorf("WithFooter: got %+v", links)
	}
	if got := len(Default().Footer("/")); got != 4 {
		t.Errorf("WithFooter must not modify the original, footer length %d", got)
	}
}
