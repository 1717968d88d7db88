// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content holds the site copy as data. Each page unit maps to a
// structured entry (heading, lead, sections, cards, buttons, form) decoded
// from YAML, so copy edits never touch rendering code. The stock copy is
// embedded; an external file with the same schema can replace it.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"rupinder/internal/markdown"
	"rupinder/internal/slug"
)

//go:embed site.yaml
var defaultSite []byte

// Form kinds.
const (
	FormSubscribe = "subscribe"
	FormContact   = "contact"
)

var (
	// ErrMissingPage is returned by Validate when a routed page has no entry.
	ErrMissingPage = errors.New("content: missing page")
	// ErrInvalidForm is returned by Validate for a malformed form block.
	ErrInvalidForm = errors.New("content: invalid form")
)

// Provider hands out the current site content. Implementations must be safe
// for concurrent use; the returned Site must be treated as read-only.
type Provider interface {
	Site() *Site
}

// Site is the full content table.
type Site struct {
	Brand       string          `yaml:"brand"`
	Owner       string          `yaml:"owner"`
	FooterQuote string          `yaml:"footer_quote"`
	Pages       map[string]Page `yaml:"pages"`
}

// Page is the copy for one page unit.
type Page struct {
	Title       string       `yaml:"title"`
	Heading     string       `yaml:"heading"`
	Lead        string       `yaml:"lead"`
	Buttons     []Button     `yaml:"buttons"`
	Sections    []Section    `yaml:"sections"`
	Cards       []Card       `yaml:"cards"`
	Testimonial *Testimonial `yaml:"testimonial"`
	Badges      []string     `yaml:"badges"`
	Form        *Form        `yaml:"form"`
}

// Section is a block of body copy with an optional heading and bullet list.
type Section struct {
	Heading string   `yaml:"heading"`
	Body    string   `yaml:"body"`  // Markdown
	Items   []string `yaml:"items"` // Rendered as a bullet list after Body
	After   string   `yaml:"after"` // Markdown, rendered after Items

	Anchor    string        `yaml:"-"`
	BodyHTML  template.HTML `yaml:"-"`
	AfterHTML template.HTML `yaml:"-"`
}

// Card is a titled feature tile.
type Card struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Button is a call-to-action link styled as a button.
type Button struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Testimonial is a client quote.
type Testimonial struct {
	Quote       string `yaml:"quote"`
	Attribution string `yaml:"attribution"`
}

// Form describes a lead-capture form. Kind selects the POST endpoint.
type Form struct {
	Kind     string  `yaml:"kind"`
	Heading  string  `yaml:"heading"`
	Submit   string  `yaml:"submit"`
	Redirect string  `yaml:"redirect"` // Where the browser goes after submitting
	Fields   []Field `yaml:"fields"`
}

// Field is one form input.
type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // "text", "email" or "textarea"
	Placeholder string `yaml:"placeholder"`
	Rows        int    `yaml:"rows"`
}

// Action returns the form's POST path.
func (f *Form) Action() string {
	return "/" + f.Kind
}

// Page returns the entry for a page unit.
func (s *Site) Page(name string) (Page, bool) {
	p, ok := s.Pages[name]
	return p, ok
}

// Default decodes the embedded site copy.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

// LoadFile decodes site copy from a YAML file.
func LoadFile(path string) (*Site, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	site, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return site, nil
}

// Parse decodes YAML and renders the Markdown fields. Unknown keys are
// rejected so typos in the content file surface at load time.
func Parse(raw []byte) (*Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := site.prepare(); err != nil {
		return nil, err
	}
	return &site, nil
}

// prepare fills the derived fields of every section.
func (s *Site) prepare() error {
	for name, page := range s.Pages {
		seen := map[string]int{}
		sections := make([]Section, len(page.Sections))
		for i, sec := range page.Sections {
			if sec.Heading != "" {
				sec.Anchor = slug.Unique(sec.Heading, seen)
			}
			if strings.TrimSpace(sec.Body) != "" {
				h, err := markdown.ToTemplate(sec.Body)
				if err != nil {
					return fmt.Errorf("page %s section %d body: %w", name, i, err)
				}
				sec.BodyHTML = h
			}
			if strings.TrimSpace(sec.After) != "" {
				h, err := markdown.ToTemplate(sec.After)
				if err != nil {
					return fmt.Errorf("page %s section %d after: %w", name, i, err)
				}
				sec.AfterHTML = h
			}
			sections[i] = sec
		}
		page.Sections = sections
		s.Pages[name] = page
	}
	return nil
}

// Validate checks that every page unit in pages has an entry with a heading
// and that any form on those pages is well formed.
func (s *Site) Validate(pages []string) error {
	var errs []error
	for _, name := range pages {
		p, ok := s.Pages[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingPage, name))
			continue
		}
		if strings.TrimSpace(p.Heading) == "" {
			errs = append(errs, fmt.Errorf("%w: %s has no heading", ErrMissingPage, name))
		}
		if p.Form != nil {
			if err := p.Form.validate(); err != nil {
				errs = append(errs, fmt.Errorf("page %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (f *Form) validate() error {
	if f.Kind != FormSubscribe && f.Kind != FormContact {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidForm, f.Kind)
	}
	if !strings.HasPrefix(f.Redirect, "/") {
		return fmt.Errorf("%w: redirect %q must be a site path", ErrInvalidForm, f.Redirect)
	}
	if len(f.Fields) == 0 {
		return fmt.Errorf("%w: %s form has no fields", ErrInvalidForm, f.Kind)
	}
	for _, fld := range f.Fields {
		switch fld.Type {
		case "text", "email", "textarea":
		default:
			return fmt.Errorf("%w: field %q has type %q", ErrInvalidForm, fld.Name, fld.Type)
		}
	}
	return nil
}

// Static is a Provider over a fixed Site.
type Static struct {
	site *Site
}

// NewStatic wraps site in a Provider.
func NewStatic(site *Site) *Static {
	return &Static{site: site}
}

// Site returns the wrapped content.
func (s *Static) Site() *Site {
	return s.site
}
