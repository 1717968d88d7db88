// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme holds the site's colour palette. A Theme is built once at
// startup and passed by value to the renderer; nothing mutates it afterwards.
package theme

import (
	"fmt"
	"regexp"
)

// Default palette values.
const (
	DefaultPrimary    = "#a68dd8"
	DefaultBackground = "#ffffff"
	DefaultText       = "#333333"
)

// hexColor matches #rgb and #rrggbb colour literals.
var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme is the shared colour configuration used by every page.
type Theme struct {
	Primary    string // Brand colour: headings, buttons, card titles
	Background string // Page background and button text
	Text       string // Body text
}

// Default returns the stock palette.
func Default() Theme {
	return Theme{
		Primary:    DefaultPrimary,
		Background: DefaultBackground,
		Text:       DefaultText,
	}
}

// New builds a Theme from the given colours, falling back to the defaults for
// empty values. Returns an error if a non-empty value is not a hex colour.
func New(primary, background, text string) (Theme, error) {
	t := Default()
	for _, c := range []struct {
		name string
		val  string
		dst  *string
	}{
		{"primary", primary, &t.Primary},
		{"background", background, &t.Background},
		{"text", text, &t.Text},
	} {
		if c.val == "" {
			continue
		}
		if !hexColor.MatchString(c.val) {
			return Theme{}, fmt.Errorf("theme %s: %q is not a hex colour", c.name, c.val)
		}
		*c.dst = c.val
	}
	return t, nil
}
