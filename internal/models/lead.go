// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Lead kinds, one per site form.
const (
	LeadSubscribe = "subscribe"
	LeadContact   = "contact"
)

// Lead is a single form submission. Subscribe leads carry only Email.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidKind reports whether kind names a known form.
func ValidKind(kind string) bool {
	return kind == LeadSubscribe || kind == LeadContact
}

// RedactedEmail masks the local part of the email for logging,
// e.g. "jane@example.com" becomes "j***@example.com".
func (l *Lead) RedactedEmail() string {
	at := strings.LastIndex(l.Email, "@")
	if at <= 0 {
		if l.Email == "" {
			return ""
		}
		return "***"
	}
	first, size := utf8.DecodeRuneInString(l.Email)
	if first == utf8.RuneError && size <= 1 {
		return "***" + l.Email[at:]
	}
	return l.Email[:size] + "***" + l.Email[at:]
}
