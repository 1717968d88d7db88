// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package leads accepts submissions from the site's subscribe and contact
// forms. An Intake decides what happens to a lead; the default Noop intake
// drops it, matching a site with no mailing or CRM backend configured.
package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"rupinder/internal/models"
)

// ErrUnknownKind is returned for a form kind other than subscribe or contact.
var ErrUnknownKind = errors.New("leads: unknown form kind")

// Intake receives form submissions. Implementations must be safe for
// concurrent use.
type Intake interface {
	Submit(ctx context.Context, lead models.Lead) error
}

// Noop accepts every lead and does nothing with it.
type Noop struct{}

// Submit implements Intake.
func (Noop) Submit(context.Context, models.Lead) error { return nil }

// Logging records each lead with slog and hands it to the wrapped Intake.
// Only the kind, ID and a redacted email are logged.
type Logging struct {
	next Intake
}

// NewLogging wraps next. A nil next behaves like Noop.
func NewLogging(next Intake) *Logging {
	if next == nil {
		next = Noop{}
	}
	return &Logging{next: next}
}

// Submit implements Intake.
func (l *Logging) Submit(ctx context.Context, lead models.Lead) error {
	if err := l.next.Submit(ctx, lead); err != nil {
		slog.Error("lead intake failed",
			"kind", lead.Kind,
			"id", lead.ID,
			"email", lead.RedactedEmail(),
			"error", err,
		)
		return err
	}
	slog.Info("lead received",
		"kind", lead.Kind,
		"id", lead.ID,
		"email", lead.RedactedEmail(),
	)
	return nil
}

// FromForm builds a lead from posted form values. Each of name, email and
// message is copied exactly as typed from its own field; nothing is checked.
func FromForm(kind string, form url.Values) (models.Lead, error) {
	if !models.ValidKind(kind) {
		return models.Lead{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	lead := models.Lead{
		ID:        uuid.New(),
		Kind:      kind,
		Email:     form.Get("email"),
		CreatedAt: time.Now().UTC(),
	}
	if kind == models.LeadContact {
		lead.Name = form.Get("name")
		lead.Message = form.Get("message")
	}
	return lead, nil
}
