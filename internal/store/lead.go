// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rupinder/internal/database"
	"rupinder/internal/models"
)

// LeadStore persists form submissions. It satisfies leads.Intake.
type LeadStore struct {
	db     *sql.DB
	driver string
}

// NewLeadStore creates a LeadStore for a connection opened with driver
// (database.DriverPostgres or database.DriverSQLite).
func NewLeadStore(db *sql.DB, driver string) *LeadStore {
	return &LeadStore{db: db, driver: driver}
}

// leadColumns lists the columns selected in lead queries.
const leadColumns = `id, kind, name, email, message, created_at`

// q rewrites $n placeholders for drivers that only understand ?.
func (s *LeadStore) q(query string) string {
	if s.driver != database.DriverSQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			if j > i+1 {
				b.WriteByte('?')
				i = j - 1
				continue
			}
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Submit inserts a lead.
func (s *LeadStore) Submit(ctx context.Context, l models.Lead) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`), l.ID, l.Kind, l.Name, l.Email, l.Message, l.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Count returns the number of stored leads of the given kind. An empty
// kind counts every lead.
func (s *LeadStore) Count(ctx context.Context, kind string) (int, error) {
	var (
		n   int
		err error
	)
	if kind == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM leads WHERE kind = $1`), kind).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// Recent returns up to limit leads, newest first.
func (s *LeadStore) Recent(ctx context.Context, limit int) ([]models.Lead, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC, id
		LIMIT $1
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Kind, &l.Name, &l.Email, &l.Message, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return out, nil
}
