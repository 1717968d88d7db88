// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Tests that need Valkey are skipped when it is unavailable.
package handlers

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"rupinder/internal/content"
	"rupinder/internal/models"
	"rupinder/internal/render"
	"rupinder/internal/routes"
	"rupinder/internal/theme"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testSite returns the stock site content behind a static provider.
func testSite(t *testing.T) *content.Static {
	t.Helper()
	site, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return content.NewStatic(site)
}

// testRenderer builds a renderer over the default routes with a fixed year.
func testRenderer(t *testing.T, site content.Provider) *render.Renderer {
	t.Helper()
	rn, err := render.New(routes.Default(), site, theme.Default(),
		render.WithClock(func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return rn
}

// recordingIntake keeps every submitted lead.
type recordingIntake struct {
	mu    sync.Mutex
	leads []models.Lead
	err   error
}

func (r *recordingIntake) Submit(_ context.Context, lead models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, lead)
	return r.err
}

func (r *recordingIntake) all() []models.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Lead(nil), r.leads...)
}
