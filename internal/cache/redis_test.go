package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/redissvc"
)

// Runs only when CATALOG_TEST_REDIS_ADDR points at a disposable Redis.
func TestRedis_RoundTrip(t *testing.T) {
	addr := os.Getenv("CATALOG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CATALOG_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rs, err := redissvc.Connect(ctx, addr, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = rs.Close() })

	c := NewRedis(rs, time.Minute)
	c.key = "catalog:cache:test"
	t.Cleanup(func() { _ = c.Invalidate(ctx) })

	if _, ok, err := c.Get(ctx, "categories"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, "categories", []byte(`["Toys"]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := c.Get(ctx, "categories")
	if err != nil || !ok || string(v) != `["Toys"]` {
		t.Fatalf("unexpected get result %q ok=%v err=%v", v, ok, err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "categories"); ok {
		t.Fatal("entry survived invalidation")
	}
}
