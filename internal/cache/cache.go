// Package cache stores rendered responses of the read-mostly catalog
// endpoints (categories and statistics) until the next write.
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long an entry is served when no write invalidates it.
const DefaultTTL = 5 * time.Minute

// Cache is a byte cache with whole-cache invalidation.
type Cache interface {
	// Get returns the value stored under key. ok is false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Invalidate drops every entry.
	Invalidate(ctx context.Context) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte) error { return nil }

func (Nop) Invalidate(context.Context) error { return nil }
