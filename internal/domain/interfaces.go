package domain

import (
	"context"
	"time"
)

// Cache defines the interface for caching tokenized comment blocks
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// Source is one unit of input text handed to a session
type Source struct {
	// Name identifies the input in diagnostics, usually a file path
	Name string
	Text string
}
