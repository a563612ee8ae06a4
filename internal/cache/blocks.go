package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quantmind-br/leafdoc-go/internal/directive"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
)

// BlockStore keeps tokenized comment blocks in a domain.Cache so unchanged
// inputs skip extraction and tokenization
type BlockStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewBlockStore creates a BlockStore. A zero ttl never expires entries.
func NewBlockStore(c domain.Cache, ttl time.Duration) *BlockStore {
	return &BlockStore{cache: c, ttl: ttl}
}

// Load returns the cached entry for key, or domain.ErrCacheMiss
func (s *BlockStore) Load(ctx context.Context, key string) (*Entry, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// unreadable entries are dropped and treated as misses
		_ = s.cache.Delete(ctx, key)
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheMiss, err)
	}
	return &entry, nil
}

// Save stores entry under key
func (s *BlockStore) Save(ctx context.Context, key string, entry *Entry) error {
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return s.cache.Set(ctx, key, data, s.ttl)
}

// Blocks is a convenience wrapper around Load returning only the blocks
func (s *BlockStore) Blocks(ctx context.Context, key string) ([]directive.Block, error) {
	entry, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return entry.Blocks, nil
}
