package cache

import (
	"time"

	"github.com/quantmind-br/leafdoc-go/internal/directive"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
)

// Ensure BadgerCache implements domain.Cache
var _ domain.Cache = (*BadgerCache)(nil)

// Entry is the cached result of extracting and tokenizing one input
type Entry struct {
	Source   string            `json:"source"`
	Style    string            `json:"style"`
	Blocks   []directive.Block `json:"blocks"`
	CachedAt time.Time         `json:"cached_at"`
}

// Options contains cache configuration options
type Options struct {
	// Directory holds the database; empty uses ~/.leafdoc/cache
	Directory string
	InMemory  bool

	// Logger receives badger's warnings and errors; nil silences them
	Logger *utils.Logger
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{}
}
