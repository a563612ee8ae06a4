package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/leafdoc-go/internal/directive"
	"github.com/quantmind-br/leafdoc-go/internal/extractor"
)

// Default values
const (
	// Output defaults
	DefaultFormat    = "html"
	DefaultOverwrite = true

	// Concurrency defaults
	DefaultWorkers = 4

	// Cache defaults
	DefaultCacheEnabled = false
	DefaultCacheTTL     = 24 * time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultExtensions are the file extensions read when walking directories
var DefaultExtensions = []string{".js", ".leafdoc"}

// DefaultStyles returns the default style table in config form
func DefaultStyles() map[string]string {
	styles := make(map[string]string, len(extractor.DefaultStyles))
	for ext, style := range extractor.DefaultStyles {
		styles[strings.TrimPrefix(ext, ".")] = string(style)
	}
	return styles
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".leafdoc"
	}
	return filepath.Join(home, ".leafdoc")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Leafdoc: LeafdocConfig{
			LeadingCharacter: directive.DefaultLeadingCharacter,
		},
		Sources: SourcesConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
			Styles:     DefaultStyles(),
		},
		Output: OutputConfig{
			Format:    DefaultFormat,
			Overwrite: DefaultOverwrite,
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
