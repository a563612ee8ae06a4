package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quantmind-br/leafdoc-go/internal/directive"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/extractor"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config represents the application configuration
type Config struct {
	Leafdoc     LeafdocConfig     `mapstructure:"leafdoc" yaml:"leafdoc"`
	Sources     SourcesConfig     `mapstructure:"sources" yaml:"sources"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// LeafdocConfig contains parser and renderer settings
type LeafdocConfig struct {
	LeadingCharacter          string        `mapstructure:"leading_character" yaml:"leading_character" validate:"required"`
	ShowInheritancesWhenEmpty bool          `mapstructure:"show_inheritances_when_empty" yaml:"show_inheritances_when_empty"`
	CustomDocumentables       []domain.Kind `mapstructure:"custom_documentables" yaml:"custom_documentables" validate:"dive"`
}

// SourcesConfig selects input files and their comment style
type SourcesConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions" validate:"min=1,dive,startswith=."`
	// Styles maps an extension, without its leading dot, to a comment style.
	// Extensions not listed use the c-like style.
	Styles map[string]string `mapstructure:"styles" yaml:"styles" validate:"dive,keys,required,excludes=.,endkeys,oneof=c-like hash plain"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// File is the output path; empty writes to stdout
	File        string `mapstructure:"file" yaml:"file"`
	Format      string `mapstructure:"format" yaml:"format" validate:"oneof=html json yaml markdown"`
	Overwrite   bool   `mapstructure:"overwrite" yaml:"overwrite"`
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" validate:"gte=1"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=pretty json"`
}

// Validate fills in defaults for unset values, then validates the
// configuration
func (c *Config) Validate() error {
	if c.Leafdoc.LeadingCharacter == "" {
		c.Leafdoc.LeadingCharacter = directive.DefaultLeadingCharacter
	}
	if len(c.Sources.Extensions) == 0 {
		c.Sources.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	c.Output.Format = strings.ToLower(c.Output.Format)
	c.Sources.Extensions = utils.NormalizeExtensions(c.Sources.Extensions)

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// StyleMap returns the comment style per extension, keyed with the
// leading dot as extractor.StyleFor expects
func (c *Config) StyleMap() map[string]extractor.Style {
	styles := make(map[string]extractor.Style, len(extractor.DefaultStyles)+len(c.Sources.Styles))
	for ext, style := range extractor.DefaultStyles {
		styles[ext] = style
	}
	for ext, name := range c.Sources.Styles {
		style, err := extractor.ParseStyle(name)
		if err != nil {
			continue
		}
		styles["."+strings.ToLower(ext)] = style
	}
	return styles
}
