package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	return LoadWithViper(viper.GetViper())
}

// LoadWithViper loads configuration through v. A config file already set
// on v (for example from --config) takes precedence over the search path:
// ./leafdoc.yaml, then ~/.leafdoc/leafdoc.yaml.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("leafdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Environment variables (LEAFDOC_*)
	v.SetEnvPrefix("LEAFDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("leafdoc.leading_character", d.Leafdoc.LeadingCharacter)
	v.SetDefault("leafdoc.show_inheritances_when_empty", false)
	v.SetDefault("leafdoc.custom_documentables", []map[string]interface{}{})

	v.SetDefault("sources.extensions", d.Sources.Extensions)
	v.SetDefault("sources.styles", d.Sources.Styles)

	v.SetDefault("output.file", "")
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.overwrite", d.Output.Overwrite)
	v.SetDefault("output.template_dir", "")

	v.SetDefault("concurrency.workers", d.Concurrency.Workers)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.directory", d.Cache.Directory)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}
