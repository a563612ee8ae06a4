package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/leafdoc-go/internal/config"
)

func TestInitConfig(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	path := filepath.Join(t.TempDir(), "leafdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0644))

	v := viper.GetViper()
	before := v.ConfigFileUsed()

	cfgFile = ""
	assert.NotPanics(t, initConfig)
	assert.Equal(t, before, v.ConfigFileUsed())

	cfgFile = path
	initConfig()
	assert.Equal(t, path, v.ConfigFileUsed())
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"template", "t"},
		{"character", "c"},
		{"output", "o"},
		{"json", "j"},
		{"format", "f"},
		{"empty", "e"},
		{"ext", ""},
		{"cache", ""},
		{"workers", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := rootCmd.Flags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
		})
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestRun_NoArgs(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	require.NoError(t, run(rootCmd, nil))
	assert.Contains(t, out.String(), "leafdoc [flags] [files|dirs...]")
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "leafdoc ")
}

func TestDumpConfig(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dumpConfig(&out, config.Default()))

	var decoded config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, config.DefaultFormat, decoded.Output.Format)
	assert.Equal(t, config.DefaultExtensions, decoded.Sources.Extensions)
	assert.Equal(t, "plain", decoded.Sources.Styles["leafdoc"])
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "map.js")
	require.NoError(t, os.WriteFile(src, []byte("/*\n🍂class Map\n🍂method getZoom(): Number\n*/\n"), 0644))

	t.Run("stdout", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Enabled = false

		var stdout, stderr bytes.Buffer
		require.NoError(t, generate(context.Background(), cfg, []string{src}, &stdout, &stderr))
		assert.Contains(t, stdout.String(), `<h2 id="map">Map</h2>`)
	})

	t.Run("markdown file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Enabled = false
		cfg.Output.Format = "markdown"
		cfg.Output.File = filepath.Join(dir, "API.md")

		var stdout, stderr bytes.Buffer
		require.NoError(t, generate(context.Background(), cfg, []string{dir}, &stdout, &stderr))
		assert.Empty(t, stdout.String())

		data, err := os.ReadFile(cfg.Output.File)
		require.NoError(t, err)
		assert.Contains(t, string(data), "## Map")
	})

	t.Run("missing input", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Enabled = false

		err := generate(context.Background(), cfg, []string{filepath.Join(dir, "nope.js")}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
