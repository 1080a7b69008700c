package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOCVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCVIEW_*). Nested keys are separated by a
// double underscore: DOCVIEW_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps DOCVIEW_DOCS__DEFAULT_DOCUMENT to docs.default_document.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validSources = map[CatalogSourceType]bool{
	CatalogStatic:   true,
	CatalogManifest: true,
	CatalogDir:      true,
}

var validRacePolicies = map[RacePolicy]bool{
	RaceLatestSelection: true,
	RaceLastResponse:    true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Docs.Root == "" {
		return fmt.Errorf("docs.root is required")
	}
	if !strings.HasPrefix(c.Docs.Extension, ".") {
		return fmt.Errorf("invalid docs.extension %q: must start with a dot", c.Docs.Extension)
	}

	if !validSources[c.Catalog.Source] {
		return fmt.Errorf("invalid catalog.source %q: must be one of static, manifest, dir", c.Catalog.Source)
	}
	if c.Catalog.Source == CatalogManifest && c.Catalog.Manifest == "" {
		return fmt.Errorf("catalog.manifest is required when catalog.source is manifest")
	}
	if c.Catalog.Source == CatalogDir && c.IsRemote() {
		return fmt.Errorf("catalog.source dir needs a local docs.root, got %q", c.Docs.Root)
	}

	if !validRacePolicies[c.Viewer.RacePolicy] {
		return fmt.Errorf("invalid viewer.race_policy %q: must be one of latest-selection, last-response", c.Viewer.RacePolicy)
	}

	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be json or console", c.Log.Format)
	}

	return nil
}

// IsRemote reports whether documents are served over HTTP rather than read
// from a local directory.
func (c *Config) IsRemote() bool {
	return strings.HasPrefix(c.Docs.Root, "http://") || strings.HasPrefix(c.Docs.Root, "https://")
}
