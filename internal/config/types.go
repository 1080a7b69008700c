package config

import "time"

// CatalogSourceType selects where the list of documents comes from.
type CatalogSourceType string

const (
	CatalogStatic   CatalogSourceType = "static"
	CatalogManifest CatalogSourceType = "manifest"
	CatalogDir      CatalogSourceType = "dir"
)

// RacePolicy decides which of several in-flight loads ends up on screen.
type RacePolicy string

const (
	// RaceLatestSelection applies a load only if it belongs to the most recent selection.
	RaceLatestSelection RacePolicy = "latest-selection"
	// RaceLastResponse applies every load as it completes; the slowest one wins.
	RaceLastResponse RacePolicy = "last-response"
)

// Config is the top-level docview configuration, corresponding to .docview.yml.
type Config struct {
	Title   string        `yaml:"title" koanf:"title"`
	Docs    DocsConfig    `yaml:"docs" koanf:"docs"`
	Catalog CatalogConfig `yaml:"catalog" koanf:"catalog"`
	Render  RenderConfig  `yaml:"render" koanf:"render"`
	Fetch   FetchConfig   `yaml:"fetch" koanf:"fetch"`
	Viewer  ViewerConfig  `yaml:"viewer" koanf:"viewer"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
}

// DocsConfig describes where documents live.
type DocsConfig struct {
	// Root is a local directory or an http(s):// base URL.
	Root            string `yaml:"root" koanf:"root"`
	Extension       string `yaml:"extension" koanf:"extension"`
	DefaultDocument string `yaml:"default_document" koanf:"default_document"`
}

// CatalogConfig holds catalog source settings.
type CatalogConfig struct {
	Source   CatalogSourceType `yaml:"source" koanf:"source"`
	Files    []string          `yaml:"files" koanf:"files"`
	Manifest string            `yaml:"manifest" koanf:"manifest"`
	Include  []string          `yaml:"include" koanf:"include"`
	Exclude  []string          `yaml:"exclude" koanf:"exclude"`
}

// RenderConfig holds markdown renderer settings.
type RenderConfig struct {
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
	Sanitize       bool   `yaml:"sanitize" koanf:"sanitize"`
}

// FetchConfig holds document retrieval settings. A zero Timeout means no timeout.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

// ViewerConfig holds selection controller settings.
type ViewerConfig struct {
	RacePolicy RacePolicy `yaml:"race_policy" koanf:"race_policy"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
