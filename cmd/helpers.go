package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/config"
	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/logging"
	"github.com/ziadkadry99/docview/internal/render"
	"github.com/ziadkadry99/docview/internal/viewer"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	fetcher fetch.Fetcher
	source  catalog.Source
	loader  *viewer.Loader
	policy  viewer.RacePolicy
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docview init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newApp loads the config and builds the logger, fetcher, catalog source
// and loader from it.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	fetcher, err := fetch.New(cfg.Docs.Root, cfg.Fetch.Timeout)
	if err != nil {
		return nil, err
	}

	source, err := newSource(cfg, fetcher, logger)
	if err != nil {
		return nil, err
	}

	policy, err := viewer.ParseRacePolicy(string(cfg.Viewer.RacePolicy))
	if err != nil {
		return nil, err
	}

	renderer := render.NewMarkdown(render.Options{
		HighlightStyle: cfg.Render.HighlightStyle,
		Sanitize:       cfg.Render.Sanitize,
	})

	return &app{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		source:  source,
		loader:  viewer.NewLoader(fetcher, renderer, logger),
		policy:  policy,
	}, nil
}

// newSource creates the configured catalog source.
func newSource(cfg *config.Config, fetcher fetch.Fetcher, logger *zap.Logger) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.CatalogStatic:
		return catalog.NewStaticSource(cfg.Catalog.Files), nil
	case config.CatalogManifest:
		return catalog.NewManifestSource(fetcher, cfg.Catalog.Manifest), nil
	case config.CatalogDir:
		return catalog.NewDirSource(cfg.Docs.Root, cfg.Catalog.Include, cfg.Catalog.Exclude, logger), nil
	}
	return nil, fmt.Errorf("unsupported catalog source %q", cfg.Catalog.Source)
}

// controllerOptions configures a controller from the config. link replaces
// the default document when non-empty.
func (a *app) controllerOptions(link string) []viewer.Option {
	if link == "" {
		link = a.cfg.Docs.DefaultDocument
	}
	return []viewer.Option{
		viewer.WithDefaultLink(link),
		viewer.WithExtension(a.cfg.Docs.Extension),
		viewer.WithRacePolicy(a.policy),
		viewer.WithLogger(a.logger),
	}
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
