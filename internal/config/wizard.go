package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// DefaultConfigPath is where RunWizard saves its result.
const DefaultConfigPath = ".docview.yml"

// detectDefaultDocument looks for a README-like file in dir to propose as the
// document shown on start.
func detectDefaultDocument(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "README.md"
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(e.Name(), "readme.md") {
			return e.Name()
		}
	}
	return "README.md"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .docview.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to docview! Let's configure your document viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Where the documents live.
	rootPrompt := promptui.Prompt{
		Label:   "Documents location (directory or http(s):// URL)",
		Default: cfg.Docs.Root,
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs root: %w", err)
	}
	cfg.Docs.Root = strings.TrimSpace(root)

	// 2. Catalog source. Directory scanning only works for local roots.
	sources := []string{
		"dir      — scan the documents directory",
		"static   — built-in article list",
		"manifest — fetch a JSON manifest of {title, link}",
	}
	kinds := []CatalogSourceType{CatalogDir, CatalogStatic, CatalogManifest}
	if cfg.IsRemote() {
		sources = sources[1:]
		kinds = kinds[1:]
	}
	sourcePrompt := promptui.Select{
		Label: "Select catalog source",
		Items: sources,
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog source selection: %w", err)
	}
	cfg.Catalog.Source = kinds[sourceIdx]

	if cfg.Catalog.Source == CatalogManifest {
		manifestPrompt := promptui.Prompt{
			Label:   "Manifest path (relative to the documents location)",
			Default: cfg.Catalog.Manifest,
		}
		manifest, err := manifestPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("manifest path: %w", err)
		}
		cfg.Catalog.Manifest = strings.TrimSpace(manifest)
	}

	// 3. Default document.
	defaultDoc := cfg.Docs.DefaultDocument
	if !cfg.IsRemote() {
		defaultDoc = detectDefaultDocument(cfg.Docs.Root)
	}
	docPrompt := promptui.Prompt{
		Label:   "Document to show on start",
		Default: defaultDoc,
	}
	doc, err := docPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default document: %w", err)
	}
	cfg.Docs.DefaultDocument = strings.TrimSpace(doc)

	// 4. Extra exclude patterns for directory scanning.
	if cfg.Catalog.Source == CatalogDir {
		excludePrompt := promptui.Prompt{
			Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
			Default: "",
		}
		excludeStr, err := excludePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("exclude patterns: %w", err)
		}
		if excludeStr != "" {
			cfg.Catalog.Exclude = append(cfg.Catalog.Exclude, splitAndTrim(excludeStr)...)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(DefaultConfigPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
