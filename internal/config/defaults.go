package config

// DefaultFiles is the built-in article list used by the static catalog source.
var DefaultFiles = []string{
	"app-modernization-patterns.md",
	"cloud-deployment-models.md",
	"cloud-native-stack.md",
	"cncf-overview.md",
	"devops-tools-study-plan.md",
	"kubernetes-networking-explained.md",
	"kubernetes-objects-overview.md",
	"kubernetes-pod.md",
	"kubernetes-services.md",
	"kubernetes-workloads-explained.md",
	"kubernetes-workloads.md",
	"modern-dev-practices.md",
	"monolithic-vs-cloud-native.md",
	"README.md",
	"test-driven-development.md",
}

// DefaultExcludes are glob patterns skipped by the directory catalog source.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"_*/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title: "Documentation",
		Docs: DocsConfig{
			Root:            ".",
			Extension:       ".md",
			DefaultDocument: "README.md",
		},
		Catalog: CatalogConfig{
			Source:   CatalogDir,
			Files:    DefaultFiles,
			Manifest: "manifest.json",
			Include:  []string{"**/*.md"},
			Exclude:  DefaultExcludes,
		},
		Render: RenderConfig{
			HighlightStyle: "github",
		},
		Viewer: ViewerConfig{
			RacePolicy: RaceLatestSelection,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
