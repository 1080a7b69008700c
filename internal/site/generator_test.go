package site

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/progress"
	"github.com/ziadkadry99/docview/internal/render"
	"github.com/ziadkadry99/docview/internal/viewer"
)

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing html: %v", err)
	}
	return doc
}

func TestRenderPage(t *testing.T) {
	snap := viewer.Snapshot{
		Nav: []viewer.NavEntry{
			{Item: viewer.Item{ID: "README.md", Title: "Readme", Link: "README.md"}, Active: true},
			{Item: viewer.Item{ID: "kubernetes-pod.md", Title: "Kubernetes Pod", Link: "kubernetes-pod.md"}},
		},
		Content: `<h1 id="hi">Hi</h1>`,
	}

	var buf bytes.Buffer
	err := RenderPage(&buf, snap, PageOptions{
		ProjectName: "Cloud Notes",
		HrefFor:     func(link string) string { return "?doc=" + link },
		AssetBase:   "/assets/",
		Live:        true,
		SocketPath:  "/ws",
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	doc := parse(t, buf.String())
	if got := doc.Find("title").Text(); got != "Readme — Cloud Notes" {
		t.Errorf("title = %q", got)
	}
	if n := doc.Find("#nav-menu a.active").Length(); n != 1 {
		t.Errorf("active links = %d, want 1", n)
	}
	if got := doc.Find("#nav-menu a.active").Text(); got != "Readme" {
		t.Errorf("active link text = %q", got)
	}
	if href, _ := doc.Find(`a[data-link="kubernetes-pod.md"]`).Attr("href"); href != "?doc=kubernetes-pod.md" {
		t.Errorf("href = %q", href)
	}
	if got := doc.Find("#content h1#hi").Text(); got != "Hi" {
		t.Errorf("content heading = %q", got)
	}
	if src, _ := doc.Find("script").Attr("src"); src != "/assets/viewer.js" {
		t.Errorf("script src = %q", src)
	}
}

func TestRenderPageStaticHasNoScript(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, viewer.Snapshot{}, PageOptions{ProjectName: "Docs"}); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	doc := parse(t, buf.String())
	if doc.Find("script").Length() != 0 {
		t.Error("static page should not include the session script")
	}
	if doc.Find("#nav-menu a.active").Length() != 0 {
		t.Error("no active marker expected")
	}
}

func TestExporterGenerate(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"README.md":         "# Welcome\n\nSee [pods](kubernetes-pod.md).",
		"kubernetes-pod.md": "# Pods",
		"guides/intro.md":   "# Intro",
		"notes.txt":         "skip me",
	})
	out := filepath.Join(t.TempDir(), "site")
	var log bytes.Buffer

	e := &Exporter{
		Source:      catalog.NewDirSource(root, nil, nil, nil),
		Loader:      viewer.NewLoader(fetch.NewDirFetcher(root), render.NewMarkdown(render.Options{}), nil),
		OutputDir:   out,
		ProjectName: "Cloud Notes",
		Extension:   ".md",
		DefaultLink: "README.md",
		Reporter:    progress.NewLineReporter(&log),
	}
	n, err := e.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != 3 {
		t.Errorf("pages = %d, want 3", n)
	}
	for _, line := range []string{"export: 3 pages", "[3/3] kubernetes-pod.md", "export: wrote 3 pages"} {
		if !strings.Contains(log.String(), line) {
			t.Errorf("progress output missing %q:\n%s", line, log.String())
		}
	}

	for _, p := range []string{"index.html", "README.html", "kubernetes-pod.html", "guides/intro.html", "style.css"} {
		if _, err := os.Stat(filepath.Join(out, p)); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "notes.html")); err == nil {
		t.Error("non-markdown files must not be exported")
	}

	data, err := os.ReadFile(filepath.Join(out, "guides", "intro.html"))
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, string(data))
	if n := doc.Find("#nav-menu a.active").Length(); n != 1 {
		t.Errorf("active links = %d, want 1", n)
	}
	if href, _ := doc.Find("#nav-menu a.active").Attr("href"); href != "../guides/intro.html" {
		t.Errorf("active href = %q", href)
	}
	if href, _ := doc.Find(`link[rel="stylesheet"]`).Attr("href"); href != "../style.css" {
		t.Errorf("stylesheet href = %q", href)
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	idoc := parse(t, string(index))
	if got := idoc.Find("#nav-menu a.active").Text(); got != "Readme" {
		t.Errorf("index active = %q", got)
	}
	if href, _ := idoc.Find(`#content a`).Attr("href"); href != "kubernetes-pod.html" {
		t.Errorf("content link not rewritten: %q", href)
	}
}

func TestExporterWithoutDefault(t *testing.T) {
	root := writeDocs(t, map[string]string{"kubernetes-pod.md": "# Pods"})
	out := t.TempDir()

	e := &Exporter{
		Source:      catalog.NewDirSource(root, nil, nil, nil),
		Loader:      viewer.NewLoader(fetch.NewDirFetcher(root), render.NewMarkdown(render.Options{}), nil),
		OutputDir:   out,
		ProjectName: "Docs",
		DefaultLink: "README.md",
	}
	if _, err := e.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, string(data))
	if doc.Find("#nav-menu .nav-list a").Length() != 1 {
		t.Error("index should list the navigation")
	}
	if doc.Find("#nav-menu a.active").Length() != 0 {
		t.Error("index without default document should have no active marker")
	}
	if strings.TrimSpace(doc.Find("#content").Text()) != "" {
		t.Error("index content should be empty")
	}
}

func TestExporterEmptyCatalog(t *testing.T) {
	e := &Exporter{
		Source:    catalog.NewStaticSource([]string{"image.png"}),
		OutputDir: t.TempDir(),
	}
	if _, err := e.Generate(context.Background()); err == nil {
		t.Error("expected error for a catalog without documents")
	}
}

func TestMdPathToHTML(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"README.md", "README.html"},
		{"guides/intro.md", "guides/intro.html"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := mdPathToHTML(tt.input, ".md"); got != tt.want {
			t.Errorf("mdPathToHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRewriteDocLinks(t *testing.T) {
	input := `<p><a href="kubernetes-pod.md">pods</a> and <a href="other.md#section">section</a> ` +
		`and <a href="guides/intro.md">intro</a> and <a href="https://github.com/x/README.md">upstream</a> ` +
		`and <a href="//cdn.example.com/notes.md">cdn</a></p>`
	doc := parse(t, rewriteDocLinks(input, ".md"))

	tests := []struct {
		text, want string
	}{
		{"pods", "kubernetes-pod.html"},
		{"section", "other.html#section"},
		{"intro", "guides/intro.html"},
		{"upstream", "https://github.com/x/README.md"},
		{"cdn", "//cdn.example.com/notes.md"},
	}
	for _, tt := range tests {
		a := doc.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool { return s.Text() == tt.text })
		if href, _ := a.Attr("href"); href != tt.want {
			t.Errorf("%s: href = %q, want %q", tt.text, href, tt.want)
		}
	}
}

func TestRewriteDocLinksLeavesOtherContent(t *testing.T) {
	input := `<p>no links here, just README.md"</p>`
	if got := rewriteDocLinks(input, ".md"); got != input {
		t.Errorf("content changed: %q", got)
	}
}

func TestBasePathFor(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"index.html", ""},
		{"guides/intro.html", "../"},
		{"a/b/c.html", "../../"},
	}
	for _, tt := range tests {
		if got := basePathFor(tt.input); got != tt.want {
			t.Errorf("basePathFor(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
