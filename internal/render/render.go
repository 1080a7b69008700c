package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown source into an HTML fragment.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Options configures a Markdown renderer.
type Options struct {
	// HighlightStyle is a chroma style name; empty disables highlighting.
	HighlightStyle string
	// Sanitize scrubs the output with a user-generated-content policy.
	Sanitize bool
}

// Markdown renders with goldmark. It is safe for concurrent use.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown builds a goldmark-backed renderer.
func NewMarkdown(opts Options) *Markdown {
	exts := []goldmark.Extender{extension.GFM}
	if opts.HighlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}

	m := &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
	if opts.Sanitize {
		m.policy = newContentPolicy()
	}
	return m
}

// Render strips any YAML front matter and converts the remaining body.
func (m *Markdown) Render(markdown string) (string, error) {
	body := StripFrontMatter([]byte(markdown))

	var buf bytes.Buffer
	if err := m.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	if m.policy != nil {
		return m.policy.Sanitize(buf.String()), nil
	}
	return buf.String(), nil
}

// Meta is the subset of front matter the viewer understands.
type Meta struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// ParseFrontMatter splits source into its front matter and markdown body.
// Source without front matter returns a zero Meta and the input unchanged.
func ParseFrontMatter(source []byte) (Meta, []byte, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, source, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	return meta, body, nil
}

// StripFrontMatter returns source without its front matter block. Malformed
// front matter is left in place and rendered as text.
func StripFrontMatter(source []byte) []byte {
	_, body, err := ParseFrontMatter(source)
	if err != nil {
		return source
	}
	return body
}

// newContentPolicy allows what goldmark emits for GFM and highlighted code.
func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").OnElements("pre", "code", "span", "div")
	policy.AllowAttrs("style").OnElements("pre", "span")
	policy.AllowAttrs("type", "checked", "disabled").OnElements("input")
	policy.AllowElements("input")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
