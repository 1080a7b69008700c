package site

import (
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/docview/internal/viewer"
)

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// PageOptions controls how a snapshot is turned into a page.
type PageOptions struct {
	ProjectName string
	// HrefFor maps a document link to the href used in the navigation.
	HrefFor   func(link string) string
	HomeHref  string
	AssetBase string
	// Live pages include the session script connecting to SocketPath.
	// DefaultLink is reselected when history returns to a URL without ?doc=.
	Live        bool
	SocketPath  string
	DefaultLink string
}

type navLink struct {
	Title  string
	Link   string
	Href   string
	Active bool
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Nav         []navLink
	Content     template.HTML
	HomeHref    string
	AssetBase   string
	Live        bool
	SocketPath  string
	DefaultLink string
}

// RenderPage writes the full HTML page for a surface snapshot. Content is
// trusted: it comes from the renderer or from viewer.ErrorContent.
func RenderPage(w io.Writer, snap viewer.Snapshot, opts PageOptions) error {
	hrefFor := opts.HrefFor
	if hrefFor == nil {
		hrefFor = func(link string) string { return link }
	}

	data := pageData{
		Title:       opts.ProjectName,
		ProjectName: opts.ProjectName,
		Content:     template.HTML(snap.Content),
		HomeHref:    opts.HomeHref,
		AssetBase:   opts.AssetBase,
		Live:        opts.Live,
		SocketPath:  opts.SocketPath,
		DefaultLink: opts.DefaultLink,
	}
	if data.HomeHref == "" {
		data.HomeHref = "./"
	}
	for _, e := range snap.Nav {
		data.Nav = append(data.Nav, navLink{
			Title:  e.Title,
			Link:   e.Link,
			Href:   hrefFor(e.Link),
			Active: e.Active,
		})
		if e.Active {
			data.Title = e.Title
		}
	}

	return pageTmpl.Execute(w, data)
}

// mdPathToHTML converts a markdown path to its HTML equivalent.
func mdPathToHTML(p, ext string) string {
	if strings.HasSuffix(p, ext) {
		return strings.TrimSuffix(p, ext) + ".html"
	}
	return p
}

// rewriteDocLinks points relative in-content links at exported pages
// instead of markdown sources. Links with a scheme or host are left alone.
func rewriteDocLinks(content, ext string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	changed := false
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u, err := url.Parse(href)
		if err != nil || u.IsAbs() || u.Host != "" || !strings.HasSuffix(u.Path, ext) {
			return
		}
		u.Path = mdPathToHTML(u.Path, ext)
		a.SetAttr("href", u.String())
		changed = true
	})
	if !changed {
		return content
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return content
	}
	return out
}

// basePathFor returns the "../" prefix leading from a page back to the root.
func basePathFor(htmlRelPath string) string {
	return strings.Repeat("../", strings.Count(htmlRelPath, "/"))
}

// Asset returns a bundled asset and its content type.
func Asset(name string) (content, contentType string, ok bool) {
	switch name {
	case "style.css":
		return cssContent, "text/css; charset=utf-8", true
	case "viewer.js":
		return jsContent, "text/javascript; charset=utf-8", true
	}
	return "", "", false
}
