// Package catalog supplies the list of documents available for viewing.
package catalog

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Entry is one document in the catalog. An empty Title means the display
// label is derived from Link.
type Entry struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Label returns the explicit title, or the prettified link.
func (e Entry) Label() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	return PrettifyTitle(e.Link)
}

// PrettifyTitle derives a display title from a file link: the base name
// without extension, hyphens as spaces, each word capitalised.
//
//	"kubernetes-pod.md" -> "Kubernetes Pod"
//	"README.md"         -> "Readme"
func PrettifyTitle(link string) string {
	name := path.Base(link)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Split(name, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
