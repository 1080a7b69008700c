package viewer

import (
	"sort"
	"strings"

	"github.com/ziadkadry99/docview/internal/catalog"
)

// DefaultExtension is the supported document extension.
const DefaultExtension = ".md"

// BuildNavigation filters entries to those whose link ends with ext, sorts
// them by link then title, and labels them. The result is never nil.
func BuildNavigation(entries []catalog.Entry, ext string) []Item {
	if ext == "" {
		ext = DefaultExtension
	}

	kept := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Link, ext) {
			kept = append(kept, e)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Link != kept[j].Link {
			return kept[i].Link < kept[j].Link
		}
		return kept[i].Title < kept[j].Title
	})

	items := make([]Item, 0, len(kept))
	for _, e := range kept {
		items = append(items, Item{
			ID:    e.Link,
			Title: e.Label(),
			Link:  e.Link,
		})
	}
	return items
}
