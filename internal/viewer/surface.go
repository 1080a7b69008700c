// Package viewer holds the navigation builder, selection controller and
// content loader of the document viewer. Display is delegated to a Surface.
package viewer

// Item is a rendered navigation entry. ID equals Link.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Surface is the display layer: a navigation region and a content region.
// The controller serialises all calls, so implementations only need to be
// safe against readers of their own state.
type Surface interface {
	// InsertItems appends the navigation list. Called once per controller.
	InsertItems(items []Item)
	// ReplaceContent replaces the whole content region with html.
	ReplaceContent(html string)
	// SetItemActive toggles the active marker on the item with the given id.
	SetItemActive(id string, active bool)
}
