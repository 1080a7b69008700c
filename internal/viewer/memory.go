package viewer

import "sync"

// NavEntry is an Item plus its active marker, as shown on a surface.
type NavEntry struct {
	Item
	Active bool `json:"active"`
}

// Snapshot is the visible state of a MemorySurface.
type Snapshot struct {
	Nav     []NavEntry
	Content string
}

// ActiveEntry returns the active entry, if any.
func (s Snapshot) ActiveEntry() (NavEntry, bool) {
	for _, e := range s.Nav {
		if e.Active {
			return e, true
		}
	}
	return NavEntry{}, false
}

// MemorySurface keeps navigation and content in memory. It backs
// server-side page rendering, static export and the command line.
type MemorySurface struct {
	mu       sync.RWMutex
	items    []Item
	active   map[string]bool
	content  string
	inserted int
	replaced int
}

// NewMemorySurface creates a surface whose content region starts as initial.
func NewMemorySurface(initial string) *MemorySurface {
	return &MemorySurface{
		active:  map[string]bool{},
		content: initial,
	}
}

func (s *MemorySurface) InsertItems(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
	s.inserted++
}

func (s *MemorySurface) ReplaceContent(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = html
	s.replaced++
}

func (s *MemorySurface) SetItemActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.active[id] = true
	} else {
		delete(s.active, id)
	}
}

// Snapshot copies the current state.
func (s *MemorySurface) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nav := make([]NavEntry, len(s.items))
	for i, it := range s.items {
		nav[i] = NavEntry{Item: it, Active: s.active[it.ID]}
	}
	return Snapshot{Nav: nav, Content: s.content}
}

// Content returns the content region.
func (s *MemorySurface) Content() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// ActiveCount returns how many ids carry the active marker.
func (s *MemorySurface) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

// Inserts returns how many times InsertItems was called.
func (s *MemorySurface) Inserts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inserted
}

// Replacements returns how many times ReplaceContent was called.
func (s *MemorySurface) Replacements() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.replaced
}
