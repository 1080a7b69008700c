package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/logging"
)

// ErrUnknownItem is returned when selecting a link that is not in the
// navigation list.
var ErrUnknownItem = errors.New("no navigation item for link")

// RacePolicy decides which of several overlapping loads is displayed.
type RacePolicy int

const (
	// LatestSelection discards loads superseded by a newer selection.
	LatestSelection RacePolicy = iota
	// LastResponse applies every load when it completes.
	LastResponse
)

// Option configures a Controller.
type Option func(*Controller)

// WithRacePolicy sets the race policy. The default is LatestSelection.
func WithRacePolicy(p RacePolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithDefaultLink sets the document auto-selected by Start.
func WithDefaultLink(link string) Option {
	return func(c *Controller) { c.defaultLink = link }
}

// WithExtension sets the supported document extension.
func WithExtension(ext string) Option {
	return func(c *Controller) { c.ext = ext }
}

// WithLogger sets the controller's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logging.OrNop(logger) }
}

// Controller tracks the active navigation item and drives content loads.
type Controller struct {
	surface     Surface
	loader      *Loader
	logger      *zap.Logger
	policy      RacePolicy
	defaultLink string
	ext         string

	mu         sync.Mutex
	items      []Item
	byLink     map[string]Item
	active     *Item
	generation uint64

	inflight sync.WaitGroup
}

// NewController creates a controller drawing on surface.
func NewController(surface Surface, loader *Loader, opts ...Option) *Controller {
	c := &Controller{
		surface:     surface,
		loader:      loader,
		logger:      zap.NewNop(),
		policy:      LatestSelection,
		defaultLink: "README.md",
		ext:         DefaultExtension,
		byLink:      map[string]Item{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start builds the navigation from entries, inserts it into the surface and
// auto-selects the default document if it is listed. It returns whether a
// default document was selected.
func (c *Controller) Start(ctx context.Context, entries []catalog.Entry) bool {
	items := BuildNavigation(entries, c.ext)

	c.mu.Lock()
	c.items = items
	c.byLink = make(map[string]Item, len(items))
	for _, it := range items {
		c.byLink[it.Link] = it
	}
	c.surface.InsertItems(items)
	c.mu.Unlock()

	c.logger.Debug("navigation built", zap.Int("items", len(items)))

	if c.defaultLink == "" {
		return false
	}
	if err := c.Select(ctx, c.defaultLink); err != nil {
		c.logger.Debug("default document not listed", zap.String("link", c.defaultLink))
		return false
	}
	return true
}

// Select makes the item for link active and starts loading its content.
// The marker update completes before Select returns; the load does not.
func (c *Controller) Select(ctx context.Context, link string) error {
	c.mu.Lock()
	item, ok := c.byLink[link]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownItem
	}

	if c.active != nil {
		c.surface.SetItemActive(c.active.ID, false)
	}
	c.surface.SetItemActive(item.ID, true)
	c.active = &item
	c.generation++
	gen := c.generation
	c.inflight.Add(1)
	c.mu.Unlock()

	c.logger.Debug("selected", zap.String("link", link), zap.Uint64("generation", gen))

	go c.load(ctx, item, gen)
	return nil
}

func (c *Controller) load(ctx context.Context, item Item, gen uint64) {
	defer c.inflight.Done()

	content := c.loader.Load(ctx, item.Link)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.policy == LatestSelection && gen != c.generation {
		c.logger.Debug("discarding stale load",
			zap.String("link", item.Link),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", c.generation),
		)
		return
	}
	c.surface.ReplaceContent(content)
}

// Active returns the active item, if any.
func (c *Controller) Active() (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Item{}, false
	}
	return *c.active, true
}

// Items returns a copy of the navigation list.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Wait blocks until every started load has been applied or discarded.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// ParseRacePolicy maps a configuration value to a RacePolicy.
func ParseRacePolicy(s string) (RacePolicy, error) {
	switch s {
	case "", "latest-selection":
		return LatestSelection, nil
	case "last-response":
		return LastResponse, nil
	}
	return LatestSelection, fmt.Errorf("unknown race policy %q", s)
}
