package viewer

import (
	"context"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/logging"
	"github.com/ziadkadry99/docview/internal/render"
)

// ErrorPrefix starts every content load failure message.
const ErrorPrefix = "Error loading content: "

// Loader fetches a document and renders it to HTML.
type Loader struct {
	fetcher  fetch.Fetcher
	renderer render.Renderer
	logger   *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(fetcher fetch.Fetcher, renderer render.Renderer, logger *zap.Logger) *Loader {
	return &Loader{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logging.OrNop(logger),
	}
}

// Fetch retrieves link and renders it.
func (l *Loader) Fetch(ctx context.Context, link string) (string, error) {
	body, err := l.fetcher.Fetch(ctx, link)
	if err != nil {
		return "", err
	}
	out, err := l.renderer.Render(body)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", link, err)
	}
	return out, nil
}

// Load is Fetch with failures turned into displayable content. It never
// returns an error.
func (l *Loader) Load(ctx context.Context, link string) string {
	out, err := l.Fetch(ctx, link)
	if err != nil {
		l.logger.Warn("content load failed", zap.String("link", link), zap.Error(err))
		return ErrorContent(err)
	}
	return out
}

// ErrorContent formats a load failure for the content region.
func ErrorContent(err error) string {
	return "<p>" + ErrorPrefix + html.EscapeString(err.Error()) + "</p>"
}
