package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/logging"
	"github.com/ziadkadry99/docview/internal/progress"
	"github.com/ziadkadry99/docview/internal/viewer"
)

// Exporter writes one static HTML page per navigation item. Each page is
// produced by a fresh controller that selects that item, so the exported
// navigation carries exactly one active marker.
type Exporter struct {
	Source      catalog.Source
	Loader      *viewer.Loader
	OutputDir   string
	ProjectName string
	Extension   string
	DefaultLink string
	Reporter    progress.Reporter
	Logger      *zap.Logger
}

// Generate builds the static site. Returns the number of document pages written.
func (e *Exporter) Generate(ctx context.Context) (int, error) {
	ext := e.Extension
	if ext == "" {
		ext = viewer.DefaultExtension
	}
	logger := logging.OrNop(e.Logger)

	entries, err := e.Source.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading catalog: %w", err)
	}
	items := viewer.BuildNavigation(entries, ext)
	if len(items) == 0 {
		return 0, fmt.Errorf("no %s documents in catalog", ext)
	}

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(e.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}

	start := time.Now()
	if e.Reporter != nil {
		e.Reporter.Begin(len(items))
	}

	wroteIndex := false
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		htmlRelPath := mdPathToHTML(item.Link, ext)
		snap, err := e.snapshot(ctx, entries, item.Link)
		if err != nil {
			return i, fmt.Errorf("exporting %s: %w", item.Link, err)
		}
		if err := e.writePage(snap, htmlRelPath, ext); err != nil {
			return i, fmt.Errorf("writing %s: %w", htmlRelPath, err)
		}
		if item.Link == e.DefaultLink {
			if err := e.writePage(snap, "index.html", ext); err != nil {
				return i, fmt.Errorf("writing index.html: %w", err)
			}
			wroteIndex = true
		}
		logger.Debug("exported page", zap.String("link", item.Link), zap.String("path", htmlRelPath))
		if e.Reporter != nil {
			e.Reporter.PageDone(item.Link)
		}
	}

	// Without a default document the index is navigation only.
	if !wroteIndex {
		snap, err := e.snapshot(ctx, entries, "")
		if err != nil {
			return len(items), err
		}
		if err := e.writePage(snap, "index.html", ext); err != nil {
			return len(items), fmt.Errorf("writing index.html: %w", err)
		}
	}

	if e.Reporter != nil {
		e.Reporter.End(len(items), time.Since(start))
	}
	return len(items), nil
}

// snapshot runs a controller that selects link (nothing when empty) and
// returns the settled surface.
func (e *Exporter) snapshot(ctx context.Context, entries []catalog.Entry, link string) (viewer.Snapshot, error) {
	surface := viewer.NewMemorySurface("")
	ctrl := viewer.NewController(surface, e.Loader,
		viewer.WithDefaultLink(link),
		viewer.WithExtension(e.Extension),
		viewer.WithLogger(e.Logger),
	)
	selected := ctrl.Start(ctx, entries)
	ctrl.Wait()
	if link != "" && !selected {
		return viewer.Snapshot{}, errors.New("document missing from navigation")
	}
	return surface.Snapshot(), nil
}

func (e *Exporter) writePage(snap viewer.Snapshot, htmlRelPath, ext string) error {
	outPath := filepath.Join(e.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	basePath := basePathFor(htmlRelPath)
	snap.Content = rewriteDocLinks(snap.Content, ext)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return RenderPage(f, snap, PageOptions{
		ProjectName: e.ProjectName,
		HrefFor:     func(link string) string { return basePath + mdPathToHTML(link, ext) },
		HomeHref:    basePath + "index.html",
		AssetBase:   basePath,
	})
}
