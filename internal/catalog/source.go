package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/logging"
	"github.com/ziadkadry99/docview/internal/render"
)

// Source supplies catalog entries.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// StaticSource is a fixed list of file names.
type StaticSource struct {
	Files []string
}

// NewStaticSource creates a source over the given file names.
func NewStaticSource(files []string) *StaticSource {
	return &StaticSource{Files: files}
}

// Entries returns one untitled entry per file.
func (s *StaticSource) Entries(_ context.Context) ([]Entry, error) {
	entries := make([]Entry, 0, len(s.Files))
	for _, f := range s.Files {
		entries = append(entries, Entry{Link: f})
	}
	return entries, nil
}

// ManifestSource fetches a JSON array of {title, link} objects.
type ManifestSource struct {
	fetcher fetch.Fetcher
	link    string
}

// NewManifestSource creates a source that reads the manifest at link.
func NewManifestSource(fetcher fetch.Fetcher, link string) *ManifestSource {
	return &ManifestSource{fetcher: fetcher, link: link}
}

// Entries fetches and decodes the manifest.
func (s *ManifestSource) Entries(ctx context.Context) ([]Entry, error) {
	body, err := s.fetcher.Fetch(ctx, s.link)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest %s: %w", s.link, err)
	}
	entries, err := DecodeManifest([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", s.link, err)
	}
	return entries, nil
}

// DecodeManifest parses manifest JSON.
func DecodeManifest(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// EncodeManifest renders entries as indented manifest JSON. Entries without
// a title get their derived label so the manifest is self-describing.
func EncodeManifest(entries []Entry) ([]byte, error) {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Title: e.Label(), Link: e.Link}
	}
	return json.MarshalIndent(out, "", "  ")
}

// DirSource scans a local directory for documents.
type DirSource struct {
	Root    string
	Include []string
	Exclude []string
	logger  *zap.Logger
}

// NewDirSource creates a directory source. Empty include matches everything.
func NewDirSource(root string, include, exclude []string, logger *zap.Logger) *DirSource {
	return &DirSource{
		Root:    root,
		Include: include,
		Exclude: exclude,
		logger:  logging.OrNop(logger),
	}
}

// Entries walks the directory. A YAML front matter title becomes the entry
// title; files whose front matter cannot be read are still listed.
func (s *DirSource) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	fsys := os.DirFS(s.Root)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && matchesAny(p+"/", s.Exclude) {
				return fs.SkipDir
			}
			return nil
		}
		if len(s.Include) > 0 && !matchesAny(p, s.Include) {
			return nil
		}
		if matchesAny(p, s.Exclude) {
			return nil
		}

		entry := Entry{Link: p}
		if data, readErr := fs.ReadFile(fsys, p); readErr == nil {
			if meta, _, fmErr := render.ParseFrontMatter(data); fmErr == nil {
				entry.Title = meta.Title
			} else {
				s.logger.Debug("ignoring front matter", zap.String("link", p), zap.Error(fmErr))
			}
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.Root, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Link < entries[j].Link })
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// matchesAny checks a slash-separated path against doublestar patterns.
// Directory paths carry a trailing slash so "drafts/**" prunes "drafts/".
func matchesAny(p string, patterns []string) bool {
	p = filepath.ToSlash(p)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
		if strings.HasSuffix(p, "/") {
			if ok, _ := doublestar.Match(pattern, strings.TrimSuffix(p, "/")); ok {
				return true
			}
		}
	}
	return false
}
