// Package fetch retrieves document resources by relative link, either over
// HTTP or from a local directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// Fetcher retrieves the text of the resource at a relative link.
type Fetcher interface {
	Fetch(ctx context.Context, link string) (string, error)
}

// StatusError reports a non-success retrieval status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// HTTPFetcher resolves links against a base URL and GETs them.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher. A zero timeout means requests are
// bounded only by their context.
func NewHTTPFetcher(baseURL string, timeout time.Duration) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	// Relative links resolve against the directory, not the last segment.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTPFetcher{
		base:   u,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch GETs base+link and returns the body. Any status outside 2xx is a
// *StatusError. Links that would leave the base (absolute URLs, a host, or
// ".." past the root) are reported as 404 without a request.
func (f *HTTPFetcher) Fetch(ctx context.Context, link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", link, err)
	}
	if ref.IsAbs() || ref.Host != "" || ref.Opaque != "" {
		return "", &StatusError{Code: http.StatusNotFound}
	}
	name := path.Clean(strings.TrimPrefix(ref.Path, "/"))
	if !fs.ValidPath(name) {
		return "", &StatusError{Code: http.StatusNotFound}
	}
	target := f.base.ResolveReference(&url.URL{Path: name, RawQuery: ref.RawQuery})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// FSFetcher reads links from a file system. Missing files map to a 404
// StatusError so callers see the same failure text as over HTTP.
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher creates a fetcher over fsys.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

// NewDirFetcher creates a fetcher rooted at a local directory.
func NewDirFetcher(dir string) *FSFetcher {
	return NewFSFetcher(os.DirFS(dir))
}

// Fetch reads the file named by link.
func (f *FSFetcher) Fetch(ctx context.Context, link string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := path.Clean(strings.TrimPrefix(link, "/"))
	if !fs.ValidPath(name) {
		return "", &StatusError{Code: http.StatusNotFound}
	}

	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &StatusError{Code: http.StatusNotFound}
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", &StatusError{Code: http.StatusForbidden}
		}
		return "", err
	}
	return string(data), nil
}

// New picks an HTTPFetcher for http(s) roots and an FSFetcher otherwise.
func New(root string, timeout time.Duration) (Fetcher, error) {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return NewHTTPFetcher(root, timeout)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("docs root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs root %s is not a directory", root)
	}
	return NewDirFetcher(root), nil
}
