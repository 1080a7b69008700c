package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/logging"
	"github.com/ziadkadry99/docview/internal/site"
	"github.com/ziadkadry99/docview/internal/viewer"
)

// handlePage renders the viewer for ?doc=<link>, or the default document.
// The page is complete without scripts; the bundled script upgrades it to
// a live session.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	entries, err := s.source.Entries(ctx)
	if err != nil {
		logger.Error("loading catalog", zap.Error(err))
		http.Error(w, "loading catalog: "+err.Error(), http.StatusBadGateway)
		return
	}

	link := r.URL.Query().Get("doc")
	requested := link != ""
	if !requested {
		link = s.cfg.DefaultLink
	}

	surface := viewer.NewMemorySurface("")
	ctrl := viewer.NewController(surface, s.loader, s.controllerOptions(link, logger)...)
	selected := ctrl.Start(ctx, entries)
	ctrl.Wait()

	status := http.StatusOK
	if requested && !selected {
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err = site.RenderPage(w, surface.Snapshot(), site.PageOptions{
		ProjectName: s.cfg.ProjectName,
		HrefFor:     func(link string) string { return "?doc=" + url.QueryEscape(link) },
		HomeHref:    "/",
		AssetBase:   "/assets/",
		Live:        true,
		SocketPath:  "/ws",
		DefaultLink: s.cfg.DefaultLink,
	})
	if err != nil {
		logger.Error("rendering page", zap.Error(err))
	}
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	content, contentType, ok := site.Asset(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	io.WriteString(w, content)
}

// handleCatalog returns the catalog as a JSON manifest.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.source.Entries(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	data, err := catalog.EncodeManifest(entries)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleRaw serves document text as fetched, without rendering.
func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	link := chi.URLParam(r, "*")
	if link == "" {
		http.NotFound(w, r)
		return
	}

	body, err := s.fetcher.Fetch(r.Context(), link)
	if err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) {
			http.Error(w, err.Error(), se.Code)
			return
		}
		logging.FromContext(r.Context()).Warn("fetching raw document", zap.String("link", link), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
