package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/logging"
	"github.com/ziadkadry99/docview/internal/viewer"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Frame operations sent to the browser.
const (
	opInsertItems    = "insert_items"
	opSetActive      = "set_active"
	opReplaceContent = "replace_content"
	opError          = "error"
)

// frame is the outgoing WebSocket message format. Only the fields of its op
// are meaningful.
type frame struct {
	Op      string        `json:"op"`
	Items   []viewer.Item `json:"items,omitempty"`
	ID      string        `json:"id,omitempty"`
	Active  bool          `json:"active"`
	HTML    string        `json:"html"`
	Message string        `json:"message,omitempty"`
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type string `json:"type"` // "select"
	Link string `json:"link"`
}

// socketSurface is a viewer.Surface that forwards each operation to the
// browser as a frame.
type socketSurface struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *zap.Logger
}

func (s *socketSurface) InsertItems(items []viewer.Item) {
	s.send(frame{Op: opInsertItems, Items: items})
}

func (s *socketSurface) ReplaceContent(html string) {
	s.send(frame{Op: opReplaceContent, HTML: html})
}

func (s *socketSurface) SetItemActive(id string, active bool) {
	s.send(frame{Op: opSetActive, ID: id, Active: active})
}

func (s *socketSurface) sendError(message string) {
	s.send(frame{Op: opError, Message: message})
}

// send serialises writes; gorilla connections allow one concurrent writer.
func (s *socketSurface) send(f frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(f); err != nil {
		s.logger.Debug("websocket write", zap.String("op", f.Op), zap.Error(err))
	}
}

// handleSession runs one live viewer session per socket. The controller is
// owned by the session and its loads are cancelled when the socket closes.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.FromContext(r.Context()).Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := logging.FromContext(r.Context()).With(zap.String("session_id", uuid.NewString()))
	ctx, cancel := context.WithCancel(logging.WithLogger(r.Context(), logger))
	surface := &socketSurface{conn: conn, logger: logger}

	entries, err := s.source.Entries(ctx)
	if err != nil {
		cancel()
		logger.Error("loading catalog", zap.Error(err))
		surface.sendError("loading catalog: " + err.Error())
		return
	}

	link := r.URL.Query().Get("doc")
	requested := link != ""
	if !requested {
		link = s.cfg.DefaultLink
	}

	ctrl := viewer.NewController(surface, s.loader, s.controllerOptions(link, logger)...)
	defer func() {
		cancel()
		ctrl.Wait()
	}()

	logger.Info("session started")
	if !ctrl.Start(ctx, entries) && requested {
		surface.sendError("unknown document: " + link)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read", zap.Error(err))
			}
			logger.Info("session closed")
			return
		}

		var req clientMessage
		if err := json.Unmarshal(msg, &req); err != nil {
			surface.sendError("invalid message format")
			continue
		}

		switch req.Type {
		case "select":
			if err := ctrl.Select(ctx, req.Link); err != nil {
				if errors.Is(err, viewer.ErrUnknownItem) {
					surface.sendError("unknown document: " + req.Link)
					continue
				}
				surface.sendError(err.Error())
			}
		default:
			surface.sendError("unknown message type: " + req.Type)
		}
	}
}
