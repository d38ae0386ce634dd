package ws

import (
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/streamvault/storefront/internal/branding"
)

// Handler provides the WebSocket endpoint for live storefront updates.
type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

// Compile-time check that Handler implements the server interface.
var _ interface {
	RegisterRoutes(mux *http.ServeMux)
} = (*Handler)(nil)

// NewHandler creates a WebSocket handler backed by its own hub.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		hub:    NewHub(logger),
		logger: logger,
	}
}

// RegisterRoutes registers WebSocket routes on the server mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ws", h.handleStream)
}

// handleStream upgrades the connection to WebSocket and streams storefront
// update events. The endpoint is read-only and unauthenticated, like the
// rest of the storefront surface.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan Message, 256),
		logger: h.logger,
	}

	h.hub.Register(client)

	// Run read and write pumps. When either exits, clean up.
	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	// readPump blocks until client disconnects.
	client.readPump(ctx)

	// Client disconnected -- stop write pump and unregister.
	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

// BroadcastTheme pushes a freshly applied theme state to all connected
// clients so open storefronts restyle without a reload.
func (h *Handler) BroadcastTheme(theme branding.ThemeState) {
	h.hub.Broadcast(Message{
		Type:      MessageBrandingUpdated,
		Timestamp: time.Now(),
		Data:      BrandingUpdatedData{Theme: theme},
	})
}

// BroadcastCatalogChanged tells clients to re-request the catalog.
func (h *Handler) BroadcastCatalogChanged(reason string) {
	h.hub.Broadcast(Message{
		Type:      MessageCatalogChanged,
		Timestamp: time.Now(),
		Data:      CatalogChangedData{Reason: reason},
	})
}

// ClientCount reports the number of connected clients.
func (h *Handler) ClientCount() int {
	return h.hub.ClientCount()
}
