package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/Dosada05/tournament-dashboard/realtime"
	"github.com/Dosada05/tournament-dashboard/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	store    *services.EntityStore
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" allows
// any origin.
func NewWebSocketHandler(hub *realtime.Hub, store *services.EntityStore, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &WebSocketHandler{
		hub:    hub,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeWs подключает дашборд к потоку уведомлений.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := realtime.NewClient(h.hub, conn, realtime.DashboardRoom)
	if err := client.Greet(map[string]bool{"hasChanges": h.store.HasChanges()}); err != nil {
		h.logger.Error("failed to build welcome message", slog.Any("error", err))
	}
	if !h.hub.Register(client) {
		conn.Close()
	}
}
