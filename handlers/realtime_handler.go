package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/utdisa/isa-portal/realtime"
)

var realtimeRooms = []string{realtime.RoomHousingListings}

type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewRealtimeHandler accepts websocket origins from allowedOrigins; "*" allows any.
func NewRealtimeHandler(hub *realtime.Hub, allowedOrigins []string, logger *slog.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}

// ServeWs godoc
// @Summary      Subscribe to a realtime room
// @Description  Upgrades to a websocket that receives {type, payload, room} messages.
// @Tags         realtime
// @Param        room path string true "room name, e.g. housing_listings"
// @Success      101
// @Failure      404 {object} map[string]string
// @Router       /realtime/v1/{room} [get]
func (h *RealtimeHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if !slices.Contains(realtimeRooms, room) {
		notFoundResponse(w, r)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.String("room", room), slog.Any("error", err))
		return
	}

	if !h.hub.Register(realtime.NewClient(h.hub, conn, room)) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
	}
}
