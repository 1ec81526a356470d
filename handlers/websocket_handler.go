package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rookieryder/golf-backend/live"
	"github.com/rookieryder/golf-backend/services"
)

// SharedRoundHandler serves the public, token-addressed view of a round.
type SharedRoundHandler struct {
	roundService services.RoundService
	hub          *live.Hub
	upgrader     websocket.Upgrader
}

// NewSharedRoundHandler builds the handler. allowedOrigins of ["*"] or empty accepts any origin.
func NewSharedRoundHandler(rs services.RoundService, hub *live.Hub, allowedOrigins []string) *SharedRoundHandler {
	return &SharedRoundHandler{
		roundService: rs,
		hub:          hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

func (h *SharedRoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.roundService.GetSharedRound(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ServeWs подписывает клиента на обновления расшаренного раунда.
// Первым сообщением клиент получает текущую сводку.
func (h *SharedRoundHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	summary, err := h.roundService.GetSharedRound(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Int("round_id", summary.ID), slog.Any("error", err))
		return
	}

	room := live.RoomForRound(summary.ID)
	client := live.NewClient(h.hub, conn, room)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	client.SendMessage(live.Message{Type: live.MessageRoundSummaryUpdated, Payload: summary, RoomID: room})

	go client.WritePump()
	go client.ReadPump()
}
