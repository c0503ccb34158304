package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/services/leaderboard"
)

// upgrader upgrades HTTP connections to the websocket protocol. Origin
// checking is left to the CORS layer; the feed itself carries nothing a
// ranked GET would not also return.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler streams accepted score submissions over a websocket.
type LiveHandler struct {
	feed   *leaderboard.Feed
	logger *slog.Logger
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(feed *leaderboard.Feed, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{feed: feed, logger: logger}
}

// Stream upgrades the connection and writes every accepted submission to
// the client until the client disconnects.
// GET /api/scores/live
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	sub := h.feed.Subscribe()

	// The read pump only detects disconnects; clients send nothing.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.feed.Unsubscribe(sub)
				conn.Close()
				return
			}
		}
	}()

	for record := range sub.C {
		if err := conn.WriteJSON(record); err != nil {
			h.feed.Unsubscribe(sub)
			conn.Close()
			return
		}
	}
	conn.Close()
}
