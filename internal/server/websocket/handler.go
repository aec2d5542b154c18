package websocket

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// upgrader performs the HTTP → WebSocket upgrade. Origin checking is left
// to the reverse proxy in front of the dashboard.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades connections and pumps broadcast frames to each client.
// Clients never send application data; the read loop exists only to observe
// close frames.
type Handler struct {
	bc     *Broadcaster
	logger *slog.Logger

	// writeTimeout bounds each frame write before the connection is
	// considered dead.
	writeTimeout time.Duration
}

// NewHandler creates a Handler backed by bc. writeTimeout ≤ 0 defaults to
// 10 seconds.
func NewHandler(bc *Broadcaster, logger *slog.Logger, writeTimeout time.Duration) *Handler {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{bc: bc, logger: logger, writeTimeout: writeTimeout}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("websocket upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("error", err.Error()),
		)
		return
	}

	id := uuid.NewString()
	client := h.bc.Register(id)
	h.logger.Debug("websocket client connected", slog.String("client_id", id))

	defer func() {
		h.bc.Unregister(id)
		_ = conn.Close()
		h.logger.Debug("websocket client disconnected", slog.String("client_id", id))
	}()

	// Read loop: discard anything the client sends; exit on close or error.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Write pump: deliver broadcast frames until the client goes away or
	// the broadcaster closes the send channel.
	for {
		select {
		case frame, ok := <-client.Send():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(h.writeTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
