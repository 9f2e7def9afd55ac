// Package live streams stored readings and raised alerts to websocket
// subscribers.
package live

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/greentech-systems/greenhouse-server/internal/auth"
)

func NewHandler(hub *Hub, originPatterns []string) *Handler {
	h := Handler{
		hub:            hub,
		originPatterns: originPatterns,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /ws", auth.RequireLoginAPI(http.HandlerFunc(h.handlerLiveWS)))
}

func (h *Handler) handlerLiveWS(writer http.ResponseWriter, request *http.Request) {
	slog.Info(">>handlerLiveWS: new incoming connection")

	opts := &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	}
	c, err := websocket.Accept(writer, request, opts)
	if err != nil {
		slog.Error("websocket accept error:", "error", err)
		return
	}

	defer c.Close(websocket.StatusInternalError, "Unexpected connection close")

	ctx := c.CloseRead(request.Context())

	h.streamEvents(ctx, c)

	slog.Info("<<handlerLiveWS")
}

func (h *Handler) streamEvents(ctx context.Context, c *websocket.Conn) {
	slog.Info(">>streamEvents")
	defer slog.Info("<<streamEvents")

	events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(events)

	heartbeatTicker := time.NewTicker(30 * time.Second)
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("streamEvents: client disconnected")
			c.Close(websocket.StatusNormalClosure, "Connection closed")
			return

		case event := <-events:
			err := wsjson.Write(ctx, c, event)
			if err != nil {
				slog.Error("streamEvents: error writing to client", "error", err)
				c.Close(websocket.StatusInternalError, "error writing event")
				return
			}

		case <-heartbeatTicker.C:
			err := c.Ping(ctx)
			if err != nil {
				slog.Error("streamEvents: error sending ping", "error", err)
				c.Close(websocket.StatusInternalError, "error sending ping")
				return
			}
		}
	}
}
