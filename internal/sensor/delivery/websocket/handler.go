package websocket

import (
	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"voice-ordering-kiosk/internal/hub"
	pkgLog "voice-ordering-kiosk/pkg/log"
)

const LogPrefixServeSensor = "internal.sensor.delivery.websocket.ServeSensor"

type handler struct {
	l   pkgLog.Logger
	hub *hub.Hub
}

// ServeSensor registers the connection as a listener and forwards every text
// frame it sends, unparsed, to all other registered connections.
func (h *handler) ServeSensor(c *gin.Context) {
	conn, err := h.hub.Upgrade(c.Writer, c.Request, c.ClientIP())
	if err != nil {
		return
	}
	defer h.hub.Unregister(conn)

	ctx := pkgLog.WithRequestID(c.Request.Context(), conn.ID())
	h.l.Infof(ctx, "%s: sensor stream from %s opened", LogPrefixServeSensor, conn.ClientIP())

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			h.l.Infof(ctx, "%s: sensor stream from %s closed", LogPrefixServeSensor, conn.ClientIP())
			return
		}
		if mt != gorilla.TextMessage {
			continue
		}
		h.hub.BroadcastText(ctx, data, conn)
	}
}
