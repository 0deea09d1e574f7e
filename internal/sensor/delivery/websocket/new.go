// Package websocket relays out-of-band sensor telemetry to every listener.
package websocket

import (
	"github.com/gin-gonic/gin"

	"voice-ordering-kiosk/internal/hub"
	pkgLog "voice-ordering-kiosk/pkg/log"
)

// Handler serves /ws/sensor.
type Handler interface {
	ServeSensor(c *gin.Context)
}

func New(l pkgLog.Logger, h *hub.Hub) Handler {
	return &handler{l: l, hub: h}
}
