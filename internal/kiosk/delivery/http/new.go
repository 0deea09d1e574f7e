package http

import (
	"github.com/gin-gonic/gin"

	"voice-ordering-kiosk/internal/catalog"
	"voice-ordering-kiosk/internal/conversation"
	"voice-ordering-kiosk/internal/model"
	pkgLog "voice-ordering-kiosk/pkg/log"
)

// Handler is the admin surface used by the display client.
type Handler interface {
	Reset(c *gin.Context)
	Inventory(c *gin.Context)
	Config(c *gin.Context)
}

type handler struct {
	l        pkgLog.Logger
	catalog  *catalog.Catalog
	sessions conversation.Registry
	mode     model.KioskMode
}

// New creates the admin HTTP handler.
func New(l pkgLog.Logger, cat *catalog.Catalog, sessions conversation.Registry, mode model.KioskMode) Handler {
	return &handler{
		l:        l,
		catalog:  cat,
		sessions: sessions,
		mode:     mode,
	}
}
