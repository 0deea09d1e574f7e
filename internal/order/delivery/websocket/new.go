package websocket

import (
	"github.com/gin-gonic/gin"

	"voice-ordering-kiosk/internal/conversation"
	"voice-ordering-kiosk/internal/hub"
	"voice-ordering-kiosk/internal/order"
	pkgLog "voice-ordering-kiosk/pkg/log"
)

// Handler is the order stream gateway.
type Handler interface {
	ServeOrders(c *gin.Context)
}

type Options struct {
	// UtterancesPerMin limits utterances per client IP. 0 disables the limit.
	UtterancesPerMin int
	// ResetOnFinalize discards the session once a finalize_order frame is sent.
	ResetOnFinalize bool
}

// New creates the gateway for /ws/audio. menu prices the cart lines it emits.
func New(l pkgLog.Logger, h *hub.Hub, sessions conversation.Registry, menu order.Menu, opts Options) Handler {
	return &handler{
		l:               l,
		hub:             h,
		sessions:        sessions,
		menu:            menu,
		limiter:         newRateLimiter(opts.UtterancesPerMin),
		resetOnFinalize: opts.ResetOnFinalize,
	}
}
