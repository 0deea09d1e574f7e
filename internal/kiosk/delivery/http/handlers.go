package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voice-ordering-kiosk/pkg/response"
)

var errNoCatalog = errors.New("catalog not loaded")

// Reset godoc
// @Summary     Reset the conversation
// @Description Discards the current session. The next utterance starts a fresh, re-primed dialogue. Idempotent.
// @Tags        Kiosk
// @Produce     json
// @Success     200 {object} resetResp
// @Router      /reset_conversation [POST]
func (h *handler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	h.sessions.Reset(ctx)
	h.l.Infof(ctx, "%s: conversation reset by %s", LogPrefixReset, c.ClientIP())

	c.JSON(http.StatusOK, resetResp{Status: statusReset})
}

// Inventory godoc
// @Summary     Get the menu
// @Description Returns the full menu catalog as loaded at startup.
// @Tags        Kiosk
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /inventory [GET]
func (h *handler) Inventory(c *gin.Context) {
	if h.catalog == nil {
		h.l.Errorf(c.Request.Context(), "%s: %v", LogPrefixInventory, errNoCatalog)
		response.InternalError(c, errNoCatalog)
		return
	}

	c.JSON(http.StatusOK, h.catalog)
}

// Config godoc
// @Summary     Get display configuration
// @Description Returns the kiosk mode and the proximity distance that wakes the display.
// @Tags        Kiosk
// @Produce     json
// @Success     200 {object} configResp
// @Router      /config [GET]
func (h *handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.newConfigResp())
}
