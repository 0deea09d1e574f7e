package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the admin endpoints at the root of the router, where the display client expects them.
func RegisterRoutes(r gin.IRoutes, h Handler) {
	r.POST("/reset_conversation", h.Reset)
	r.GET("/inventory", h.Inventory)
	r.GET("/config", h.Config)
}
