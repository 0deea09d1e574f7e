package httpserver

import (
	"context"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	kioskHTTP "voice-ordering-kiosk/internal/kiosk/delivery/http"
	"voice-ordering-kiosk/internal/middleware"
	"voice-ordering-kiosk/internal/model"
	"voice-ordering-kiosk/pkg/response"
)

func (srv HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()

	srv.gin.NoRoute(response.NotFound)
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l, srv.allowedOrigins)
	srv.gin.Use(mw.Recovery(), mw.RequestLogger(), mw.CORS())

	ctx := context.Background()
	if len(srv.allowedOrigins) == 0 {
		srv.l.Infof(ctx, "CORS mode: allow all (%s)", srv.environment)
	} else {
		srv.l.Infof(ctx, "CORS mode: %d allowed origin(s)", len(srv.allowedOrigins))
	}
	if srv.environment == string(model.EnvironmentProduction) && len(srv.allowedOrigins) == 0 {
		srv.l.Warnf(ctx, "CORS allows every origin in production")
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	if srv.kioskHandler != nil {
		kioskHTTP.RegisterRoutes(srv.gin, srv.kioskHandler)
		srv.l.Infof(ctx, "Kiosk routes registered at /reset_conversation, /inventory, /config")
	} else {
		srv.l.Infof(ctx, "Kiosk handler not configured, skipping admin routes")
	}

	if srv.orderHandler != nil {
		srv.gin.GET("/ws/audio", srv.orderHandler.ServeOrders)
		srv.l.Infof(ctx, "Order stream registered at GET /ws/audio")
	} else {
		srv.l.Infof(ctx, "Order handler not configured, skipping /ws/audio")
	}

	if srv.sensorHandler != nil {
		srv.gin.GET("/ws/sensor", srv.sensorHandler.ServeSensor)
		srv.l.Infof(ctx, "Sensor stream registered at GET /ws/sensor")
	} else {
		srv.l.Infof(ctx, "Sensor handler not configured, skipping /ws/sensor")
	}
}
