package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"voice-ordering-kiosk/internal/hub"
	kioskHTTP "voice-ordering-kiosk/internal/kiosk/delivery/http"
	orderWS "voice-ordering-kiosk/internal/order/delivery/websocket"
	sensorWS "voice-ordering-kiosk/internal/sensor/delivery/websocket"
	"voice-ordering-kiosk/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin            *gin.Engine
	l              log.Logger
	port           int
	mode           string
	environment    string
	allowedOrigins []string
	startedAt      time.Time

	// Streams
	hub           *hub.Hub
	orderHandler  orderWS.Handler
	sensorHandler sensorWS.Handler

	// Admin
	kioskHandler kioskHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger         log.Logger
	Port           int
	Mode           string
	Environment    string
	AllowedOrigins []string

	Hub           *hub.Hub
	OrderHandler  orderWS.Handler
	SensorHandler sensorWS.Handler
	KioskHandler  kioskHTTP.Handler
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		allowedOrigins: cfg.AllowedOrigins,
		startedAt:      time.Now(),
		hub:            cfg.Hub,
		orderHandler:   cfg.OrderHandler,
		sensorHandler:  cfg.SensorHandler,
		kioskHandler:   cfg.KioskHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.hub == nil {
		return errors.New("hub is required")
	}
	return nil
}
