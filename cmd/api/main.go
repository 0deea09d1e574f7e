package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"voice-ordering-kiosk/config"
	_ "voice-ordering-kiosk/docs" // Swagger docs
	"voice-ordering-kiosk/internal/catalog"
	convUC "voice-ordering-kiosk/internal/conversation/usecase"
	"voice-ordering-kiosk/internal/httpserver"
	"voice-ordering-kiosk/internal/hub"
	kioskHTTP "voice-ordering-kiosk/internal/kiosk/delivery/http"
	"voice-ordering-kiosk/internal/model"
	orderWS "voice-ordering-kiosk/internal/order/delivery/websocket"
	sensorWS "voice-ordering-kiosk/internal/sensor/delivery/websocket"
	"voice-ordering-kiosk/pkg/llmprovider"
	"voice-ordering-kiosk/pkg/log"
)

// @title       Voice Ordering Kiosk API
// @description Conversational drive-thru ordering over WebSocket, backed by an LLM.
// @version     1
// @host        localhost:8000
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Voice Ordering Kiosk...")
	logger.Infof(ctx, "Environment: %s, kiosk mode: %s", cfg.Environment.Name, cfg.Kiosk.Mode)

	// 3. Menu catalog
	menu, err := catalog.Load(cfg.Kiosk.MenuPath)
	if err != nil {
		logger.Fatalf(ctx, "Failed to load menu: %v", err)
	}
	logger.Infof(ctx, "Loaded %d menu items for %s", menu.Len(), menu.Store())

	// 4. LLM backend
	providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize LLM providers: %v", err)
	}
	managerCfg, err := llmprovider.NewManagerConfig(&cfg.LLM)
	if err != nil {
		logger.Fatalf(ctx, "Invalid LLM config: %v", err)
	}
	backend := llmprovider.NewManager(providers, managerCfg, logger)
	for _, p := range providers {
		logger.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}

	// 5. Conversation
	sessions := convUC.NewRegistry(convUC.Options{
		Catalog:             menu,
		Backend:             backend,
		Logger:              logger,
		BackendTimeout:      cfg.Kiosk.BackendTimeout,
		CartContextMaxLines: cfg.Kiosk.CartContextMaxLines,
		MaxHistoryTurns:     cfg.Kiosk.MaxHistoryTurns,
	})

	// 6. Streams
	connections := hub.New(hub.Config{
		ReadLimit:      cfg.WebSocket.ReadLimit,
		WriteTimeout:   cfg.WebSocket.WriteTimeout,
		PingInterval:   cfg.WebSocket.PingInterval,
		AllowedOrigins: cfg.WebSocket.AllowedOrigins,
	}, logger)

	orderHandler := orderWS.New(logger, connections, sessions, menu, orderWS.Options{
		UtterancesPerMin: cfg.Kiosk.UtterancesPerMin,
		ResetOnFinalize:  cfg.Kiosk.ResetOnFinalize,
	})
	sensorHandler := sensorWS.New(logger, connections)
	kioskHandler := kioskHTTP.New(logger, menu, sessions, model.KioskMode(cfg.Kiosk.Mode))

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		AllowedOrigins: cfg.WebSocket.AllowedOrigins,
		Hub:            connections,
		OrderHandler:   orderHandler,
		SensorHandler:  sensorHandler,
		KioskHandler:   kioskHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 8. Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		sessions.Reset(context.WithoutCancel(gctx))
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "Server stopped with error: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}
