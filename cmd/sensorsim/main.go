// Command sensorsim feeds simulated proximity readings to the kiosk's /ws/sensor stream.
package main

import (
	"context"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/viper"

	"voice-ordering-kiosk/pkg/log"
)

func main() {
	viper.SetEnvPrefix("sensorsim")
	viper.AutomaticEnv()
	viper.SetDefault("url", "ws://localhost:8000/ws/sensor")
	viper.SetDefault("interval", "200ms")
	viper.SetDefault("log_level", "info")

	logger := log.Init(log.ZapConfig{
		Level:    viper.GetString("log_level"),
		Mode:     "production",
		Encoding: "console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := viper.GetString("url")
	interval := viper.GetDuration("interval")
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	if err := run(ctx, logger, url, interval); err != nil {
		logger.Fatalf(ctx, "sensorsim: %v", err)
	}
	logger.Info(ctx, "Sensor simulator stopped")
}

func run(ctx context.Context, l log.Logger, url string, interval time.Duration) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	l.Infof(ctx, "Connected to %s", url)

	// Drain relayed frames so the server never blocks on us.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	rnd := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return nil
		case now := <-ticker.C:
			r := newReading(now, rnd)
			if err := conn.WriteJSON(r); err != nil {
				return err
			}
			l.Debugf(ctx, "sent distance=%.2f", r.Distance)
		}
	}
}
