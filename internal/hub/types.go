// Package hub keeps the kiosk's live WebSocket connections.
package hub

import "time"

// Config controls every connection the hub accepts.
type Config struct {
	ReadLimit      int64
	WriteTimeout   time.Duration
	PingInterval   time.Duration // 0 disables keepalive pings
	AllowedOrigins []string      // empty or "*" accepts any origin
}

const (
	LogPrefixUpgrade   = "internal.hub.Upgrade"
	LogPrefixBroadcast = "internal.hub.Broadcast"
	LogPrefixCloseAll  = "internal.hub.CloseAll"

	defaultWriteTimeout = 10 * time.Second
)
