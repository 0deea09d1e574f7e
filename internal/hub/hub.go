package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	pkgLog "voice-ordering-kiosk/pkg/log"
)

// Hub tracks registered connections and fans frames out to them.
type Hub struct {
	cfg      Config
	l        pkgLog.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]*Conn
}

func New(cfg Config, l pkgLog.Logger) *Hub {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	h := &Hub{
		cfg:   cfg,
		l:     l,
		conns: make(map[string]*Conn),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Upgrade completes the handshake, registers the connection and starts its keepalive.
// On failure the upgrader has already written an HTTP error.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, clientIP string) (*Conn, error) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Warnf(r.Context(), "%s: %s from %s: %v", LogPrefixUpgrade, r.URL.Path, clientIP, err)
		return nil, err
	}

	c := &Conn{
		id:       uuid.NewString(),
		clientIP: clientIP,
		ws:       ws,
		cfg:      h.cfg,
		done:     make(chan struct{}),
	}
	c.prepareRead()
	go c.keepalive()

	h.Register(c)
	return c, nil
}

func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
}

// Unregister removes c and closes it.
func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c.id)
	h.mu.Unlock()
	_ = c.Close()
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast marshals v once and sends it to every registered connection.
func (h *Hub) Broadcast(ctx context.Context, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return h.BroadcastText(ctx, data, nil), nil
}

// BroadcastText sends data verbatim to every registered connection except skip.
// Delivery is best effort: a failed send is logged and the rest still get the frame.
func (h *Hub) BroadcastText(ctx context.Context, data []byte, skip *Conn) int {
	delivered := 0
	for _, c := range h.snapshot() {
		if c == skip {
			continue
		}
		if err := c.WriteText(data); err != nil {
			h.l.Warnf(ctx, "%s: conn %s (%s): %v", LogPrefixBroadcast, c.id, c.clientIP, err)
			continue
		}
		delivered++
	}
	return delivered
}

// CloseAll closes and unregisters every connection. Used on shutdown.
func (h *Hub) CloseAll(ctx context.Context) {
	conns := h.snapshot()
	for _, c := range conns {
		h.Unregister(c)
	}
	if len(conns) > 0 {
		h.l.Infof(ctx, "%s: closed %d connection(s)", LogPrefixCloseAll, len(conns))
	}
}

func (h *Hub) snapshot() []*Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		out = append(out, c)
	}
	return out
}

// checkOrigin allows requests without an Origin header (the sensor script, curl).
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.cfg.AllowedOrigins, "*") || slices.Contains(h.cfg.AllowedOrigins, origin)
}
