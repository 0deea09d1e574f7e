package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is one live WebSocket. Writes are serialized; reads belong to the
// single goroutine running the connection's handler.
type Conn struct {
	id       string
	clientIP string
	ws       *websocket.Conn
	cfg      Config

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func (c *Conn) ID() string       { return c.id }
func (c *Conn) ClientIP() string { return c.clientIP }

// Done is closed once the connection is closed.
func (c *Conn) Done() <-chan struct{} { return c.done }

// WriteJSON sends v as one text frame.
func (c *Conn) WriteJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.WriteText(data)
}

// WriteText sends data unchanged as one text frame.
func (c *Conn) WriteText(data []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// ReadMessage returns the next data frame. Only one goroutine may call it.
func (c *Conn) ReadMessage() (int, []byte, error) {
	return c.ws.ReadMessage()
}

// Close sends a normal close frame and releases the socket. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		err = c.ws.Close()
	})
	return err
}

func (c *Conn) prepareRead() {
	if c.cfg.ReadLimit > 0 {
		c.ws.SetReadLimit(c.cfg.ReadLimit)
	}
	if c.cfg.PingInterval <= 0 {
		return
	}

	pongWait := 2 * c.cfg.PingInterval
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
}

// keepalive pings until the connection closes. WriteControl may run
// concurrently with WriteMessage so writeMu is not taken.
func (c *Conn) keepalive() {
	if c.cfg.PingInterval <= 0 {
		return
	}

	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteTimeout)); err != nil {
				// The reader sees the broken socket and unregisters.
				return
			}
		}
	}
}
