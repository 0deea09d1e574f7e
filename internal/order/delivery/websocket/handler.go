package websocket

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"voice-ordering-kiosk/internal/conversation"
	"voice-ordering-kiosk/internal/hub"
	"voice-ordering-kiosk/internal/order"
	pkgLog "voice-ordering-kiosk/pkg/log"
)

type handler struct {
	l               pkgLog.Logger
	hub             *hub.Hub
	sessions        conversation.Registry
	menu            order.Menu
	limiter         *rateLimiter
	resetOnFinalize bool
}

// ServeOrders upgrades the request and runs the connection's receive loop.
// Frames are handled one at a time, so replies keep utterance order.
func (h *handler) ServeOrders(c *gin.Context) {
	conn, err := h.hub.Upgrade(c.Writer, c.Request, c.ClientIP())
	if err != nil {
		return
	}
	defer h.hub.Unregister(conn)

	ctx := pkgLog.WithRequestID(c.Request.Context(), conn.ID())
	h.l.Infof(ctx, "%s: client %s connected (%d open)", LogPrefixServeOrders, conn.ClientIP(), h.hub.Count())

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if gorilla.IsUnexpectedCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway, gorilla.CloseNoStatusReceived) {
				h.l.Warnf(ctx, "%s: client %s dropped: %v", LogPrefixServeOrders, conn.ClientIP(), err)
			} else {
				h.l.Infof(ctx, "%s: client %s disconnected", LogPrefixServeOrders, conn.ClientIP())
			}
			return
		}
		if mt != gorilla.TextMessage {
			h.l.Debugf(ctx, "%s: ignoring non-text frame", LogPrefixServeOrders)
			continue
		}

		h.handleFrame(ctx, conn, data)
	}
}

// handleFrame never lets one frame end the connection.
func (h *handler) handleFrame(ctx context.Context, conn *hub.Conn, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			h.l.Errorf(ctx, "%s: panic: %v", LogPrefixHandleFrame, r)
			h.send(ctx, conn, order.NewAIResponse(order.GatewayErrorText))
		}
	}()

	var in order.InboundFrame
	if err := json.Unmarshal(data, &in); err != nil {
		h.l.Warnf(ctx, "%s: non-JSON frame ignored: %v", LogPrefixHandleFrame, err)
		return
	}

	switch in.Type {
	case order.TypeUserSpeech:
		h.handleSpeech(ctx, conn, in)
	case "":
		h.l.Warnf(ctx, "%s: frame without type ignored", LogPrefixHandleFrame)
	default:
		h.l.Debugf(ctx, "%s: frame type %q ignored", LogPrefixHandleFrame, in.Type)
	}
}

func (h *handler) handleSpeech(ctx context.Context, conn *hub.Conn, in order.InboundFrame) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		h.l.Debugf(ctx, "%s: empty utterance skipped", LogPrefixHandleSpeech)
		return
	}

	cart, err := order.DecodeCart(in.Cart)
	if err != nil {
		h.l.Warnf(ctx, "%s: unreadable cart, treating as empty: %v", LogPrefixHandleSpeech, err)
	}

	if !h.limiter.Allow(conn.ClientIP()) {
		h.l.Warnf(ctx, "%s: utterance rate exceeded for %s", LogPrefixHandleSpeech, conn.ClientIP())
		h.send(ctx, conn, order.NewAIResponse(order.RateLimitedText))
		return
	}

	session := h.sessions.Current()
	h.l.Infof(ctx, "%s: session %s heard %q", LogPrefixHandleSpeech, session.ID(), text)

	reply := session.Submit(ctx, text, cart)
	for _, f := range order.Frames(reply, h.menu) {
		if err := h.send(ctx, conn, f); err != nil {
			return
		}
	}

	if h.resetOnFinalize && order.HasFinalize(reply.Actions) {
		h.sessions.Reset(ctx)
	}
}

func (h *handler) send(ctx context.Context, conn *hub.Conn, frame any) error {
	if err := conn.WriteJSON(frame); err != nil {
		h.l.Warnf(ctx, "%s: write to %s failed: %v", LogPrefixHandleFrame, conn.ClientIP(), err)
		return err
	}
	return nil
}
