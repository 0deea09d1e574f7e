package conversation

import (
	"context"
	"time"

	"voice-ordering-kiosk/internal/model"
	"voice-ordering-kiosk/pkg/llmprovider"
)

// Session is one logical dialogue with the generative backend.
// Submit never returns an error: failures produce a degraded Reply.
type Session interface {
	ID() string
	CreatedAt() time.Time
	Submit(ctx context.Context, utterance string, cart []model.CartLine) Reply
	History() []Turn
}

// Registry owns the active Session of the kiosk.
type Registry interface {
	// Current returns the active session, creating it if absent.
	Current() Session
	// Reset discards the active session. Safe on an empty registry.
	Reset(ctx context.Context)
}

// Backend is the generative-text service. *llmprovider.Manager satisfies it.
type Backend interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
