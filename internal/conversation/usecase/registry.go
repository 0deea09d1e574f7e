package usecase

import (
	"context"

	"github.com/google/uuid"

	"voice-ordering-kiosk/internal/conversation"
)

func (r *registry) Current() conversation.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		r.current = r.newSession()
	}
	return r.current
}

func (r *registry) Reset(ctx context.Context) {
	r.mu.Lock()
	old := r.current
	r.current = nil
	r.mu.Unlock()

	if old != nil {
		r.opts.Logger.Infof(ctx, "%s: discarded session %s after %d turns", LogPrefixReset, old.id, old.turnCount())
	}
}

func (r *registry) newSession() *session {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &session{
		id:        id.String(),
		createdAt: r.opts.now(),
		r:         r,
	}
}
