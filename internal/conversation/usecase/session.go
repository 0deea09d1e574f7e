package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"voice-ordering-kiosk/internal/action"
	"voice-ordering-kiosk/internal/catalog"
	"voice-ordering-kiosk/internal/conversation"
	"voice-ordering-kiosk/internal/model"
	"voice-ordering-kiosk/pkg/llmprovider"
)

type session struct {
	id        string
	createdAt time.Time
	r         *registry

	// mu serializes Submit so history is only ever extended by one round trip at a time.
	mu sync.Mutex
	// history starts with the priming exchange once primed is true.
	history []conversation.Turn
	primed  bool

	// turns is read by Reset without taking mu.
	turns atomic.Int64
}

func (s *session) ID() string           { return s.id }
func (s *session) CreatedAt() time.Time { return s.createdAt }

func (s *session) History() []conversation.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

func (s *session) turnCount() int64 { return s.turns.Load() }

// Submit sends one utterance with the cart snapshot and returns the cleaned reply.
// The backend call is detached from ctx cancellation so a closing connection
// cannot leave a delivered reply unrecorded.
func (s *session) Submit(ctx context.Context, utterance string, cart []model.CartLine) conversation.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := tracer.Start(ctx, "conversation.submit", trace.WithAttributes(
		attribute.String("session.id", s.id),
		attribute.Int("cart.lines", len(cart)),
	))
	defer span.End()

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.r.opts.BackendTimeout)
	defer cancel()

	if !s.primed {
		if err := s.prime(callCtx); err != nil {
			return s.degrade(ctx, span, fmt.Errorf("%w: %w", conversation.ErrPriming, err))
		}
	}

	message := utterance + cartContext(cart, s.r.opts.CartContextMaxLines)
	raw, err := s.generate(callCtx, s.requestHistory(), message)
	if err != nil {
		return s.degrade(ctx, span, fmt.Errorf("%w: %w", conversation.ErrBackend, err))
	}

	s.history = append(s.history,
		conversation.Turn{Role: conversation.RoleUser, Text: message},
		conversation.Turn{Role: conversation.RoleAgent, Text: raw},
	)
	s.turns.Add(1)

	text, actions := action.Extract(raw)
	span.SetAttributes(attribute.Int("actions", len(actions)))
	s.r.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))

	return conversation.Reply{Text: text, Actions: actions}
}

// prime sends the instruction message once. The exchange is kept as the
// first two turns so later requests carry it.
func (s *session) prime(ctx context.Context) error {
	reply, err := s.generate(ctx, nil, s.r.prompt)
	if err != nil {
		return err
	}

	s.history = append(s.history,
		conversation.Turn{Role: conversation.RoleUser, Text: s.r.prompt},
		conversation.Turn{Role: conversation.RoleAgent, Text: reply},
	)
	s.primed = true
	s.r.opts.Logger.Debugf(ctx, "%s: session %s primed", LogPrefixPrime, s.id)
	return nil
}

func (s *session) generate(ctx context.Context, history []conversation.Turn, message string) (string, error) {
	msgs := make([]llmprovider.Message, 0, len(history)+1)
	for _, t := range history {
		role := llmprovider.RoleUser
		if t.Role == conversation.RoleAgent {
			role = llmprovider.RoleAssistant
		}
		msgs = append(msgs, llmprovider.TextMessage(role, t.Text))
	}
	msgs = append(msgs, llmprovider.TextMessage(llmprovider.RoleUser, message))

	resp, err := s.r.opts.Backend.GenerateContent(ctx, &llmprovider.Request{Messages: msgs})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", conversation.ErrEmptyBackend
	}
	return resp.Content.Text(), nil
}

// requestHistory is the history resent with the next message, trimmed to
// MaxHistoryTurns exchanges after the priming exchange.
func (s *session) requestHistory() []conversation.Turn {
	limit := s.r.opts.MaxHistoryTurns
	if limit <= 0 || len(s.history) <= 2+2*limit {
		return s.history
	}
	out := make([]conversation.Turn, 0, 2+2*limit)
	out = append(out, s.history[:2]...)
	return append(out, s.history[len(s.history)-2*limit:]...)
}

func (s *session) degrade(ctx context.Context, span trace.Span, err error) conversation.Reply {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.r.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "degraded")))
	s.r.opts.Logger.Warnf(ctx, "%s: session %s: %v", LogPrefixSubmit, s.id, err)

	return conversation.Reply{
		Text:     conversation.DegradedText,
		Actions:  []action.Action{},
		Degraded: true,
		Cause:    err,
	}
}

// cartContext is appended to every utterance so generated totals track the display's cart.
func cartContext(cart []model.CartLine, maxLines int) string {
	if len(cart) == 0 {
		return CartEmptyContext
	}

	shown, omitted := cart, []model.CartLine(nil)
	if maxLines > 0 && len(cart) > maxLines {
		omitted, shown = cart[:len(cart)-maxLines], cart[len(cart)-maxLines:]
	}

	raw, err := json.Marshal(shown)
	if err != nil {
		// CartLine holds only strings and floats; NaN is the one way in.
		return CartEmptyContext
	}

	var b strings.Builder
	b.WriteString(CartContextPrefix)
	b.Write(raw)
	if len(omitted) > 0 {
		fmt.Fprintf(&b, CartOmittedNote, len(omitted), model.Subtotal(omitted))
	}
	return b.String()
}

func primingPrompt(c *catalog.Catalog) string {
	if c == nil {
		return fmt.Sprintf(PrimingPromptTemplate, "the", "{}")
	}
	return fmt.Sprintf(PrimingPromptTemplate, c.Store(), c.PromptJSON())
}
