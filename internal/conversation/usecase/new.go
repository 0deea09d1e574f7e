package usecase

import (
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"voice-ordering-kiosk/internal/catalog"
	"voice-ordering-kiosk/internal/conversation"
	pkgLog "voice-ordering-kiosk/pkg/log"
)

// Options configure every session the registry creates.
type Options struct {
	Catalog *catalog.Catalog
	Backend conversation.Backend
	Logger  pkgLog.Logger

	// BackendTimeout bounds one Submit, priming included.
	BackendTimeout time.Duration
	// CartContextMaxLines keeps only the newest lines in the cart context. 0 sends all.
	CartContextMaxLines int
	// MaxHistoryTurns limits the exchanges resent to the backend. 0 sends all.
	MaxHistoryTurns int

	now func() time.Time
}

type registry struct {
	opts   Options
	prompt string
	turns  metric.Int64Counter

	mu      sync.Mutex
	current *session
}

// NewRegistry builds the kiosk's session registry. No session exists until Current is called.
func NewRegistry(opts Options) conversation.Registry {
	if opts.BackendTimeout <= 0 {
		opts.BackendTimeout = DefaultBackendTimeout * time.Second
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = pkgLog.NewNop()
	}

	turns, err := meter.Int64Counter("conversation.turns",
		metric.WithDescription("Completed submits, labelled by outcome"))
	if err != nil {
		turns = noop.Int64Counter{}
	}

	return &registry{
		opts:   opts,
		prompt: primingPrompt(opts.Catalog),
		turns:  turns,
	}
}
