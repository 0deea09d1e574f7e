package usecase

import (
	"go.opentelemetry.io/otel"
)

const scopeName = "voice-ordering-kiosk/internal/conversation/usecase"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
)
