package middleware

import (
	pkgLog "voice-ordering-kiosk/pkg/log"
)

// Middleware bundles the gin middlewares shared by every route.
type Middleware struct {
	l              pkgLog.Logger
	allowedOrigins []string
}

// New creates the middleware set. An empty allowedOrigins list allows every origin.
func New(l pkgLog.Logger, allowedOrigins []string) Middleware {
	return Middleware{
		l:              l,
		allowedOrigins: allowedOrigins,
	}
}
