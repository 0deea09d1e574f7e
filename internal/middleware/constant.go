package middleware

const (
	HeaderRequestID = "X-Request-ID"

	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Request-ID"
	corsMaxAge       = "86400"

	LogPrefixRecovery = "internal.middleware.Recovery"
)
