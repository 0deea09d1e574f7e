package order

// Customer-facing texts produced by the gateway itself.
const (
	GatewayErrorText = "I'm sorry, I'm having trouble processing that. Could you try again?"
	RateLimitedText  = "Let's slow down a little. Could you say that again in a moment?"
)
