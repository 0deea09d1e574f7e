package websocket

const (
	LogPrefixServeOrders  = "internal.order.delivery.websocket.ServeOrders"
	LogPrefixHandleFrame  = "internal.order.delivery.websocket.handleFrame"
	LogPrefixHandleSpeech = "internal.order.delivery.websocket.handleSpeech"
)
