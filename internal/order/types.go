// Package order defines the frames exchanged with the display client on the order stream.
package order

import (
	"encoding/json"

	"voice-ordering-kiosk/internal/model"
)

// Frame type discriminators.
const (
	TypeUserSpeech    = "user_speech"
	TypeAIResponse    = "ai_response"
	TypeCartUpdate    = "cart_update"
	TypeRemoveItem    = "remove_item"
	TypeClearCart     = "clear_cart"
	TypeFinalizeOrder = "finalize_order"
)

// InboundFrame is what the display sends. Cart is decoded separately so a
// bad cart does not cost the utterance.
type InboundFrame struct {
	Type string          `json:"type"`
	Text string          `json:"text"`
	Cart json.RawMessage `json:"cart,omitempty"`
}

type AIResponseFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CartUpdateFrame struct {
	Type string         `json:"type"`
	Item model.CartLine `json:"item"`
}

type RemoveItemFrame struct {
	Type   string `json:"type"`
	ItemID string `json:"item_id"`
}

// SignalFrame carries no payload (clear_cart, finalize_order).
type SignalFrame struct {
	Type string `json:"type"`
}
