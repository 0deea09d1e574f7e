package order

import (
	"encoding/json"

	"voice-ordering-kiosk/internal/action"
	"voice-ordering-kiosk/internal/conversation"
	"voice-ordering-kiosk/internal/model"
)

// Menu resolves catalog prices for cart lines. *catalog.Catalog satisfies it.
type Menu interface {
	Get(id string) (model.MenuItem, bool)
}

func NewAIResponse(text string) AIResponseFrame {
	return AIResponseFrame{Type: TypeAIResponse, Text: text}
}

// Frames lists what one reply puts on the wire: the ai_response first, then
// one frame per action in reply order.
func Frames(reply conversation.Reply, menu Menu) []any {
	out := make([]any, 0, 1+len(reply.Actions))
	out = append(out, NewAIResponse(reply.Text))
	for _, a := range reply.Actions {
		if f, ok := ActionFrame(a, menu); ok {
			out = append(out, f)
		}
	}
	return out
}

// ActionFrame maps one action to its outbound frame. A cart line's base price
// comes from the menu; the quoted price, when present, becomes the final price.
// Items the menu does not know fall back to the quoted price, then 0.
func ActionFrame(a action.Action, menu Menu) (any, bool) {
	switch a := a.(type) {
	case action.AddToCart:
		base := a.PriceOr(0)
		if menu != nil {
			if item, ok := menu.Get(a.ItemID); ok {
				base = item.BasePrice
			}
		}
		modifiers := a.Modifiers
		if modifiers == nil {
			modifiers = []string{}
		}
		return CartUpdateFrame{
			Type: TypeCartUpdate,
			Item: model.CartLine{
				ID:         a.ItemID,
				Name:       a.Name,
				BasePrice:  base,
				Modifiers:  modifiers,
				FinalPrice: a.PriceOr(base),
			},
		}, true
	case action.RemoveItem:
		return RemoveItemFrame{Type: TypeRemoveItem, ItemID: a.ItemID}, true
	case action.ClearCart:
		return SignalFrame{Type: TypeClearCart}, true
	case action.FinalizeOrder:
		return SignalFrame{Type: TypeFinalizeOrder}, true
	}
	return nil, false
}

// HasFinalize reports whether actions contain a finalize_order.
func HasFinalize(actions []action.Action) bool {
	for _, a := range actions {
		if a.Kind() == action.KindFinalizeOrder {
			return true
		}
	}
	return false
}

// DecodeCart reads the cart snapshot. A missing or null cart is empty.
func DecodeCart(raw json.RawMessage) ([]model.CartLine, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var cart []model.CartLine
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}
