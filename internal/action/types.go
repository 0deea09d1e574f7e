// Package action turns agent replies into cart commands.
package action

// Kind is the "action" discriminator used in agent output.
type Kind string

const (
	KindAddToCart     Kind = "add_to_cart"
	KindRemoveItem    Kind = "remove_item"
	KindClearCart     Kind = "clear_cart"
	KindFinalizeOrder Kind = "finalize_order"
)

// Action is one structured command. The concrete types below are the only implementations.
type Action interface {
	Kind() Kind
	sealed()
}

// AddToCart asks the display to append a line.
type AddToCart struct {
	ItemID    string
	Name      string
	Modifiers []string
	Price     *float64 // nil when the agent did not state a price
}

// RemoveItem drops the line with ItemID.
type RemoveItem struct {
	ItemID string
}

// ClearCart empties the cart.
type ClearCart struct{}

// FinalizeOrder tells the display to check out.
type FinalizeOrder struct{}

func (AddToCart) Kind() Kind     { return KindAddToCart }
func (RemoveItem) Kind() Kind    { return KindRemoveItem }
func (ClearCart) Kind() Kind     { return KindClearCart }
func (FinalizeOrder) Kind() Kind { return KindFinalizeOrder }

func (AddToCart) sealed()     {}
func (RemoveItem) sealed()    {}
func (ClearCart) sealed()     {}
func (FinalizeOrder) sealed() {}

// PriceOr returns the stated price or def.
func (a AddToCart) PriceOr(def float64) float64 {
	if a.Price == nil {
		return def
	}
	return *a.Price
}
