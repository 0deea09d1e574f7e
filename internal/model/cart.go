package model

// CartLine is one line of the cart held by the display client.
// The server never owns the cart; it only reads snapshots sent with each utterance.
type CartLine struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	BasePrice  float64  `json:"basePrice"`
	Modifiers  []string `json:"modifiers"`
	FinalPrice float64  `json:"finalPrice"` // caller-computed, not validated
}

// Subtotal sums FinalPrice over lines.
func Subtotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.FinalPrice
	}
	return total
}
