package model

// MenuItem is an orderable catalog entry. Immutable after load.
type MenuItem struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category,omitempty"`
	BasePrice        float64  `json:"base_price"`
	AllowedModifiers []string `json:"modifiers"`
}
