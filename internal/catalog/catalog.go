// Package catalog holds the read-only menu served by the kiosk.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jinzhu/copier"

	"voice-ordering-kiosk/internal/model"
)

// Catalog is an immutable menu. Safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	store    string
	currency string
	items    []model.MenuItem
	byID     map[string]int
}

// document is the on-disk menu format.
type document struct {
	Store    string           `json:"store"`
	Currency string           `json:"currency,omitempty"`
	Items    []model.MenuItem `json:"items"`
}

// Load reads and validates a menu file. Any error here should abort startup.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}

	return New(doc.Store, doc.Currency, doc.Items)
}

// New builds a Catalog from items, copying them so callers cannot mutate it later.
func New(store, currency string, items []model.MenuItem) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		store:    store,
		currency: currency,
		items:    make([]model.MenuItem, len(items)),
		byID:     make(map[string]int, len(items)),
	}
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w (index %d)", ErrMissingID, i)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		cp, err := cloneItem(it)
		if err != nil {
			return nil, fmt.Errorf("catalog: copy %s: %w", it.ID, err)
		}
		c.items[i] = cp
		c.byID[it.ID] = i
	}
	return c, nil
}

func (c *Catalog) Store() string { return c.store }

// Items returns a deep copy of all items in file order.
func (c *Catalog) Items() []model.MenuItem {
	out := make([]model.MenuItem, 0, len(c.items))
	for _, it := range c.items {
		if cp, err := cloneItem(it); err == nil {
			out = append(out, cp)
		}
	}
	return out
}

// Get looks an item up by id and returns a deep copy. A nil Catalog has no items.
func (c *Catalog) Get(id string) (model.MenuItem, bool) {
	if c == nil {
		return model.MenuItem{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return model.MenuItem{}, false
	}
	// New already copied this item once, so a failure here is not expected.
	it, err := cloneItem(c.items[i])
	return it, err == nil
}

// cloneItem deep-copies an item. Modifiers are never nil so they encode as [].
func cloneItem(src model.MenuItem) (model.MenuItem, error) {
	var out model.MenuItem
	if err := copier.CopyWithOption(&out, &src, copier.Option{DeepCopy: true}); err != nil {
		return model.MenuItem{}, err
	}
	if out.AllowedModifiers == nil {
		out.AllowedModifiers = []string{}
	}
	return out, nil
}

// Len is the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// MarshalJSON renders the catalog in the same shape it was loaded from.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{Store: c.store, Currency: c.currency, Items: c.items})
}

// PromptJSON is the indented form embedded in the priming message.
func (c *Catalog) PromptJSON() string {
	raw, err := json.MarshalIndent(document{Store: c.store, Currency: c.currency, Items: c.items}, "", "  ")
	if err != nil {
		// Only plain strings and floats in here.
		return "{}"
	}
	return string(raw)
}
