package catalog

import "errors"

var (
	ErrEmptyCatalog = errors.New("catalog has no items")
	ErrDuplicateID  = errors.New("duplicate catalog item id")
	ErrMissingID    = errors.New("catalog item without id")
)
