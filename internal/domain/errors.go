package domain

import "errors"

var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("unique constraint violated")
	ErrValidation = errors.New("invalid input data")
)

// Ref points at a row another row depends on, e.g. shipment.product_id.
type Ref struct {
	Table string
	Field string
	ID    uint
}
