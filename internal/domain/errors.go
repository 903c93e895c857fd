package domain

import "errors"

var (
	// ErrInvalidPriceRange is returned by auction helpers when basePrice is not
	// strictly below startPrice or either price is non-positive.
	ErrInvalidPriceRange = errors.New("base price must be positive and below start price")

	// ErrUnknownEventKind is returned when an envelope carries a kind no handler owns.
	ErrUnknownEventKind = errors.New("unknown event kind")
)
