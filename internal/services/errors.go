package services

import (
	"errors"
	"fmt"
)

// Error kinds. Specific failures wrap one of these so handlers can map
// them to HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrNoItems          = fmt.Errorf("%w: invoice needs at least one line item", ErrValidation)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrNegativePrice    = fmt.Errorf("%w: unit price cannot be negative", ErrValidation)
	ErrNegativeDiscount = fmt.Errorf("%w: discount cannot be negative", ErrValidation)
	ErrUnknownAction    = fmt.Errorf("%w: stock action must be Added or Reduced", ErrValidation)
	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)
)
