package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyOrder       = errors.New("order cannot be empty")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrUnsourceableItem = errors.New("item not stocked by any center")
	ErrInvalidCatalog   = errors.New("invalid catalog")
)

// UnsourceableError lists order items no center can ship.
type UnsourceableError struct {
	Items []string
}

func (e *UnsourceableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsourceableItem, strings.Join(e.Items, ", "))
}

func (e *UnsourceableError) Unwrap() error { return ErrUnsourceableItem }
