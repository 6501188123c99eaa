package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrCustomerBlocked        = errors.New("customer is blocked from ordering")
	ErrTooManyRequests        = errors.New("too many orders from this address, try again later")
	ErrConcurrentModification = errors.New("order was changed by someone else, refresh and retry")
	ErrInvalidTransition      = errors.New("status transition not allowed")
)

// InsufficientStockError names the product that cannot be fulfilled so the
// customer knows which line to fix.
type InsufficientStockError struct {
	ProductID   uint64
	ProductName string
	Available   int64
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested", e.ProductName, e.Available, e.Requested)
}
