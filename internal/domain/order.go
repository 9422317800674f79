package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the numeric status code used by the backend (0-5).
type OrderStatus int

const (
	OrderStatusPending OrderStatus = iota
	OrderStatusProcessing
	OrderStatusShipped
	OrderStatusDelivered
	OrderStatusCancelled
	OrderStatusCompleted
)

// Valid reports whether the code is within the range the backend accepts.
func (s OrderStatus) Valid() bool {
	return s >= OrderStatusPending && s <= OrderStatusCompleted
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	case OrderStatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Order is an existing order as listed by the backend.
type Order struct {
	ID         int64
	Status     OrderStatus
	TotalPrice decimal.Decimal
}

// OrderItem carries one cart line into an order submission. UnitPrice
// is the price captured in the cart, not re-fetched from the catalog.
type OrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderDraft is the order submission payload. It is derived from the
// session identity and the cart content and never stored locally.
type OrderDraft struct {
	OrderDate time.Time
	UserID    string
	Items     []OrderItem
}
