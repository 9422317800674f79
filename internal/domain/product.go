package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as served by the backend. Price carries
// the discounted price when IsDiscounted is set.
type Product struct {
	ID                 int64
	Name               string
	Description        string
	Price              decimal.Decimal
	Quantity           int
	CategoryName       string
	BrandName          string
	SizeName           string
	GenderName         string
	ColorName          string
	IsDiscounted       bool
	DiscountPercentage decimal.Decimal
}

// NewProduct is the attribute set required to create a catalog entry.
type NewProduct struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Quantity     int
	CategoryName string
	BrandName    string
	SizeName     string
	GenderName   string
	ColorName    string
}

// LineItem is one product entry in the cart. Display and pricing
// fields are snapshotted at add-time and never re-synced from the
// catalog.
type LineItem struct {
	ProductID    int64
	Name         string
	UnitPrice    decimal.Decimal
	CategoryName string
	Quantity     int
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
