package domain

import "github.com/shopspring/decimal"

// SalesReport is the shape shared by the daily, monthly and
// top-selling report endpoints.
type SalesReport struct {
	MostSellingProductName     string
	MostSellingProductQuantity int
	TotalEarnings              decimal.Decimal
}
