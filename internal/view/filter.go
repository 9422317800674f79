package view

import (
	"github.com/shopspring/decimal"

	"github.com/simplete/storefront/internal/domain"
)

// FilterByPriceRange keeps products whose price falls within
// [from, to], bounds inclusive.
func FilterByPriceRange(products []domain.Product, from, to decimal.Decimal) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Price.GreaterThanOrEqual(from) && p.Price.LessThanOrEqual(to) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
