package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/simplete/storefront/internal/domain"
)

type productDTO struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	CategoryName       string  `json:"categoryName"`
	BrandName          string  `json:"brandName"`
	SizeName           string  `json:"sizeName"`
	GenderName         string  `json:"genderName"`
	ColorName          string  `json:"colorName"`
	IsDiscounted       bool    `json:"isDiscounted"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:                 d.ID,
		Name:               d.Name,
		Description:        d.Description,
		Price:              decimal.NewFromFloat(d.Price),
		Quantity:           d.Quantity,
		CategoryName:       d.CategoryName,
		BrandName:          d.BrandName,
		SizeName:           d.SizeName,
		GenderName:         d.GenderName,
		ColorName:          d.ColorName,
		IsDiscounted:       d.IsDiscounted,
		DiscountPercentage: decimal.NewFromFloat(d.DiscountPercentage),
	}
}

func toDomainProducts(dtos []productDTO) []domain.Product {
	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products
}

type newProductDTO struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	CategoryName string  `json:"categoryName"`
	BrandName    string  `json:"brandName"`
	SizeName     string  `json:"sizeName"`
	GenderName   string  `json:"genderName"`
	ColorName    string  `json:"colorName"`
}

type quantityResponse struct {
	CurrentQuantity int `json:"currentQuantity"`
}

// Products returns the full catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	u := c.base.JoinPath("product")

	var out []productDTO
	if err := c.send(ctx, http.MethodGet, u, nil, false, &out); err != nil {
		return nil, err
	}
	return toDomainProducts(out), nil
}

// DiscountedProducts returns only catalog entries with an active discount.
func (c *Client) DiscountedProducts(ctx context.Context) ([]domain.Product, error) {
	u := c.base.JoinPath("product", "discounted")

	var out []productDTO
	if err := c.send(ctx, http.MethodGet, u, nil, false, &out); err != nil {
		return nil, err
	}
	return toDomainProducts(out), nil
}

// SearchProducts queries the catalog. Empty arguments are omitted from
// the query string.
func (c *Client) SearchProducts(ctx context.Context, query, brand, size string) ([]domain.Product, error) {
	u := c.base.JoinPath("product", "search")

	params := u.Query()
	if query != "" {
		params.Set("query", query)
	}
	if brand != "" {
		params.Set("brand", brand)
	}
	if size != "" {
		params.Set("size", size)
	}
	u.RawQuery = params.Encode()

	var out []productDTO
	if err := c.send(ctx, http.MethodGet, u, nil, false, &out); err != nil {
		return nil, err
	}
	return toDomainProducts(out), nil
}

// ProductQuantity returns current stock for one product. Concurrent
// lookups for the same product share a single request.
func (c *Client) ProductQuantity(ctx context.Context, productID int64) (int, error) {
	key := strconv.FormatInt(productID, 10)
	v, err, _ := c.quantities.Do(key, func() (interface{}, error) {
		u := c.base.JoinPath("product", key, "quantity")

		var out quantityResponse
		if err := c.send(ctx, http.MethodGet, u, nil, false, &out); err != nil {
			return 0, err
		}
		return out.CurrentQuantity, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// CreateProduct adds a catalog entry. Requires an authenticated session
// with product-create permission on the backend.
func (c *Client) CreateProduct(ctx context.Context, p domain.NewProduct) error {
	u := c.base.JoinPath("product")

	body := newProductDTO{
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		Quantity:     p.Quantity,
		CategoryName: p.CategoryName,
		BrandName:    p.BrandName,
		SizeName:     p.SizeName,
		GenderName:   p.GenderName,
		ColorName:    p.ColorName,
	}
	return c.send(ctx, http.MethodPost, u, body, true, nil)
}

// ApplyDiscount applies a percentage discount to a product. The body
// is a bare JSON number, as the backend expects.
func (c *Client) ApplyDiscount(ctx context.Context, productID int64, percentage float64) error {
	u := c.base.JoinPath("product", "apply-discount", strconv.FormatInt(productID, 10))
	return c.send(ctx, http.MethodPost, u, percentage, true, nil)
}

// RemoveDiscount clears any discount on a product.
func (c *Client) RemoveDiscount(ctx context.Context, productID int64) error {
	u := c.base.JoinPath("product", "remove-discount", strconv.FormatInt(productID, 10))
	return c.send(ctx, http.MethodPost, u, nil, true, nil)
}
