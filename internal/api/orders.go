package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplete/storefront/internal/domain"
)

type orderItemDTO struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type orderDraftDTO struct {
	OrderDate time.Time      `json:"orderDate"`
	UserID    string         `json:"userId"`
	Items     []orderItemDTO `json:"orderItems"`
}

type orderDTO struct {
	ID         int64   `json:"id"`
	Status     int     `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
}

// PlaceOrder submits the order draft built from the cart.
func (c *Client) PlaceOrder(ctx context.Context, draft domain.OrderDraft) error {
	u := c.base.JoinPath("order")

	items := make([]orderItemDTO, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, orderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.InexactFloat64(),
		})
	}

	body := orderDraftDTO{
		OrderDate: draft.OrderDate,
		UserID:    draft.UserID,
		Items:     items,
	}
	return c.send(ctx, http.MethodPost, u, body, true, nil)
}

// Orders lists all orders. Admin-facing.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	u := c.base.JoinPath("order")

	var out []orderDTO
	if err := c.send(ctx, http.MethodGet, u, nil, true, &out); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(out))
	for _, d := range out {
		orders = append(orders, domain.Order{
			ID:         d.ID,
			Status:     domain.OrderStatus(d.Status),
			TotalPrice: decimal.NewFromFloat(d.TotalPrice),
		})
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status. The body is the bare
// numeric status code.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status code out of range", domain.ErrValidation)
	}
	u := c.base.JoinPath("order", strconv.FormatInt(orderID, 10), "status")
	return c.send(ctx, http.MethodPut, u, int(status), true, nil)
}
