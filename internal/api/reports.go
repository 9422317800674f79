package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplete/storefront/internal/domain"
)

type reportDTO struct {
	MostSellingProductName     string  `json:"mostSellingProductName"`
	MostSellingProductQuantity int     `json:"mostSellingProductQuantity"`
	TotalEarnings              float64 `json:"totalEarnings"`
}

func (d reportDTO) toDomain() domain.SalesReport {
	return domain.SalesReport{
		MostSellingProductName:     d.MostSellingProductName,
		MostSellingProductQuantity: d.MostSellingProductQuantity,
		TotalEarnings:              decimal.NewFromFloat(d.TotalEarnings),
	}
}

// DailyReport fetches the sales report for one calendar day.
func (c *Client) DailyReport(ctx context.Context, date time.Time) (domain.SalesReport, error) {
	u := c.base.JoinPath("report", "daily")
	params := u.Query()
	params.Set("date", date.Format("2006-01-02"))
	u.RawQuery = params.Encode()

	var out reportDTO
	if err := c.send(ctx, http.MethodGet, u, nil, true, &out); err != nil {
		return domain.SalesReport{}, err
	}
	return out.toDomain(), nil
}

// MonthlyReport fetches the sales report for one month.
func (c *Client) MonthlyReport(ctx context.Context, month, year int) (domain.SalesReport, error) {
	u := c.base.JoinPath("report", "monthly")
	params := u.Query()
	params.Set("month", strconv.Itoa(month))
	params.Set("year", strconv.Itoa(year))
	u.RawQuery = params.Encode()

	var out reportDTO
	if err := c.send(ctx, http.MethodGet, u, nil, true, &out); err != nil {
		return domain.SalesReport{}, err
	}
	return out.toDomain(), nil
}

// TopSelling fetches the top-selling products, count entries at most.
func (c *Client) TopSelling(ctx context.Context, count int) ([]domain.SalesReport, error) {
	u := c.base.JoinPath("report", "top-selling")
	params := u.Query()
	params.Set("count", strconv.Itoa(count))
	u.RawQuery = params.Encode()

	var out []reportDTO
	if err := c.send(ctx, http.MethodGet, u, nil, true, &out); err != nil {
		return nil, err
	}

	reports := make([]domain.SalesReport, 0, len(out))
	for _, d := range out {
		reports = append(reports, d.toDomain())
	}
	return reports, nil
}
