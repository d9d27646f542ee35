// Package dashboard aggregates recent orders into the per-day sales rows
// shown on the merchant dashboard.
package dashboard

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/aubri61/inventoria-ai/internal/shopify"
)

// Window is how far back the dashboard looks.
const Window = 7 * 24 * time.Hour

const defaultCurrency = "KRW"

// OrderSource reads recent orders. Satisfied by *shopify.Client.
type OrderSource interface {
	OrdersSince(ctx context.Context, creds shopify.Credentials, since time.Time, first int) ([]shopify.Order, error)
}

// DayRow is one day's sales totals.
type DayRow struct {
	Day      string  `json:"day"` // YYYY-MM-DD
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
	Currency string  `json:"currency"`
}

// Report is the aggregated dashboard payload.
type Report struct {
	Rows         []DayRow `json:"rows"`
	TotalOrders  int      `json:"totalOrders"`
	TotalRevenue float64  `json:"totalRevenue"`
}

// Aggregate groups orders by created-at day, oldest day first. Amounts that
// fail to parse count as 0; a missing currency falls back to KRW.
func Aggregate(orders []shopify.Order) Report {
	type bucket struct {
		count int
		sum   float64
		ccy   string
	}
	byDay := make(map[string]*bucket)
	for _, o := range orders {
		if len(o.CreatedAt) < 10 {
			continue
		}
		day := o.CreatedAt[:10]
		amt, err := strconv.ParseFloat(o.Amount, 64)
		if err != nil {
			amt = 0
		}
		ccy := o.Currency
		if ccy == "" {
			ccy = defaultCurrency
		}
		b, ok := byDay[day]
		if !ok {
			b = &bucket{ccy: ccy}
			byDay[day] = b
		}
		b.count++
		b.sum += amt
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	report := Report{Rows: make([]DayRow, 0, len(days))}
	for _, d := range days {
		b := byDay[d]
		report.Rows = append(report.Rows, DayRow{Day: d, Orders: b.count, Revenue: b.sum, Currency: b.ccy})
		report.TotalOrders += b.count
		report.TotalRevenue += b.sum
	}
	return report
}

// Service fetches and aggregates the trailing sales window.
type Service struct {
	src OrderSource
}

// NewService wires the dashboard with its order source.
func NewService(src OrderSource) *Service {
	return &Service{src: src}
}

// LastSevenDays returns the aggregated report for the week ending now.
func (s *Service) LastSevenDays(ctx context.Context, creds shopify.Credentials, now time.Time) (Report, error) {
	since := now.Add(-6 * 24 * time.Hour)
	orders, err := s.src.OrdersSince(ctx, creds, since, 100)
	if err != nil {
		return Report{}, err
	}
	return Aggregate(orders), nil
}
