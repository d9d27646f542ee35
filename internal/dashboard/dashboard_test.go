package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/aubri61/inventoria-ai/internal/shopify"
)

func TestAggregateGroupsByDay(t *testing.T) {
	orders := []shopify.Order{
		{ID: "1", CreatedAt: "2026-08-27T10:00:00Z", Amount: "10000", Currency: "KRW"},
		{ID: "2", CreatedAt: "2026-08-27T15:30:00Z", Amount: "5000", Currency: "KRW"},
		{ID: "3", CreatedAt: "2026-08-26T09:00:00Z", Amount: "2500.50", Currency: "KRW"},
	}
	report := Aggregate(orders)

	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Rows))
	}
	// oldest day first
	if report.Rows[0].Day != "2026-08-26" || report.Rows[1].Day != "2026-08-27" {
		t.Fatalf("day order: %+v", report.Rows)
	}
	if report.Rows[1].Orders != 2 || report.Rows[1].Revenue != 15000 {
		t.Fatalf("2026-08-27 row: %+v", report.Rows[1])
	}
	if report.TotalOrders != 3 || report.TotalRevenue != 17500.50 {
		t.Fatalf("totals: %d / %v", report.TotalOrders, report.TotalRevenue)
	}
}

func TestAggregateToleratesBadRows(t *testing.T) {
	orders := []shopify.Order{
		{ID: "1", CreatedAt: "2026-08-27T10:00:00Z", Amount: "not-a-number"},
		{ID: "2", CreatedAt: "bad", Amount: "100"},
	}
	report := Aggregate(orders)

	if len(report.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(report.Rows))
	}
	if report.Rows[0].Revenue != 0 {
		t.Fatalf("unparseable amount should count as 0, got %v", report.Rows[0].Revenue)
	}
	if report.Rows[0].Currency != "KRW" {
		t.Fatalf("missing currency should default to KRW, got %q", report.Rows[0].Currency)
	}
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil)
	if len(report.Rows) != 0 || report.TotalOrders != 0 || report.TotalRevenue != 0 {
		t.Fatalf("empty aggregate: %+v", report)
	}
}

type fakeOrders struct {
	since  time.Time
	orders []shopify.Order
}

func (f *fakeOrders) OrdersSince(ctx context.Context, creds shopify.Credentials, since time.Time, first int) ([]shopify.Order, error) {
	f.since = since
	return f.orders, nil
}

func TestLastSevenDaysWindow(t *testing.T) {
	src := &fakeOrders{orders: []shopify.Order{
		{ID: "1", CreatedAt: "2026-08-27T10:00:00Z", Amount: "100", Currency: "KRW"},
	}}
	svc := NewService(src)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	report, err := svc.LastSevenDays(context.Background(), shopify.Credentials{Shop: "demo"}, now)
	if err != nil {
		t.Fatalf("LastSevenDays: %v", err)
	}
	if want := now.Add(-6 * 24 * time.Hour); !src.since.Equal(want) {
		t.Fatalf("since = %v, want %v", src.since, want)
	}
	if report.TotalOrders != 1 {
		t.Fatalf("totals: %+v", report)
	}
}
