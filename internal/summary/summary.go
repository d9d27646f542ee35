// Package summary turns variant records into the two plain-text reports used
// to ground assistant answers: low-stock and on-sale. Both are pure functions
// of their input, fetching is the caller's job.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aubri61/inventoria-ai/internal/shopify"
)

// Fixed sentences used when a report has no rows or its fetch failed.
const (
	LowStockEmpty       = "저재고 항목: 없음."
	LowStockUnavailable = "저재고 조회 실패(권한/데이터 없음)."
	OnSaleEmpty         = "진행 중인 세일 상품: 없음."
	OnSaleUnavailable   = "세일 상품 조회 실패(권한/데이터 없음)."
)

// DefaultOnSaleLimit bounds the on-sale report when the caller passes no limit.
const DefaultOnSaleLimit = 20

// Discounted is a variant that is actually on sale, with its computed
// discount percentage. Kept only when compareAtPrice > price > 0.
type Discounted struct {
	shopify.VariantRecord
	PriceValue  float64
	DiscountPct int
}

// parsePrice reads a decimal-string price, substituting 0 for absent or
// non-numeric input so a bad field never fails a request.
func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// discountPct computes round((1 - price/compareAt) * 100), floored at zero.
func discountPct(price, compareAt float64) int {
	pct := int(math.Round((1 - price/compareAt) * 100))
	if pct < 0 {
		return 0
	}
	return pct
}

func skuOrDash(sku string) string {
	if sku == "" {
		return "-"
	}
	return sku
}

// LowStock renders the low-stock report. Input rows are expected to be
// pre-filtered by the upstream query (inventory below ten, active status) and
// are kept in input order.
func LowStock(variants []shopify.VariantRecord) string {
	if len(variants) == 0 {
		return LowStockEmpty
	}
	lines := make([]string, 0, len(variants))
	for _, v := range variants {
		line := fmt.Sprintf("- %s / %s (SKU:%s) 재고 %d개",
			v.ProductTitle, v.Title, skuOrDash(v.SKU), v.InventoryQuantity)
		price := parsePrice(v.Price)
		compareAt := parsePrice(v.CompareAtPrice)
		if compareAt > 0 && price > 0 {
			if pct := discountPct(price, compareAt); pct > 0 {
				line += fmt.Sprintf(", 세일 %d%%", pct)
			}
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("저재고 항목(%d개)\n%s", len(variants), strings.Join(lines, "\n"))
}

// SelectDiscounted derives the on-sale rows: every variant whose
// compareAtPrice exceeds its price, sorted by discount percentage descending
// with price ascending as the tie-break, truncated to limit.
func SelectDiscounted(variants []shopify.VariantRecord, limit int) []Discounted {
	if limit <= 0 {
		limit = DefaultOnSaleLimit
	}
	var out []Discounted
	for _, v := range variants {
		price := parsePrice(v.Price)
		compareAt := parsePrice(v.CompareAtPrice)
		if compareAt > price && price > 0 {
			out = append(out, Discounted{
				VariantRecord: v,
				PriceValue:    price,
				DiscountPct:   discountPct(price, compareAt),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DiscountPct != out[j].DiscountPct {
			return out[i].DiscountPct > out[j].DiscountPct
		}
		return out[i].PriceValue < out[j].PriceValue
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// OnSale renders the on-sale report for up to limit variants.
func OnSale(variants []shopify.VariantRecord, limit int) string {
	top := SelectDiscounted(variants, limit)
	if len(top) == 0 {
		return OnSaleEmpty
	}
	lines := make([]string, 0, len(top))
	for _, v := range top {
		lines = append(lines, fmt.Sprintf("- %s / %s (SKU:%s) 세일 %d%% → %s원",
			v.ProductTitle, v.Title, skuOrDash(v.SKU), v.DiscountPct,
			groupDigits(int64(math.Round(v.PriceValue)))))
	}
	return fmt.Sprintf("세일 TOP%d\n%s", len(top), strings.Join(lines, "\n"))
}

// groupDigits formats n with thousands separators, e.g. 12000 -> "12,000".
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
