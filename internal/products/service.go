package products

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/aubri61/inventoria-ai/internal/shopify"
	logx "github.com/aubri61/inventoria-ai/pkg/logger"
)

// AdminAPI is the slice of the Admin API the product commands consume.
// Satisfied by *shopify.Client.
type AdminAPI interface {
	ListProducts(ctx context.Context, creds shopify.Credentials, first int) ([]shopify.Product, error)
	ProductVariantPrices(ctx context.Context, creds shopify.Credentials, productID string) ([]shopify.VariantPrice, error)
	UpdateVariantPrices(ctx context.Context, creds shopify.Credentials, productID string, prices []shopify.VariantPrice) error
	AddTags(ctx context.Context, creds shopify.Credentials, productID string, tags []string) error
	RemoveTags(ctx context.Context, creds shopify.Credentials, productID string, tags []string) error
	CreateProduct(ctx context.Context, creds shopify.Credentials, in shopify.NewProduct) (string, error)
}

// Service lists products and dispatches product commands.
type Service struct {
	api AdminAPI
}

// NewService wires the product service with its Admin API.
func NewService(api AdminAPI) *Service {
	return &Service{api: api}
}

// List returns the first products sorted by title.
func (s *Service) List(ctx context.Context, creds shopify.Credentials, first int) ([]shopify.Product, error) {
	if first <= 0 {
		first = 10
	}
	return s.api.ListProducts(ctx, creds, first)
}

// Dispatch executes one command. The switch is exhaustive over the command
// variants; an unknown type is a programming error.
func (s *Service) Dispatch(ctx context.Context, creds shopify.Credentials, cmd Command) error {
	switch c := cmd.(type) {
	case PriceUp10:
		return s.priceUp10(ctx, creds, c.ProductID)
	case AddSaleTag:
		return s.api.AddTags(ctx, creds, c.ProductID, []string{SaleTag})
	case RemoveSaleTag:
		return s.api.RemoveTags(ctx, creds, c.ProductID, []string{SaleTag})
	case CreateSample:
		return s.createSample(ctx, creds, c)
	default:
		return fmt.Errorf("unhandled product command %T", cmd)
	}
}

// raisePrice multiplies a decimal-string price by 1.1, rounded to cents.
// Unparseable prices are treated as 0.
func raisePrice(price string) string {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		v = 0
	}
	return fmt.Sprintf("%.2f", math.Round(v*1.1*100)/100)
}

func (s *Service) priceUp10(ctx context.Context, creds shopify.Credentials, productID string) error {
	prices, err := s.api.ProductVariantPrices(ctx, creds, productID)
	if err != nil {
		return err
	}
	updated := make([]shopify.VariantPrice, 0, len(prices))
	for _, p := range prices {
		updated = append(updated, shopify.VariantPrice{ID: p.ID, Price: raisePrice(p.Price)})
	}
	if err := s.api.UpdateVariantPrices(ctx, creds, productID, updated); err != nil {
		return err
	}
	logx.Info().Str("product_id", productID).Int("variants", len(updated)).Msg("prices raised 10%")
	return nil
}

func (s *Service) createSample(ctx context.Context, creds shopify.Credentials, cmd CreateSample) error {
	title := "Sample " + cmd.Now.Format("20060102150405")
	id, err := s.api.CreateProduct(ctx, creds, shopify.NewProduct{
		Title: title,
		Tags:  []string{SampleTag},
		Price: samplePrice,
	})
	if err != nil {
		return err
	}
	logx.Info().Str("product_id", id).Str("title", title).Msg("sample product created")
	return nil
}
