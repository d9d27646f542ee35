// Package products executes the admin product operations as tagged commands,
// one variant per intent, dispatched through a single exhaustive handler.
package products

import (
	"fmt"
	"time"
)

// Tags and pricing used by the command handlers.
const (
	SaleTag     = "SALE"
	SampleTag   = "SAMPLE"
	samplePrice = "9.99"
)

// Command is one admin product operation. Each variant carries exactly the
// fields its handler needs.
type Command interface {
	isCommand()
}

// PriceUp10 raises every variant price of a product by 10%.
type PriceUp10 struct {
	ProductID string
}

// AddSaleTag tags a product with SALE.
type AddSaleTag struct {
	ProductID string
}

// RemoveSaleTag removes the SALE tag from a product.
type RemoveSaleTag struct {
	ProductID string
}

// CreateSample creates a timestamped sample product.
type CreateSample struct {
	Now time.Time
}

func (PriceUp10) isCommand()     {}
func (AddSaleTag) isCommand()    {}
func (RemoveSaleTag) isCommand() {}
func (CreateSample) isCommand()  {}

// ParseCommand maps a wire intent string onto its command variant.
func ParseCommand(intent, productID string, now time.Time) (Command, error) {
	switch intent {
	case "priceUp10":
		if productID == "" {
			return nil, fmt.Errorf("priceUp10: productId is required")
		}
		return PriceUp10{ProductID: productID}, nil
	case "addTag":
		if productID == "" {
			return nil, fmt.Errorf("addTag: productId is required")
		}
		return AddSaleTag{ProductID: productID}, nil
	case "removeTag":
		if productID == "" {
			return nil, fmt.Errorf("removeTag: productId is required")
		}
		return RemoveSaleTag{ProductID: productID}, nil
	case "createSample":
		return CreateSample{Now: now}, nil
	default:
		return nil, fmt.Errorf("unknown intent %q", intent)
	}
}
