// Package fixtures builds deterministic product and category records for
// tests. A Factory stamps strictly increasing created_at timestamps so
// recency ordering is reproducible.
package fixtures

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog-service/internal/pkg/clock"
)

// Factory creates test products with deterministic timestamps. Each
// product created is one minute newer than the previous one.
type Factory struct {
	clk *clock.MockClock
}

// NewFactory creates a Factory whose first product is stamped at start.
func NewFactory(start time.Time) *Factory {
	return &Factory{clk: clock.NewMockClock(start)}
}

// Product creates a published product with the given variants.
func (f *Factory) Product(title string, variants ...*domain.Variant) *domain.Product {
	created := f.clk.Now()
	f.clk.Advance(time.Minute)
	return &domain.Product{
		ID:        uuid.NewString(),
		Title:     title,
		Handle:    title,
		Status:    domain.StatusPublished,
		CreatedAt: created,
		UpdatedAt: created,
		Variants:  variants,
	}
}

// Variant creates a variant with a normal calculated price.
func Variant(amount float64) *domain.Variant {
	return &domain.Variant{
		ID:              uuid.NewString(),
		ManageInventory: true,
		CalculatedPrice: &domain.CalculatedPrice{
			CalculatedAmount: nullDecimal(amount),
		},
	}
}

// SaleVariant creates a variant discounted from original to calculated.
func SaleVariant(original, calculated float64) *domain.Variant {
	return &domain.Variant{
		ID:              uuid.NewString(),
		ManageInventory: true,
		CalculatedPrice: &domain.CalculatedPrice{
			CalculatedAmount: nullDecimal(calculated),
			OriginalAmount:   nullDecimal(original),
		},
	}
}

// PricelessVariant creates a variant with no calculated amount.
func PricelessVariant() *domain.Variant {
	return &domain.Variant{
		ID:              uuid.NewString(),
		ManageInventory: true,
		CalculatedPrice: &domain.CalculatedPrice{},
	}
}

func nullDecimal(amount float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(amount), Valid: true}
}
