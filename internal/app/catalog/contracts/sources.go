package contracts

import (
	"context"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
)

// PricingContext selects the region and currency the provider computes
// calculated prices under. It is applied uniformly to every variant of
// every product returned by a fetch.
type PricingContext struct {
	RegionID     string
	CurrencyCode string
}

// ProductFilter narrows a product fetch. Status is always pinned to
// published by the implementation; only category closure and collection
// are caller-controlled.
type ProductFilter struct {
	// CategoryIDs is the resolved category closure. Empty means no
	// category constraint.
	CategoryIDs []string
	// CollectionID constrains to a single collection when non-empty.
	CollectionID string
}

// ProductSource fetches priced product records from the remote catalog
// provider. A fetch failure is fatal for the whole query; callers must not
// degrade around it.
type ProductSource interface {
	FetchProducts(ctx context.Context, filter ProductFilter, pricing PricingContext) ([]*domain.Product, error)
}

// CategorySource exposes the provider's category tree one hop at a time.
type CategorySource interface {
	// GetCategory returns a single category or domain.ErrCategoryNotFound.
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	// ListChildren returns the ids of the direct children of parentID.
	ListChildren(ctx context.Context, parentID string) ([]string, error)
}

// SalesChannel is a storefront context inventory quantities are scoped to.
type SalesChannel struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ChannelSource lists the sales channels that are currently enabled.
type ChannelSource interface {
	ListEnabledChannels(ctx context.Context) ([]SalesChannel, error)
}

// AvailabilitySource bulk-fetches per-variant availability quantities for
// a sales channel.
type AvailabilitySource interface {
	GetVariantAvailability(ctx context.Context, variantIDs []string, channelID string) (map[string]int, error)
}
