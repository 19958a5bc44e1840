package storeapi

import (
	"context"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog-service/internal/pkg/graph"
)

// compile-time check that Client satisfies the product contract
var _ contracts.ProductSource = (*Client)(nil)

// productFields is the full record shape the storefront renders from.
var productFields = []string{
	"id",
	"title",
	"description",
	"handle",
	"thumbnail",
	"created_at",
	"updated_at",
	"status",
	"variants.*",
	"variants.calculated_price.*",
	"categories.*",
	"tags.*",
	"images.*",
}

// FetchProducts retrieves published products with prices calculated for
// the given pricing context. Category and collection constraints come
// from the filter; everything finer-grained happens in memory downstream.
func (c *Client) FetchProducts(ctx context.Context, filter contracts.ProductFilter, pricing contracts.PricingContext) ([]*domain.Product, error) {
	b := graph.Entity("product").
		Fields(productFields...).
		Where(graph.Eq("status", domain.StatusPublished)).
		Context("variants", map[string]interface{}{
			"calculated_price": map[string]interface{}{
				"region_id":     pricing.RegionID,
				"currency_code": pricing.CurrencyCode,
			},
		})

	if len(filter.CategoryIDs) > 0 {
		b = b.Where(graph.In("categories.id", filter.CategoryIDs))
	}
	if filter.CollectionID != "" {
		b = b.Where(graph.Eq("collection_id", filter.CollectionID))
	}

	var products []*domain.Product
	if err := c.graphQuery(ctx, b.Build(), &products); err != nil {
		return nil, err
	}
	return products, nil
}
