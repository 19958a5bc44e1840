// Package discounted_products implements the sale-items query: fetch
// published products under a pricing context and keep those with at least
// one discounted variant.
package discounted_products

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
)

// DefaultLimit is the number of products returned when the request
// carries no limit.
const DefaultLimit = 12

// Request contains the pricing context and the result cap.
type Request struct {
	RegionID     string
	CurrencyCode string
	Limit        int
}

// Result holds the first Limit discounted products. Count is the total
// number of discounted products before the cap.
type Result struct {
	Products []*domain.Product
	Count    int
}

// Query handles the discounted products use case.
type Query struct {
	products contracts.ProductSource
}

// NewQuery creates a new discounted products query.
func NewQuery(products contracts.ProductSource) *Query {
	return &Query{products: products}
}

// Execute fetches the published catalog and filters it down to products
// with a discounted variant. The product fetch is fail-closed.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	pricing := contracts.PricingContext{
		RegionID:     req.RegionID,
		CurrencyCode: req.CurrencyCode,
	}

	products, err := q.products.FetchProducts(ctx, contracts.ProductFilter{}, pricing)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}

	discounted := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if domain.ProductOnSale(p) {
			discounted = append(discounted, p)
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := discounted
	if len(page) > limit {
		page = page[:limit]
	}

	return &Result{
		Products: page,
		Count:    len(discounted),
	}, nil
}
