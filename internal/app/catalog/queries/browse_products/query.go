// Package browse_products implements the catalog browse query: category
// closure expansion, priced product fetch, availability annotation, and
// the in-memory filter/sort/paginate pipeline.
package browse_products

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/availability"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/closure"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
)

// Sort criteria accepted by the query. Anything else falls back to
// SortCreatedAt.
const (
	SortCreatedAt = "created_at"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// DefaultLimit is the page size used when the request carries none.
const DefaultLimit = 12

// Request contains filtering, sorting, and pagination parameters.
// MinPrice and MaxPrice are nil when unconstrained.
type Request struct {
	CategoryID        string
	CollectionID      string
	RegionID          string
	CurrencyCode      string
	SortBy            string
	Page              int
	Limit             int
	MinPrice          *decimal.Decimal
	MaxPrice          *decimal.Decimal
	Discounted        bool
	IncludeRootFamily bool
}

// Result is one page of matching products. Count is the total after all
// in-memory filters, before pagination.
type Result struct {
	Products []*domain.Product
	Count    int
	Offset   int
	Limit    int
}

// Query handles the browse products use case.
//
// Failure policy per stage: category closure and availability annotation
// are fail-open (degraded data, no error); the product fetch is
// fail-closed (its error fails the whole query); the in-memory stages are
// total functions and cannot fail.
type Query struct {
	products     contracts.ProductSource
	closure      *closure.Resolver
	availability *availability.Resolver
}

// NewQuery creates a new browse products query.
func NewQuery(products contracts.ProductSource, closure *closure.Resolver, availability *availability.Resolver) *Query {
	return &Query{
		products:     products,
		closure:      closure,
		availability: availability,
	}
}

// Execute runs the browse pipeline and returns the requested page.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	filter := contracts.ProductFilter{CollectionID: req.CollectionID}
	if req.CategoryID != "" {
		filter.CategoryIDs = q.closure.Resolve(ctx, req.CategoryID, req.IncludeRootFamily)
	}

	pricing := contracts.PricingContext{
		RegionID:     req.RegionID,
		CurrencyCode: req.CurrencyCode,
	}

	products, err := q.products.FetchProducts(ctx, filter, pricing)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}

	q.availability.Annotate(ctx, products)

	if req.Discounted {
		products = filterOnSale(products)
	}
	if req.MinPrice != nil || req.MaxPrice != nil {
		products = filterPriceRange(products, req.MinPrice, req.MaxPrice)
	}

	sortProducts(products, req.SortBy)

	count := len(products)
	offset, limit := pageWindow(req.Page, req.Limit)

	return &Result{
		Products: slicePage(products, offset, limit),
		Count:    count,
		Offset:   offset,
		Limit:    limit,
	}, nil
}

// filterOnSale keeps products with at least one discounted variant.
func filterOnSale(products []*domain.Product) []*domain.Product {
	kept := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if domain.ProductOnSale(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// filterPriceRange keeps products where any variant's calculated amount
// falls within [min ?? 0, max ?? +inf], bounds inclusive. Variants with
// no calculated price never match.
func filterPriceRange(products []*domain.Product, min, max *decimal.Decimal) []*domain.Product {
	lower := decimal.Zero
	if min != nil {
		lower = *min
	}

	kept := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		for _, v := range p.Variants {
			if v == nil || v.CalculatedPrice == nil || !v.CalculatedPrice.CalculatedAmount.Valid {
				continue
			}
			amount := v.CalculatedPrice.CalculatedAmount.Decimal
			if amount.LessThan(lower) {
				continue
			}
			if max != nil && amount.GreaterThan(*max) {
				continue
			}
			kept = append(kept, p)
			break
		}
	}
	return kept
}

// sortProducts orders the list in place. Price sorts rank by the minimum
// variant amount; products without any priced variant go last in both
// directions. The sort is stable, so equal keys keep provider order.
func sortProducts(products []*domain.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			pi, iOK := products[i].MinCalculatedAmount()
			pj, jOK := products[j].MinCalculatedAmount()
			if !iOK || !jOK {
				return iOK
			}
			return pi.LessThan(pj)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			pi, iOK := products[i].MinCalculatedAmount()
			pj, jOK := products[j].MinCalculatedAmount()
			if !iOK || !jOK {
				return iOK
			}
			return pi.GreaterThan(pj)
		})
	default:
		// created_at, newest first
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// pageWindow clamps page to a minimum of 1 and applies the default limit.
func pageWindow(page, limit int) (offset, size int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return (page - 1) * limit, limit
}

// slicePage returns the [offset, offset+limit) window, clamped to the
// list bounds. Always non-nil so the response serializes as an array.
func slicePage(products []*domain.Product, offset, limit int) []*domain.Product {
	if offset >= len(products) {
		return []*domain.Product{}
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}
