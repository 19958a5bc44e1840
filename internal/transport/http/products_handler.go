// Package http is the query boundary: it validates and normalizes the
// storefront's query parameters, invokes the catalog queries, and formats
// the response envelopes.
package http

import (
	"net/http"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/queries/browse_products"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/queries/discounted_products"
)

// ProductsHandler serves the store products endpoints.
type ProductsHandler struct {
	browse     *browse_products.Query
	discounted *discounted_products.Query
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(browse *browse_products.Query, discounted *discounted_products.Query) *ProductsHandler {
	return &ProductsHandler{
		browse:     browse,
		discounted: discounted,
	}
}

// filteredResponse is the page envelope of GET /store/products-filtered.
type filteredResponse struct {
	Products []*domain.Product `json:"products"`
	Count    int               `json:"count"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// discountedResponse is the envelope of GET /store/products-discounted.
type discountedResponse struct {
	Products []*domain.Product `json:"products"`
	Count    int               `json:"count"`
}

// HandleFiltered handles GET /store/products-filtered.
//
// region_id and currency_code are required (400 without them). A failed
// product fetch is a 500 with no partial data; closure and availability
// degradation never surface here.
func (h *ProductsHandler) HandleFiltered(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	regionID := q.Get("region_id")
	currencyCode := q.Get("currency_code")
	if regionID == "" || currencyCode == "" {
		respondError(w, http.StatusBadRequest, "region_id and currency_code are required", "")
		return
	}

	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = browse_products.SortCreatedAt
	}

	req := &browse_products.Request{
		CategoryID:        firstParam(q, "category_id"),
		CollectionID:      firstParam(q, "collection_id"),
		RegionID:          regionID,
		CurrencyCode:      currencyCode,
		SortBy:            sortBy,
		Page:              parseIntParam(q.Get("page"), 1),
		Limit:             parseIntParam(q.Get("limit"), browse_products.DefaultLimit),
		MinPrice:          parseAmountParam(q.Get("min_price")),
		MaxPrice:          parseAmountParam(q.Get("max_price")),
		Discounted:        q.Get("discounted") == "true",
		IncludeRootFamily: q.Get("include_root_family") == "true",
	}

	res, err := h.browse.Execute(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, filteredResponse{
		Products: res.Products,
		Count:    res.Count,
		Offset:   res.Offset,
		Limit:    res.Limit,
	})
}

// HandleDiscounted handles GET /store/products-discounted.
func (h *ProductsHandler) HandleDiscounted(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	regionID := q.Get("region_id")
	currencyCode := q.Get("currency_code")
	if regionID == "" || currencyCode == "" {
		respondError(w, http.StatusBadRequest, "region_id and currency_code are required", "")
		return
	}

	req := &discounted_products.Request{
		RegionID:     regionID,
		CurrencyCode: currencyCode,
		Limit:        parseIntParam(q.Get("limit"), discounted_products.DefaultLimit),
	}

	res, err := h.discounted.Execute(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch discounted products", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, discountedResponse{
		Products: res.Products,
		Count:    res.Count,
	})
}
