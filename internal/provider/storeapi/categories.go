package storeapi

import (
	"context"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog-service/internal/pkg/graph"
)

var categoryFields = []string{"id", "parent_category_id"}

// compile-time check that Client satisfies the category contract
var _ contracts.CategorySource = (*Client)(nil)

// GetCategory fetches a single category by id. Returns
// domain.ErrCategoryNotFound when the provider knows no such category.
func (c *Client) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	req := graph.Entity("product_category").
		Fields(categoryFields...).
		Where(graph.Eq("id", id)).
		Build()

	var categories []*domain.Category
	if err := c.graphQuery(ctx, req, &categories); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return categories[0], nil
}

// ListChildren returns the ids of the direct children of parentID.
func (c *Client) ListChildren(ctx context.Context, parentID string) ([]string, error) {
	req := graph.Entity("product_category").
		Fields(categoryFields...).
		Where(graph.Eq("parent_category_id", parentID)).
		Build()

	var categories []*domain.Category
	if err := c.graphQuery(ctx, req, &categories); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(categories))
	for _, cat := range categories {
		ids = append(ids, cat.ID)
	}
	return ids, nil
}
