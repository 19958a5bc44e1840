package browse_products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/availability"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/closure"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog-service/internal/pkg/fixtures"
)

type stubProducts struct {
	products   []*domain.Product
	err        error
	gotFilter  contracts.ProductFilter
	gotPricing contracts.PricingContext
}

func (s *stubProducts) FetchProducts(_ context.Context, filter contracts.ProductFilter, pricing contracts.PricingContext) ([]*domain.Product, error) {
	s.gotFilter = filter
	s.gotPricing = pricing
	return s.products, s.err
}

type stubCategories struct {
	children map[string][]string
	parents  map[string]string
}

func (s *stubCategories) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	cat := &domain.Category{ID: id}
	if parent, ok := s.parents[id]; ok {
		cat.ParentID = &parent
	}
	return cat, nil
}

func (s *stubCategories) ListChildren(_ context.Context, parentID string) ([]string, error) {
	return s.children[parentID], nil
}

type stubChannels struct {
	channels []contracts.SalesChannel
	err      error
}

func (s *stubChannels) ListEnabledChannels(context.Context) ([]contracts.SalesChannel, error) {
	return s.channels, s.err
}

type stubAvailability struct {
	quantities map[string]int
	err        error
}

func (s *stubAvailability) GetVariantAvailability(context.Context, []string, string) (map[string]int, error) {
	return s.quantities, s.err
}

// newTestQuery wires a Query with real resolvers over the given stubs.
func newTestQuery(products *stubProducts, cats *stubCategories, channels contracts.ChannelSource, avail contracts.AvailabilitySource) *Query {
	return NewQuery(
		products,
		closure.NewResolver(cats),
		availability.NewResolver(channels, avail),
	)
}

func dec(t *testing.T, raw string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	return &d
}

func titles(products []*domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("price ascending with pagination", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		source := &stubProducts{products: []*domain.Product{
			f.Product("p30", fixtures.Variant(30)),
			f.Product("p10", fixtures.Variant(10)),
			f.Product("p20", fixtures.Variant(20)),
		}}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		res, err := q.Execute(ctx, &Request{
			CategoryID:   "cat-shoes",
			RegionID:     "r1",
			CurrencyCode: "EUR",
			SortBy:       SortPriceAsc,
			Page:         1,
			Limit:        2,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"p10", "p20"}, titles(res.Products))
		assert.Equal(t, 3, res.Count)
		assert.Equal(t, 0, res.Offset)
		assert.Equal(t, 2, res.Limit)
		assert.Equal(t, contracts.PricingContext{RegionID: "r1", CurrencyCode: "EUR"}, source.gotPricing)
		assert.Equal(t, []string{"cat-shoes"}, source.gotFilter.CategoryIDs)
	})

	t.Run("category closure expands into the fetch filter", func(t *testing.T) {
		source := &stubProducts{}
		cats := &stubCategories{children: map[string][]string{
			"R": {"A", "B"},
			"A": {"D"},
		}}
		q := newTestQuery(source, cats, &stubChannels{}, &stubAvailability{})

		_, err := q.Execute(ctx, &Request{CategoryID: "R", RegionID: "r1", CurrencyCode: "EUR"})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"R", "A", "B", "D"}, source.gotFilter.CategoryIDs)
	})

	t.Run("family mode resolves from the top-level ancestor", func(t *testing.T) {
		source := &stubProducts{}
		cats := &stubCategories{
			children: map[string][]string{"R": {"D"}},
			parents:  map[string]string{"D": "R"},
		}
		q := newTestQuery(source, cats, &stubChannels{}, &stubAvailability{})

		_, err := q.Execute(ctx, &Request{
			CategoryID:        "D",
			RegionID:          "r1",
			CurrencyCode:      "EUR",
			IncludeRootFamily: true,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"R", "D"}, source.gotFilter.CategoryIDs)
	})

	t.Run("discounted filter keeps only products with a sale variant", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		sale := f.Product("on-sale", fixtures.SaleVariant(1000, 700))
		source := &stubProducts{products: []*domain.Product{
			f.Product("regular", fixtures.Variant(500)),
			sale,
		}}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR", Discounted: true})

		require.NoError(t, err)
		require.Len(t, res.Products, 1)
		assert.Equal(t, sale.ID, res.Products[0].ID)
		assert.Equal(t, 1, res.Count)
	})

	t.Run("price range bounds are inclusive", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		source := &stubProducts{products: []*domain.Product{
			f.Product("below", fixtures.Variant(5)),
			f.Product("at-min", fixtures.Variant(10)),
			f.Product("inside", fixtures.Variant(17)),
			f.Product("at-max", fixtures.Variant(30)),
			f.Product("above", fixtures.Variant(31)),
		}}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		res, err := q.Execute(ctx, &Request{
			RegionID:     "r1",
			CurrencyCode: "EUR",
			MinPrice:     dec(t, "10"),
			MaxPrice:     dec(t, "30"),
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"at-min", "inside", "at-max"}, titles(res.Products))
		assert.Equal(t, 3, res.Count)
	})

	t.Run("priceless variants never match a price range", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		source := &stubProducts{products: []*domain.Product{
			f.Product("priceless", fixtures.PricelessVariant()),
			f.Product("priced", fixtures.Variant(20)),
		}}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR", MinPrice: dec(t, "0")})

		require.NoError(t, err)
		assert.Equal(t, []string{"priced"}, titles(res.Products))
	})

	t.Run("default sort is newest first", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		source := &stubProducts{products: []*domain.Product{
			f.Product("oldest", fixtures.Variant(10)),
			f.Product("middle", fixtures.Variant(10)),
			f.Product("newest", fixtures.Variant(10)),
		}}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR"})

		require.NoError(t, err)
		assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(res.Products))
	})

	t.Run("equal created_at keeps provider order", func(t *testing.T) {
		ts := start
		mk := func(title string) *domain.Product {
			return &domain.Product{ID: title, Title: title, CreatedAt: ts,
				Variants: []*domain.Variant{fixtures.Variant(10)}}
		}
		source := &stubProducts{products: []*domain.Product{mk("first"), mk("second"), mk("third")}}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR", SortBy: SortCreatedAt})

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "third"}, titles(res.Products))
	})

	t.Run("priceless products sort last in both price directions", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		products := func() []*domain.Product {
			return []*domain.Product{
				f.Product("no-price", fixtures.PricelessVariant()),
				f.Product("cheap", fixtures.Variant(10)),
				f.Product("expensive", fixtures.Variant(90)),
			}
		}

		for _, sortBy := range []string{SortPriceAsc, SortPriceDesc} {
			source := &stubProducts{products: products()}
			q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

			res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR", SortBy: sortBy})

			require.NoError(t, err)
			assert.Equal(t, "no-price", res.Products[2].Title, "sort_by=%s", sortBy)
		}
	})

	t.Run("pagination window", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		var all []*domain.Product
		for _, title := range []string{"e", "d", "c", "b", "a"} {
			all = append(all, f.Product(title, fixtures.Variant(10)))
		}
		source := &stubProducts{products: all}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		t.Run("middle page", func(t *testing.T) {
			res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR", Page: 2, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, 2, res.Offset)
			assert.Len(t, res.Products, 2)
			assert.Equal(t, 5, res.Count)
		})

		t.Run("past the end", func(t *testing.T) {
			res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR", Page: 4, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, 6, res.Offset)
			assert.Empty(t, res.Products)
			assert.Equal(t, 5, res.Count)
		})

		t.Run("page clamps to one", func(t *testing.T) {
			res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR", Page: 0, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, 0, res.Offset)
			assert.Len(t, res.Products, 2)
		})

		t.Run("default limit", func(t *testing.T) {
			res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR"})
			require.NoError(t, err)
			assert.Equal(t, DefaultLimit, res.Limit)
			assert.Len(t, res.Products, 5)
		})
	})

	t.Run("availability quantities land on variants", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		p := f.Product("boots", fixtures.Variant(30))
		source := &stubProducts{products: []*domain.Product{p}}
		channels := &stubChannels{channels: []contracts.SalesChannel{{ID: "sc-1"}}}
		avail := &stubAvailability{quantities: map[string]int{p.Variants[0].ID: 4}}
		q := newTestQuery(source, &stubCategories{}, channels, avail)

		res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR"})

		require.NoError(t, err)
		require.NotNil(t, res.Products[0].Variants[0].InventoryQuantity)
		assert.Equal(t, 4, *res.Products[0].Variants[0].InventoryQuantity)
	})

	t.Run("sales channel failure degrades without error", func(t *testing.T) {
		f := fixtures.NewFactory(start)
		source := &stubProducts{products: []*domain.Product{
			f.Product("boots", fixtures.Variant(30)),
		}}
		channels := &stubChannels{err: errors.New("channel lookup failed")}
		q := newTestQuery(source, &stubCategories{}, channels, &stubAvailability{})

		res, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR"})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.Nil(t, res.Products[0].Variants[0].InventoryQuantity)
	})

	t.Run("product fetch failure is fatal", func(t *testing.T) {
		source := &stubProducts{err: errors.New("provider down")}
		q := newTestQuery(source, &stubCategories{}, &stubChannels{}, &stubAvailability{})

		_, err := q.Execute(ctx, &Request{RegionID: "r1", CurrencyCode: "EUR"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider down")
	})
}
