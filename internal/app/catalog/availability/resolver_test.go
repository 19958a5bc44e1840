package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog-service/internal/pkg/fixtures"
)

type stubChannels struct {
	channels []contracts.SalesChannel
	err      error
	calls    int
}

func (s *stubChannels) ListEnabledChannels(context.Context) ([]contracts.SalesChannel, error) {
	s.calls++
	return s.channels, s.err
}

type stubAvailability struct {
	quantities    map[string]int
	err           error
	calls         int
	gotVariantIDs []string
	gotChannelID  string
}

func (s *stubAvailability) GetVariantAvailability(_ context.Context, variantIDs []string, channelID string) (map[string]int, error) {
	s.calls++
	s.gotVariantIDs = variantIDs
	s.gotChannelID = channelID
	return s.quantities, s.err
}

func testProducts(t *testing.T) []*domain.Product {
	t.Helper()
	f := fixtures.NewFactory(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	return []*domain.Product{
		f.Product("boots", fixtures.Variant(30), fixtures.Variant(35)),
		f.Product("sandals", fixtures.Variant(15)),
	}
}

func TestResolver_Annotate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges quantities from the first enabled channel", func(t *testing.T) {
		products := testProducts(t)
		channels := &stubChannels{channels: []contracts.SalesChannel{{ID: "sc-1"}, {ID: "sc-2"}}}
		avail := &stubAvailability{quantities: map[string]int{
			products[0].Variants[0].ID: 7,
			products[1].Variants[0].ID: 0,
		}}

		NewResolver(channels, avail).Annotate(ctx, products)

		assert.Equal(t, "sc-1", avail.gotChannelID)
		assert.Len(t, avail.gotVariantIDs, 3)
		require.NotNil(t, products[0].Variants[0].InventoryQuantity)
		assert.Equal(t, 7, *products[0].Variants[0].InventoryQuantity)
		require.NotNil(t, products[1].Variants[0].InventoryQuantity)
		assert.Equal(t, 0, *products[1].Variants[0].InventoryQuantity)
		// Not in the provider's map: stays unknown.
		assert.Nil(t, products[0].Variants[1].InventoryQuantity)
	})

	t.Run("configured channel skips discovery", func(t *testing.T) {
		products := testProducts(t)
		channels := &stubChannels{channels: []contracts.SalesChannel{{ID: "sc-1"}}}
		avail := &stubAvailability{quantities: map[string]int{}}

		NewResolver(channels, avail, WithChannelID("sc-fixed")).Annotate(ctx, products)

		assert.Equal(t, 0, channels.calls)
		assert.Equal(t, "sc-fixed", avail.gotChannelID)
	})

	t.Run("no enabled channel skips annotation", func(t *testing.T) {
		products := testProducts(t)
		avail := &stubAvailability{}

		NewResolver(&stubChannels{}, avail).Annotate(ctx, products)

		assert.Equal(t, 0, avail.calls)
		assert.Nil(t, products[0].Variants[0].InventoryQuantity)
	})

	t.Run("channel lookup failure is fail-open", func(t *testing.T) {
		products := testProducts(t)
		channels := &stubChannels{err: errors.New("channel service down")}
		avail := &stubAvailability{}

		NewResolver(channels, avail).Annotate(ctx, products)

		assert.Equal(t, 0, avail.calls)
		assert.Nil(t, products[0].Variants[0].InventoryQuantity)
	})

	t.Run("availability failure is fail-open", func(t *testing.T) {
		products := testProducts(t)
		channels := &stubChannels{channels: []contracts.SalesChannel{{ID: "sc-1"}}}
		avail := &stubAvailability{err: errors.New("inventory service down")}

		NewResolver(channels, avail).Annotate(ctx, products)

		assert.Nil(t, products[0].Variants[0].InventoryQuantity)
		assert.Nil(t, products[1].Variants[0].InventoryQuantity)
	})

	t.Run("no variants means no provider calls", func(t *testing.T) {
		channels := &stubChannels{channels: []contracts.SalesChannel{{ID: "sc-1"}}}
		avail := &stubAvailability{}

		NewResolver(channels, avail).Annotate(ctx, []*domain.Product{{ID: "p1"}})

		assert.Equal(t, 0, channels.calls)
		assert.Equal(t, 0, avail.calls)
	})
}
