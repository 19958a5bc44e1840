package storeapi

import (
	"context"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/pkg/graph"
)

var (
	_ contracts.ChannelSource      = (*Client)(nil)
	_ contracts.AvailabilitySource = (*Client)(nil)
)

// ListEnabledChannels returns the sales channels that are not disabled,
// in provider order.
func (c *Client) ListEnabledChannels(ctx context.Context) ([]contracts.SalesChannel, error) {
	req := graph.Entity("sales_channel").
		Fields("id", "name").
		Where(graph.Eq("is_disabled", false)).
		Build()

	var channels []contracts.SalesChannel
	if err := c.graphQuery(ctx, req, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

type availabilityRequest struct {
	VariantIDs     []string `json:"variant_ids"`
	SalesChannelID string   `json:"sales_channel_id"`
}

type availabilityResponse struct {
	Availability map[string]int `json:"availability"`
}

// GetVariantAvailability bulk-fetches availability quantities for the
// given variants, scoped to a sales channel. Variants unknown to the
// provider are simply absent from the returned map.
func (c *Client) GetVariantAvailability(ctx context.Context, variantIDs []string, channelID string) (map[string]int, error) {
	payload := availabilityRequest{
		VariantIDs:     variantIDs,
		SalesChannelID: channelID,
	}

	var resp availabilityResponse
	if err := c.post(ctx, availabilityPath, payload, &resp); err != nil {
		return nil, err
	}
	return resp.Availability, nil
}
