// Package availability annotates variant records with per-channel
// inventory quantities.
package availability

import (
	"context"
	"log"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/domain"
)

// Resolver merges inventory quantities onto variants. Every failure path
// is fail-open: annotation is skipped and the products pass through
// unchanged, so stock-based UI decisions degrade to "unknown".
type Resolver struct {
	channels     contracts.ChannelSource
	availability contracts.AvailabilitySource
	channelID    string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithChannelID pins the sales channel instead of discovering the first
// enabled one. Deterministic channel selection for tests and for
// deployments serving a single storefront.
func WithChannelID(id string) Option {
	return func(r *Resolver) {
		r.channelID = id
	}
}

// NewResolver creates an availability resolver.
func NewResolver(channels contracts.ChannelSource, availability contracts.AvailabilitySource, opts ...Option) *Resolver {
	r := &Resolver{
		channels:     channels,
		availability: availability,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Annotate resolves the active sales channel, bulk-fetches availability
// for every variant of the given products, and writes inventory_quantity
// in place. Variants missing from the provider's response keep their
// quantity unset.
func (r *Resolver) Annotate(ctx context.Context, products []*domain.Product) {
	variantIDs := collectVariantIDs(products)
	if len(variantIDs) == 0 {
		return
	}

	channelID := r.channelID
	if channelID == "" {
		channels, err := r.channels.ListEnabledChannels(ctx)
		if err != nil {
			log.Printf("availability: error listing sales channels: %v", err)
			return
		}
		if len(channels) == 0 {
			log.Printf("availability: no enabled sales channel, skipping annotation")
			return
		}
		channelID = channels[0].ID
	}

	quantities, err := r.availability.GetVariantAvailability(ctx, variantIDs, channelID)
	if err != nil {
		log.Printf("availability: error fetching variant availability: %v", err)
		return
	}

	for _, p := range products {
		for _, v := range p.Variants {
			if qty, ok := quantities[v.ID]; ok {
				q := qty
				v.InventoryQuantity = &q
			}
		}
	}
}

func collectVariantIDs(products []*domain.Product) []string {
	var ids []string
	for _, p := range products {
		for _, v := range p.Variants {
			if v != nil && v.ID != "" {
				ids = append(ids, v.ID)
			}
		}
	}
	return ids
}
