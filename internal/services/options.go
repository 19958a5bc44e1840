package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/availability"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/closure"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/queries/browse_products"
	"github.com/light-bringer/storefront-catalog-service/internal/app/catalog/queries/discounted_products"
	"github.com/light-bringer/storefront-catalog-service/internal/provider/storeapi"
	transport "github.com/light-bringer/storefront-catalog-service/internal/transport/http"
)

// Config carries the provider connection settings.
type Config struct {
	// StoreAPIURL is the base URL of the commerce platform's store API.
	StoreAPIURL string
	// PublishableKey is sent as x-publishable-api-key on every call.
	PublishableKey string
	// SalesChannelID pins availability lookups to one channel. Empty
	// means discover the first enabled channel per request.
	SalesChannelID string
	// ProviderTimeout bounds each provider call.
	ProviderTimeout time.Duration
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Client          *storeapi.Client
	ProductsHandler *transport.ProductsHandler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(cfg Config) (*ServiceOptions, error) {
	if cfg.StoreAPIURL == "" {
		return nil, fmt.Errorf("store API URL is required")
	}

	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	// 1. Provider client, shared by all three source contracts
	client := storeapi.NewClient(cfg.StoreAPIURL, cfg.PublishableKey,
		storeapi.WithHTTPClient(&http.Client{Timeout: timeout}))

	// 2. Resolvers
	closureResolver := closure.NewResolver(client)

	var availOpts []availability.Option
	if cfg.SalesChannelID != "" {
		availOpts = append(availOpts, availability.WithChannelID(cfg.SalesChannelID))
	}
	availabilityResolver := availability.NewResolver(client, client, availOpts...)

	// 3. Queries
	browseQuery := browse_products.NewQuery(client, closureResolver, availabilityResolver)
	discountedQuery := discounted_products.NewQuery(client)

	// 4. HTTP handler
	productsHandler := transport.NewProductsHandler(browseQuery, discountedQuery)

	return &ServiceOptions{
		Client:          client,
		ProductsHandler: productsHandler,
	}, nil
}
