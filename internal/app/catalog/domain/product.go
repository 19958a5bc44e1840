package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses as reported by the commerce platform.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Product is a catalog product as returned by the remote catalog provider.
// The service treats it as read-only for the duration of one request; the
// only mutation is the availability merge onto its variants.
type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Handle      string     `json:"handle"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Categories  []Category `json:"categories,omitempty"`
	Tags        []Tag      `json:"tags,omitempty"`
	Images      []Image    `json:"images,omitempty"`
	Variants    []*Variant `json:"variants"`
}

// Category is a node in the provider's category tree. ParentID is nil for
// top-level categories.
type Category struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_category_id"`
	Name     string  `json:"name,omitempty"`
	Handle   string  `json:"handle,omitempty"`
}

// Tag is a free-form product tag.
type Tag struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Image is a product image reference.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Variant is a purchasable variation of a product. InventoryQuantity is
// absent until the availability resolver merges it in.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title,omitempty"`
	SKU               string           `json:"sku,omitempty"`
	ManageInventory   bool             `json:"manage_inventory"`
	AllowBackorder    bool             `json:"allow_backorder"`
	InventoryQuantity *int             `json:"inventory_quantity,omitempty"`
	CalculatedPrice   *CalculatedPrice `json:"calculated_price,omitempty"`
}

// CalculatedPrice is the price computed by the provider for the pricing
// context (region + currency) the products were fetched under.
// OriginalAmount is absent when no price list applies to the variant.
type CalculatedPrice struct {
	CalculatedAmount decimal.NullDecimal `json:"calculated_amount"`
	OriginalAmount   decimal.NullDecimal `json:"original_amount"`
	PriceListType    string              `json:"price_list_type,omitempty"`
	CurrencyCode     string              `json:"currency_code,omitempty"`
}

// MinCalculatedAmount returns the lowest calculated amount across the
// product's variants. The second return value is false when no variant
// carries a price.
func (p *Product) MinCalculatedAmount() (decimal.Decimal, bool) {
	var min decimal.Decimal
	found := false
	for _, v := range p.Variants {
		if v == nil || v.CalculatedPrice == nil || !v.CalculatedPrice.CalculatedAmount.Valid {
			continue
		}
		amount := v.CalculatedPrice.CalculatedAmount.Decimal
		if !found || amount.LessThan(min) {
			min = amount
			found = true
		}
	}
	return min, found
}
