package domain

// PriceListTypeSale marks a calculated price that comes from a promotional
// price list rather than the normal one.
const PriceListTypeSale = "sale"

// VariantOnSale reports whether a variant's calculated price is discounted:
// either it comes from a sale price list, or an original amount exists and
// is strictly greater than the calculated amount.
func VariantOnSale(v *Variant) bool {
	if v == nil || v.CalculatedPrice == nil {
		return false
	}
	cp := v.CalculatedPrice
	if cp.PriceListType == PriceListTypeSale {
		return true
	}
	return cp.OriginalAmount.Valid && cp.CalculatedAmount.Valid &&
		cp.OriginalAmount.Decimal.GreaterThan(cp.CalculatedAmount.Decimal)
}

// ProductOnSale reports whether any variant of the product is on sale.
func ProductOnSale(p *Product) bool {
	for _, v := range p.Variants {
		if VariantOnSale(v) {
			return true
		}
	}
	return false
}
