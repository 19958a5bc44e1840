package http

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// firstParam normalizes a parameter that may arrive as a single value or
// a list; lists contribute only their first element. Single-category
// semantics are deliberate, not multi-category union.
func firstParam(values url.Values, key string) string {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// parseIntParam parses a positive integer, falling back to def for
// missing, malformed, or non-positive input.
func parseIntParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// parseAmountParam parses a price bound. Malformed numerics are treated
// as "no constraint", never as an error.
func parseAmountParam(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}
