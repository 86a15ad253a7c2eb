package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a unit price cell. A leading currency sign and thousands
// separators are dropped; an empty cell is zero.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return d, nil
}

// ParseQuantity parses a quantity cell. Spreadsheet exports often store
// counts as floats, so integral decimals such as "5.0" are accepted.
func ParseQuantity(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", raw, err)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("invalid quantity %q: not a whole number", raw)
	}
	n := d.BigInt()
	if !n.IsInt64() || n.Int64() > math.MaxInt || n.Int64() < math.MinInt {
		return 0, fmt.Errorf("invalid quantity %q: out of range", raw)
	}
	return int(n.Int64()), nil
}

// FormatPrice renders a price with two decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
