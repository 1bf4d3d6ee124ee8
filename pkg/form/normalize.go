package form

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	minInt = decimal.NewFromInt(math.MinInt64)
	maxInt = decimal.NewFromInt(math.MaxInt64)
)

// Comparing decimals rescales them to a common exponent, so numbers are
// bounded in length and exponent before any arithmetic.
const (
	maxNumberLength = 64
	maxExponent     = 30
)

// NullIfEmpty trims v and returns nil for a null or blank value.
func NullIfEmpty(v Value) *string {
	if v.IsNull() {
		return nil
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return nil
	}
	return &s
}

// IntOrNull parses a strict integer. Blank or non-integral input is nil;
// "12.0" is accepted as 12, "12abc" and "12.5" are not.
func IntOrNull(v Value) *int64 {
	d, ok := parseDecimal(v)
	if !ok || !d.IsInteger() {
		return nil
	}
	n := d.IntPart()
	return &n
}

// NumberOrNull parses any finite decimal and rounds it half away from zero.
func NumberOrNull(v Value) *int64 {
	d, ok := parseDecimal(v)
	if !ok {
		return nil
	}
	n := d.Round(0).IntPart()
	return &n
}

// PositiveID parses a positive integer identifier.
func PositiveID(v Value) (int64, bool) {
	n := IntOrNull(v)
	if n == nil || *n <= 0 {
		return 0, false
	}
	return *n, true
}

func parseDecimal(v Value) (decimal.Decimal, bool) {
	s := NullIfEmpty(v)
	if s == nil {
		return decimal.Zero, false
	}
	if len(*s) > maxNumberLength {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return decimal.Zero, false
	}
	return d, true
}
