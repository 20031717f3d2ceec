// Package normalize converts raw CSV field values into DB-ready types.
// Every function is total: malformed numeric input falls back to a zero
// value instead of failing the row, while unparseable dates signal a skip.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const tickerLength = 6

// Ticker trims the raw code and left-pads it with '0' to exactly six
// characters. Content is not validated; any string is accepted and padded.
func Ticker(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= tickerLength {
		return s
	}
	return strings.Repeat("0", tickerLength-len(s)) + s
}

// Date parses the first ten characters of the trimmed input as YYYY-MM-DD.
// The second return value is false when the input has no parseable date
// prefix, in which case the row must be skipped.
func Date(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Timestamp rewrites an ISO-ish datetime into the naive local format stored
// in the candle table: the 'T' separator becomes a space and a trailing
// "+00:00" or "Z" UTC marker is stripped.
func Timestamp(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "T", " ")
	s = strings.ReplaceAll(s, "+00:00", "")
	s = strings.TrimSuffix(s, "Z")
	return strings.TrimSpace(s)
}

// Decimal2 coerces the input to a fixed-point decimal with two fractional
// digits, rounding half up. Empty input, "nan" and anything unparseable
// become 0.00.
func Decimal2(raw string) decimal.Decimal {
	return DecimalN(raw, 2)
}

// DecimalN is Decimal2 with a configurable scale.
func DecimalN(raw string, scale int32) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.Zero.Round(scale)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero.Round(scale)
	}
	return d.Round(scale)
}

// Int coerces the input to an integer through a float intermediate, so
// values like "1234.0" parse and "150.9" truncates to 150. Failures yield 0.
func Int(raw string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

// Float coerces the input to a float64, falling back to def on failure.
func Float(raw string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
