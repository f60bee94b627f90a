// internal/domain/filter/price_range.go
package filter

import (
	"fmt"

	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// degenerateSpan is the price spread under which a single range is produced
	degenerateSpan int64 = 10_000
	// bucketWidth is the nominal width used to decide how many ranges to produce
	bucketWidth int64 = 100_000
	maxRanges   int64 = 5

	// DefaultMinPrice and DefaultMaxPrice bound the price filter when the
	// catalog has no priced products.
	DefaultMinPrice int64 = 0
	DefaultMaxPrice int64 = 1_000_000

	currencySuffix = " تومان"
)

// PriceRange is a selectable price bucket
type PriceRange struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

var printer = message.NewPrinter(language.Persian)

// FormatPrice renders a toman amount with Persian digits and grouping
func FormatPrice(amount int64) string {
	return printer.Sprintf("%d", amount) + currencySuffix
}

// GenerateRanges partitions [min, max] into at most five contiguous ranges.
// Each range is half-open except the last, which is closed at max. A spread
// below 10,000 yields a single range labelled with min only.
func GenerateRanges(min, max int64) []PriceRange {
	if max < min {
		min, max = max, min
	}
	span := max - min
	if span < degenerateSpan {
		return []PriceRange{{
			ID:    1,
			Value: rangeValue(min, max),
			Label: FormatPrice(min),
			Min:   min,
			Max:   max,
		}}
	}

	count := ceilDiv(span, bucketWidth)
	if count > maxRanges {
		count = maxRanges
	}
	if count < 1 {
		count = 1
	}
	step := ceilDiv(span, count)

	ranges := make([]PriceRange, 0, count)
	for i := int64(0); i < count; i++ {
		lo := min + i*step
		hi := min + (i+1)*step
		if i == count-1 {
			hi = max
		}
		ranges = append(ranges, PriceRange{
			ID:    int(i) + 1,
			Value: rangeValue(lo, hi),
			Label: FormatPrice(lo) + " - " + FormatPrice(hi),
			Min:   lo,
			Max:   hi,
		})
	}
	return ranges
}

// DefaultRanges is the static bucket list offered for an empty catalog
func DefaultRanges() []PriceRange {
	return []PriceRange{
		{ID: 1, Value: "0-100000", Label: "زیر ۱۰۰ هزار تومان", Min: 0, Max: 100_000},
		{ID: 2, Value: "100000-300000", Label: "۱۰۰ تا ۳۰۰ هزار تومان", Min: 100_000, Max: 300_000},
		{ID: 3, Value: "300000-500000", Label: "۳۰۰ تا ۵۰۰ هزار تومان", Min: 300_000, Max: 500_000},
		{ID: 4, Value: "500000-1000000", Label: "۵۰۰ هزار تا ۱ میلیون", Min: 500_000, Max: 1_000_000},
		{ID: 5, Value: "1000000-5000000", Label: "بالای ۱ میلیون", Min: 1_000_000, Max: 5_000_000},
	}
}

// PriceBounds returns the lowest and highest strictly positive price, or the
// defaults when no product has one.
func PriceBounds(products []catalog.Product) (min, max int64) {
	found := false
	for _, p := range products {
		if p.Price <= 0 {
			continue
		}
		if !found {
			min, max = p.Price, p.Price
			found = true
			continue
		}
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	if !found {
		return DefaultMinPrice, DefaultMaxPrice
	}
	return min, max
}

// FindRange looks a range up by its selection value
func FindRange(ranges []PriceRange, value string) (PriceRange, bool) {
	for _, r := range ranges {
		if r.Value == value {
			return r, true
		}
	}
	return PriceRange{}, false
}

func rangeValue(min, max int64) string {
	return fmt.Sprintf("%d-%d", min, max)
}

func ceilDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
