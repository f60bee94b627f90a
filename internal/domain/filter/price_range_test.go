package filter

import (
	"strings"
	"testing"

	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRangesDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		min, max int64
	}{
		{"equal", 150_000, 150_000},
		{"just under threshold", 100_000, 109_999},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := GenerateRanges(tt.min, tt.max)
			require.Len(t, ranges, 1)
			assert.Equal(t, 1, ranges[0].ID)
			assert.Equal(t, tt.min, ranges[0].Min)
			assert.Equal(t, tt.max, ranges[0].Max)
			assert.Equal(t, FormatPrice(tt.min), ranges[0].Label)
		})
	}
}

func TestGenerateRangesCoverage(t *testing.T) {
	spans := [][2]int64{
		{0, 10_000},
		{50_000, 60_001},
		{90_000, 250_000},
		{100_000, 400_000},
		{123_457, 987_653},
		{0, 5_000_000},
		{1, 100_000_000},
	}
	for _, span := range spans {
		min, max := span[0], span[1]
		ranges := GenerateRanges(min, max)

		require.GreaterOrEqual(t, len(ranges), 1)
		require.LessOrEqual(t, len(ranges), 5)
		assert.Equal(t, min, ranges[0].Min, "first range starts at min")
		assert.Equal(t, max, ranges[len(ranges)-1].Max, "last range ends at max")
		for i, r := range ranges {
			assert.Equal(t, i+1, r.ID)
			assert.LessOrEqual(t, r.Min, r.Max)
			if i > 0 {
				assert.Equal(t, ranges[i-1].Max, r.Min, "ranges are contiguous")
			}
		}
	}
}

func TestGenerateRangesStep(t *testing.T) {
	ranges := GenerateRanges(100_000, 400_000)
	require.Len(t, ranges, 3)
	assert.Equal(t, "100000-200000", ranges[0].Value)
	assert.Equal(t, "200000-300000", ranges[1].Value)
	assert.Equal(t, "300000-400000", ranges[2].Value)
	assert.True(t, strings.Contains(ranges[0].Label, " - "))
}

func TestFormatPriceUsesPersianCurrency(t *testing.T) {
	label := FormatPrice(250000)
	assert.True(t, strings.HasSuffix(label, " تومان"))
	assert.NotContains(t, label, "250000")
}

func TestDefaultRanges(t *testing.T) {
	ranges := DefaultRanges()
	require.Len(t, ranges, 5)
	assert.Equal(t, int64(0), ranges[0].Min)
	assert.Equal(t, int64(5_000_000), ranges[4].Max)
}

func TestPriceBounds(t *testing.T) {
	min, max := PriceBounds(nil)
	assert.Equal(t, DefaultMinPrice, min)
	assert.Equal(t, DefaultMaxPrice, max)

	min, max = PriceBounds([]catalog.Product{{Price: 0}, {Price: 320_000}, {Price: 85_000}, {Price: 140_000}})
	assert.Equal(t, int64(85_000), min)
	assert.Equal(t, int64(320_000), max)
}
