package filter

import (
	"testing"

	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	sidebar := BuildSidebar([]catalog.Product{{Price: 100_000}, {Price: 400_000}})
	bounds := BoundsOf(sidebar)
	s := NewState(bounds.Min, bounds.Max)

	s, err := Dispatch(s, Action{Type: ActionToggleBrand, Brand: "Illy"}, bounds)
	require.NoError(t, err)
	assert.Equal(t, []string{"Illy"}, s.Brands)

	s, err = Dispatch(s, Action{Type: ActionSelectPriceRange, PriceRange: sidebar.PriceRanges[1].Value}, bounds)
	require.NoError(t, err)
	assert.Equal(t, sidebar.PriceRanges[1].Min, s.Low)
	assert.Equal(t, sidebar.PriceRanges[1].Value, s.PriceRange)

	s, err = Dispatch(s, Action{Type: ActionSetCustomPrice, MinPrice: "150000"}, bounds)
	require.NoError(t, err)
	assert.Equal(t, int64(150_000), s.Low)
	assert.Equal(t, int64(400_000), s.High)

	s, err = Dispatch(s, Action{Type: ActionResetPrice}, bounds)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), s.Low)
	assert.Empty(t, s.PriceRange)

	s, err = Dispatch(s, Action{Type: ActionToggleCategory, CategoryID: catalog.AllCategoriesID}, bounds)
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.AllCategoriesName}, s.Categories)

	s, err = Dispatch(s, Action{Type: ActionClearAll}, bounds)
	require.NoError(t, err)
	assert.Equal(t, NewState(100_000, 400_000), s)
}

func TestDispatchRejectsBadActions(t *testing.T) {
	bounds := Bounds{Min: 0, Max: 100, Ranges: GenerateRanges(0, 100)}
	s := NewState(0, 100)

	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown type", Action{Type: "sort"}, ErrUnknownAction},
		{"rating too low", Action{Type: ActionToggleRating, Rating: 0}, ErrInvalidRating},
		{"rating too high", Action{Type: ActionToggleRating, Rating: 6}, ErrInvalidRating},
		{"unknown range", Action{Type: ActionSelectPriceRange, PriceRange: "1-2"}, ErrUnknownPriceRange},
		{"missing brand", Action{Type: ActionToggleBrand}, ErrMissingValue},
		{"missing category", Action{Type: ActionToggleCategory, CategoryID: "c1"}, ErrMissingValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Dispatch(s, tt.action, bounds)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, s, next)
		})
	}
}
