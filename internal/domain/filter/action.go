package filter

import (
	"errors"
	"fmt"

	"github.com/your-org/coffee-storefront/internal/domain/catalog"
)

var (
	ErrUnknownAction     = errors.New("unknown filter action")
	ErrUnknownPriceRange = errors.New("unknown price range")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrMissingValue      = errors.New("filter action is missing its value")
)

// ActionType names a filter transition
type ActionType string

const (
	ActionToggleBrand      ActionType = "toggle_brand"
	ActionToggleRating     ActionType = "toggle_rating"
	ActionToggleCategory   ActionType = "toggle_category"
	ActionSelectPriceRange ActionType = "select_price_range"
	ActionSetCustomPrice   ActionType = "set_custom_price"
	ActionResetPrice       ActionType = "reset_price"
	ActionClearAll         ActionType = "clear_all"
)

// Action is a filter transition expressed as data. Only the fields relevant
// to Type are read.
type Action struct {
	Type         ActionType `json:"type" binding:"required"`
	Brand        string     `json:"brand,omitempty"`
	Rating       int        `json:"rating,omitempty"`
	CategoryID   string     `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	PriceRange   string     `json:"price_range,omitempty"`
	MinPrice     string     `json:"min_price,omitempty"`
	MaxPrice     string     `json:"max_price,omitempty"`
}

// Bounds is the dataset context some transitions need
type Bounds struct {
	Min    int64
	Max    int64
	Ranges []PriceRange
}

// BoundsOf takes the dataset context from a sidebar
func BoundsOf(s Sidebar) Bounds {
	return Bounds{Min: s.MinPrice, Max: s.MaxPrice, Ranges: s.PriceRanges}
}

// Dispatch applies a to s
func Dispatch(s State, a Action, b Bounds) (State, error) {
	s = Normalize(s)

	switch a.Type {
	case ActionToggleBrand:
		if a.Brand == "" {
			return s, fmt.Errorf("%w: brand", ErrMissingValue)
		}
		return ToggleBrand(s, a.Brand), nil
	case ActionToggleRating:
		if a.Rating < 1 || a.Rating > 5 {
			return s, fmt.Errorf("%w: %d", ErrInvalidRating, a.Rating)
		}
		return ToggleRating(s, a.Rating), nil
	case ActionToggleCategory:
		if a.CategoryName == "" && a.CategoryID != catalog.AllCategoriesID {
			return s, fmt.Errorf("%w: category_name", ErrMissingValue)
		}
		return ToggleCategory(s, a.CategoryID, a.CategoryName), nil
	case ActionSelectPriceRange:
		r, ok := FindRange(b.Ranges, a.PriceRange)
		if !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownPriceRange, a.PriceRange)
		}
		return SelectPriceRange(s, r), nil
	case ActionSetCustomPrice:
		return SetCustomPrice(s, a.MinPrice, a.MaxPrice, b.Max), nil
	case ActionResetPrice:
		return ResetPrice(s, b.Min, b.Max), nil
	case ActionClearAll:
		return ClearAll(s, b.Min, b.Max), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
}
