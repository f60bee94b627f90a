// internal/domain/filter/state.go
package filter

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/your-org/coffee-storefront/internal/domain/catalog"
)

// CustomPriceRange marks bounds typed by the user rather than picked from a range
const CustomPriceRange = "custom"

// State is the active query over the product set. Selection sets are kept
// sorted and duplicate-free with nil for empty, so two states selecting the
// same things compare equal. Low never exceeds High.
type State struct {
	Brands     []string `json:"brands,omitempty"`
	Ratings    []int    `json:"ratings,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Low        int64    `json:"low"`
	High       int64    `json:"high"`
	PriceRange string   `json:"price_range,omitempty"`
}

// NewState selects nothing and spans the full price bounds
func NewState(min, max int64) State {
	low, high := ordered(min, max)
	return State{Low: low, High: high}
}

// Normalize brings a state built elsewhere (decoded JSON, query params) into
// canonical form.
func Normalize(s State) State {
	s.Brands = canonical(s.Brands)
	s.Ratings = canonical(s.Ratings)
	s.Categories = canonical(s.Categories)
	s.Low, s.High = ordered(s.Low, s.High)
	return s
}

// ToggleBrand adds brand to the selection or removes it when present
func ToggleBrand(s State, brand string) State {
	s.Brands = toggle(s.Brands, brand)
	return s
}

// ToggleRating adds a minimum rating to the selection or removes it
func ToggleRating(s State, rating int) State {
	s.Ratings = toggle(s.Ratings, rating)
	return s
}

// ToggleCategory toggles a category by name. The "all categories" option,
// recognised by id or name, replaces every other selection or clears itself
// when already selected. Picking a specific category always drops the
// sentinel.
func ToggleCategory(s State, id, name string) State {
	if id == catalog.AllCategoriesID || name == catalog.AllCategoriesName {
		if slices.Contains(s.Categories, catalog.AllCategoriesName) {
			s.Categories = nil
		} else {
			s.Categories = []string{catalog.AllCategoriesName}
		}
		return s
	}

	rest := without(s.Categories, catalog.AllCategoriesName)
	s.Categories = toggle(rest, name)
	return s
}

// SelectPriceRange narrows the price to r and remembers r as the selection
func SelectPriceRange(s State, r PriceRange) State {
	s.Low, s.High = ordered(r.Min, r.Max)
	s.PriceRange = r.Value
	return s
}

// SetCustomPrice applies user-typed bounds. Anything but digits is stripped;
// an empty min reads as 0 and an empty or zero max as datasetMax. The bounds
// are swapped when reversed.
func SetCustomPrice(s State, rawMin, rawMax string, datasetMax int64) State {
	low := parsePrice(rawMin, 0)
	high := parsePrice(rawMax, datasetMax)
	s.Low, s.High = ordered(low, high)
	s.PriceRange = CustomPriceRange
	return s
}

// ResetPrice drops the price restriction but keeps the other selections
func ResetPrice(s State, min, max int64) State {
	s.Low, s.High = ordered(min, max)
	s.PriceRange = ""
	return s
}

// ClearAll drops every selection and restores the full price span
func ClearAll(_ State, min, max int64) State {
	return NewState(min, max)
}

// HasActive reports whether anything narrows the listing compared to a fresh
// state over [min, max].
func HasActive(s State, min, max int64) bool {
	return len(s.Brands) > 0 ||
		len(s.Ratings) > 0 ||
		len(s.Categories) > 0 ||
		s.PriceRange != "" ||
		s.Low > min ||
		s.High < max
}

func parsePrice(raw string, fallback int64) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || v == 0 {
		return fallback
	}
	return v
}

func ordered(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// toggle returns a new canonical set with v flipped
func toggle[T cmp.Ordered](set []T, v T) []T {
	if slices.Contains(set, v) {
		return without(set, v)
	}
	out := make([]T, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, v)
	return canonical(out)
}

func without[T cmp.Ordered](set []T, v T) []T {
	out := make([]T, 0, len(set))
	for _, item := range set {
		if item != v {
			out = append(out, item)
		}
	}
	return canonical(out)
}

func canonical[T cmp.Ordered](set []T) []T {
	if len(set) == 0 {
		return nil
	}
	out := slices.Clone(set)
	slices.Sort(out)
	return slices.Compact(out)
}
