package filter

import "github.com/your-org/coffee-storefront/internal/domain/catalog"

// Matches reports whether p passes every active criteria group in s
func Matches(p catalog.Product, s State) bool {
	if p.Price < s.Low || p.Price > s.High {
		return false
	}
	if len(s.Brands) > 0 && (!p.HasBrand() || !contains(s.Brands, p.Brand)) {
		return false
	}
	if len(s.Ratings) > 0 && !meetsAnyRating(p.Rating, s.Ratings) {
		return false
	}
	if restrictsCategory(s.Categories) && !contains(s.Categories, p.Category) {
		return false
	}
	return true
}

// Apply returns the products matching s, preserving their order
func Apply(products []catalog.Product, s State) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, s) {
			out = append(out, p)
		}
	}
	return out
}

func meetsAnyRating(rating float64, thresholds []int) bool {
	floor := floorRating(rating)
	for _, t := range thresholds {
		if floor >= t {
			return true
		}
	}
	return false
}

// restrictsCategory is false for an empty selection or one holding only the
// "all categories" sentinel.
func restrictsCategory(categories []string) bool {
	for _, c := range categories {
		if c != catalog.AllCategoriesName {
			return true
		}
	}
	return false
}

func contains[T comparable](set []T, v T) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}
