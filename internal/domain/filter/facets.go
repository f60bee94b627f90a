package filter

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/your-org/coffee-storefront/internal/domain/catalog"
)

// BrandPlaceholder is offered when no product carries a brand
const BrandPlaceholder = "برندهای موجود"

// FallbackRatings is offered when no product has a positive rating
var FallbackRatings = []int{4, 3, 2, 1}

// Facets are the distinct filterable values found in a product set
type Facets struct {
	Brands  []string `json:"brands"`
	Ratings []int    `json:"ratings"`
}

// Sidebar is everything the filter panel needs for one product set
type Sidebar struct {
	Brands      []string     `json:"brands"`
	PriceRanges []PriceRange `json:"price_ranges"`
	Ratings     []int        `json:"ratings"`
	MinPrice    int64        `json:"min_price"`
	MaxPrice    int64        `json:"max_price"`
}

// ExtractFacets collects distinct non-blank brands in first-seen order and
// distinct positive floored ratings in descending order. Brands may come back
// empty; ratings fall back to FallbackRatings.
func ExtractFacets(products []catalog.Product) Facets {
	brands := make([]string, 0)
	seenBrands := make(map[string]struct{})
	seenRatings := make(map[int]struct{})
	ratings := make([]int, 0)

	for _, p := range products {
		if b := strings.TrimSpace(p.Brand); b != "" {
			if _, ok := seenBrands[b]; !ok {
				seenBrands[b] = struct{}{}
				brands = append(brands, b)
			}
		}
		if r := floorRating(p.Rating); r > 0 {
			if _, ok := seenRatings[r]; !ok {
				seenRatings[r] = struct{}{}
				ratings = append(ratings, r)
			}
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ratings)))
	if len(ratings) == 0 {
		ratings = append(ratings, FallbackRatings...)
	}
	return Facets{Brands: brands, Ratings: ratings}
}

// BuildSidebar derives the filter panel for products. An empty catalog gets
// the static price ranges and the brand placeholder.
func BuildSidebar(products []catalog.Product) Sidebar {
	facets := ExtractFacets(products)
	min, max := PriceBounds(products)

	sidebar := Sidebar{
		Brands:   facets.Brands,
		Ratings:  facets.Ratings,
		MinPrice: min,
		MaxPrice: max,
	}
	if len(sidebar.Brands) == 0 {
		sidebar.Brands = []string{BrandPlaceholder}
	}
	if len(products) == 0 {
		sidebar.PriceRanges = DefaultRanges()
	} else {
		sidebar.PriceRanges = GenerateRanges(min, max)
	}
	return sidebar
}

func floorRating(r float64) int {
	if math.IsNaN(r) {
		return 0
	}
	return int(math.Floor(r))
}

// DiscountBrands is the fixed brand list of the special discounts page
var DiscountBrands = []string{"دیویدوف", "لاوازا", "ایلی", "استارباکس", "نسپرسو", "کمکس"}

// DiscountSidebar is the static filter panel of the special discounts page.
// It does not depend on which products are on sale.
func DiscountSidebar() Sidebar {
	return Sidebar{
		Brands:      slices.Clone(DiscountBrands),
		PriceRanges: DefaultRanges(),
		Ratings:     slices.Clone(FallbackRatings),
		MinPrice:    DefaultMinPrice,
		MaxPrice:    DefaultMaxPrice,
	}
}
