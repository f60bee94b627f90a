// internal/domain/catalog/service.go
package catalog

// ActiveCategories builds the sidebar category list: the synthetic "all
// categories" option carrying the total, followed by every active category
// with its product count recomputed from products. The API's own
// productsCount is ignored.
func ActiveCategories(categories []Category, products []Product) []CategoryOption {
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.Category]++
	}

	options := []CategoryOption{{
		ID:     AllCategoriesID,
		Name:   AllCategoriesName,
		Count:  len(products),
		Active: true,
	}}
	for _, cat := range categories {
		if !cat.IsActive {
			continue
		}
		options = append(options, CategoryOption{
			ID:    cat.ID,
			Name:  cat.Name,
			Count: counts[cat.Name],
		})
	}
	return options
}

// FallbackCategories is shown when the category fetch fails
func FallbackCategories() []CategoryOption {
	return []CategoryOption{
		{ID: "1", Name: AllCategoriesName, Active: true},
		{ID: "2", Name: "قهوه اسپرسو"},
		{ID: "3", Name: "قهوه ترک"},
		{ID: "4", Name: "دانه قهوه"},
	}
}

// Published keeps only articles with publish == 1
func Published(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished() {
			out = append(out, a)
		}
	}
	return out
}

// Discounted keeps the products that are on sale, in catalog order
func Discounted(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.GetDiscountPercentage() > 0 {
			out = append(out, p)
		}
	}
	return out
}

// FindProduct looks a product up by id
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Related returns up to limit other products from the same category as
// current, in catalog order.
func Related(products []Product, current Product, limit int) []Product {
	related := make([]Product, 0, limit)
	for _, p := range products {
		if len(related) >= limit {
			break
		}
		if p.ID == current.ID || p.Category != current.Category {
			continue
		}
		related = append(related, p)
	}
	return related
}
