// internal/domain/catalog/entity.go
package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

const (
	// AllCategoriesID identifies the synthetic "all categories" option
	AllCategoriesID = "all"
	// AllCategoriesName is the sentinel category name meaning "no category restriction"
	AllCategoriesName = "همه دسته‌بندی‌ها"
	// DefaultCategoryName is assigned to products the API returns without a category
	DefaultCategoryName = "قهوه"
)

// Product statuses derived from the API badge
const (
	StatusBestSeller  = "پر فروش"
	StatusNew         = "جدید"
	StatusSpecialSale = "فروش ویژه"
)

// Product is a catalog entry after validation at the API boundary.
// Prices are whole toman amounts.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           int64    `json:"price"`
	OriginalPrice   *int64   `json:"original_price,omitempty"`
	Category        string   `json:"category,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	Discount        int      `json:"discount"`
	Image           string   `json:"image,omitempty"`
	Images          []string `json:"images,omitempty"`
	Badge           string   `json:"badge,omitempty"`
	Status          string   `json:"status"`
	Description     string   `json:"description,omitempty"`
	PositiveFeature string   `json:"positive_feature,omitempty"`
	Features        []string `json:"features,omitempty"`
	IsPrime         bool     `json:"is_prime"`
	IsPremium       bool     `json:"is_premium"`
}

// HasBrand reports whether the product carries a brand
func (p *Product) HasBrand() bool {
	return p.Brand != ""
}

// GetDiscountPercentage falls back to comparing prices when the API sent no discount
func (p *Product) GetDiscountPercentage() int {
	if p.Discount > 0 {
		return p.Discount
	}
	if p.OriginalPrice != nil && *p.OriginalPrice > 0 && p.Price < *p.OriginalPrice {
		return int(((*p.OriginalPrice - p.Price) * 100) / *p.OriginalPrice)
	}
	return 0
}

// Category is a product category as published by the API
type Category struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Image          string `json:"image,omitempty"`
	Color          string `json:"color,omitempty"`
	IsActive       bool   `json:"is_active"`
	ShowOnHomepage bool   `json:"show_on_homepage"`
	ProductsCount  int    `json:"products_count"`
}

// CategoryOption is a category as offered in the filter sidebar, with a
// product count recomputed against the fetched products.
type CategoryOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// Article is a blog/news entry
type Article struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt,omitempty"`
	Content    string `json:"content,omitempty"`
	Image      string `json:"image,omitempty"`
	Author     string `json:"author,omitempty"`
	Category   string `json:"category,omitempty"`
	Publish    int    `json:"publish"`
	IsFeatured bool   `json:"is_featured"`
}

// IsPublished reports whether the article may be shown
func (a *Article) IsPublished() bool {
	return a.Publish == 1
}

// Pagination mirrors the API pagination block
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Wire shapes

type envelope[T any] struct {
	Status  int  `json:"status"`
	Success bool `json:"success"`
	Data    *T   `json:"data"`
}

type productsData struct {
	Products   []productDTO `json:"products"`
	Pagination Pagination   `json:"pagination"`
}

type categoriesData struct {
	Categories []categoryDTO `json:"categories"`
	Pagination Pagination    `json:"pagination"`
}

type articlesData struct {
	Articles   []articleDTO `json:"articles"`
	Pagination Pagination   `json:"pagination"`
}

type productDTO struct {
	ID                 string      `json:"_id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	PositiveFeature    string      `json:"positiveFeature"`
	Category           categoryRef `json:"category"`
	Badge              string      `json:"badge"`
	Images             []string    `json:"images"`
	Image              string      `json:"image"`
	Price              float64     `json:"price"`
	OriginalPrice      float64     `json:"originalPrice"`
	PriceAfterDiscount float64     `json:"priceAfterDiscount"`
	Discount           float64     `json:"discount"`
	Rating             float64     `json:"rating"`
	Reviews            float64     `json:"reviews"`
	IsPrime            bool        `json:"isPrime"`
	IsPremium          bool        `json:"isPremium"`
	Features           []string    `json:"features"`
	Brand              string      `json:"brand"`
}

type categoryDTO struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Images         string `json:"images"`
	Color          string `json:"color"`
	IsActive       bool   `json:"isActive"`
	ShowOnHomepage bool   `json:"showOnHomepage"`
	ProductsCount  int    `json:"productsCount"`
}

type articleDTO struct {
	ID         string `json:"_id"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Image      string `json:"image"`
	Author     string `json:"author"`
	Category   string `json:"category"`
	Publish    int    `json:"publish"`
	IsFeatured bool   `json:"isFeatured"`
}

// categoryRef accepts the product category as a populated object, a plain
// name, or null.
type categoryRef struct {
	Name string
}

func (c *categoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		c.Name = ""
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &c.Name)
	}
	if b[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		c.Name = obj.Name
		return nil
	}
	// Ids or other scalars carry no usable name
	c.Name = ""
	return nil
}

// toProduct validates and normalizes a wire product. Entries without an id
// are rejected.
func (d productDTO) toProduct() (Product, bool) {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return Product{}, false
	}

	price := d.PriceAfterDiscount
	if price <= 0 {
		price = d.Price
	}

	p := Product{
		ID:              id,
		Name:            strings.TrimSpace(d.Name),
		Price:           nonNegative(price),
		Category:        strings.TrimSpace(d.Category.Name),
		Brand:           strings.TrimSpace(d.Brand),
		Rating:          clamp(d.Rating, 0, 5),
		Reviews:         int(nonNegative(d.Reviews)),
		Discount:        int(clamp(math.Round(d.Discount), 0, 100)),
		Image:           d.Image,
		Images:          d.Images,
		Badge:           d.Badge,
		Status:          StatusFromBadge(d.Badge),
		Description:     d.Description,
		PositiveFeature: d.PositiveFeature,
		Features:        d.Features,
		IsPrime:         d.IsPrime,
		IsPremium:       d.IsPremium,
	}
	if p.Category == "" {
		p.Category = DefaultCategoryName
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	if d.OriginalPrice > 0 {
		orig := nonNegative(d.OriginalPrice)
		p.OriginalPrice = &orig
	}
	return p, true
}

func (d categoryDTO) toCategory() (Category, bool) {
	name := strings.TrimSpace(d.Name)
	if d.ID == "" || name == "" {
		return Category{}, false
	}
	return Category{
		ID:             d.ID,
		Name:           name,
		Description:    d.Description,
		Image:          d.Images,
		Color:          d.Color,
		IsActive:       d.IsActive,
		ShowOnHomepage: d.ShowOnHomepage,
		ProductsCount:  d.ProductsCount,
	}, true
}

func (d articleDTO) toArticle() (Article, bool) {
	if d.ID == "" {
		return Article{}, false
	}
	return Article{
		ID:         d.ID,
		Title:      d.Title,
		Excerpt:    d.Excerpt,
		Content:    d.Content,
		Image:      d.Image,
		Author:     d.Author,
		Category:   d.Category,
		Publish:    d.Publish,
		IsFeatured: d.IsFeatured,
	}, true
}

// StatusFromBadge maps the API badge onto the listing status label
func StatusFromBadge(badge string) string {
	switch badge {
	case "پرفروش":
		return StatusBestSeller
	case "ویژه":
		return StatusSpecialSale
	default:
		return StatusNew
	}
}

func nonNegative(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Round(v))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
