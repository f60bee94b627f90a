// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"github.com/your-org/coffee-storefront/internal/domain/filter"
	"github.com/your-org/coffee-storefront/internal/domain/listing"
)

const relatedProductsLimit = 4

// CatalogHandler serves the product listing, detail and content endpoints
type CatalogHandler struct {
	source catalog.Source
	log    logrus.FieldLogger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(source catalog.Source, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{source: source, log: log}
}

// FilterRequest represents a filter transition request
type FilterRequest struct {
	State  *filter.State `json:"state"`
	Action filter.Action `json:"action" binding:"required"`
}

// GetProducts handles GET /catalog/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	h.list(c, listing.NewPage(h.source, h.log), "Products retrieved successfully")
}

// GetDiscounts handles GET /catalog/discounts, the special discounts page.
// It takes the same filter query as GetProducts.
func (h *CatalogHandler) GetDiscounts(c *gin.Context) {
	h.list(c, listing.NewDiscountPage(h.source, h.log), "Discounted products retrieved successfully")
}

func (h *CatalogHandler) list(c *gin.Context, page *listing.Page, message string) {
	if !h.load(c, page) {
		return
	}

	state, err := stateFromQuery(c, page.Snapshot())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	page.SetFilter(state)

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    page.Snapshot(),
	})
}

// ApplyFilter handles POST /catalog/filters
func (h *CatalogHandler) ApplyFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	page, ok := h.loadPage(c)
	if !ok {
		return
	}
	if req.State != nil {
		page.SetFilter(*req.State)
	}

	if _, err := page.Dispatch(req.Action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Filter applied successfully",
		"data":    page.Snapshot(),
	})
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	products, err := h.source.Products(c.Request.Context())
	if err != nil {
		h.fetchFailed(c, err)
		return
	}

	product, found := catalog.FindProduct(products, c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": gin.H{
			"product":  product,
			"related":  catalog.Related(products, product, relatedProductsLimit),
			"discount": product.GetDiscountPercentage(),
		},
	})
}

// GetCategories handles GET /catalog/categories. A failed fetch is answered
// with the static category list.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	page, ok := h.loadPage(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    page.Snapshot().Categories,
	})
}

// GetArticles handles GET /catalog/articles. Only published articles are
// returned; a failed fetch yields an empty list.
func (h *CatalogHandler) GetArticles(c *gin.Context) {
	articles, err := h.source.Articles(c.Request.Context())
	if catalog.IsCanceled(err) {
		c.Abort()
		return
	}
	if err != nil {
		h.log.WithError(err).Warn("Serving empty article list")
		articles = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Articles retrieved successfully",
		"data":    catalog.Published(articles),
	})
}

// loadPage fetches the full listing for this request
func (h *CatalogHandler) loadPage(c *gin.Context) (*listing.Page, bool) {
	page := listing.NewPage(h.source, h.log)
	return page, h.load(c, page)
}

// load fetches page. Failures degrade to the fallback page; a cancelled
// request is abandoned without a response.
func (h *CatalogHandler) load(c *gin.Context, page *listing.Page) bool {
	if err := page.Load(c.Request.Context()); err != nil {
		if catalog.IsCanceled(err) {
			c.Abort()
			return false
		}
		_ = c.Error(err)
	}
	return true
}

func (h *CatalogHandler) fetchFailed(c *gin.Context, err error) {
	if catalog.IsCanceled(err) {
		c.Abort()
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusBadGateway, gin.H{
		"error": "Catalog is temporarily unavailable",
	})
}

// stateFromQuery reads brand, rating, category, price_range, min_price and
// max_price. Repeated keys select several values.
func stateFromQuery(c *gin.Context, snap listing.Snapshot) (filter.State, error) {
	s := snap.Filter
	s.Brands = c.QueryArray("brand")
	s.Categories = c.QueryArray("category")
	s.Ratings = nil
	for _, raw := range c.QueryArray("rating") {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			return s, filter.ErrInvalidRating
		}
		s.Ratings = append(s.Ratings, rating)
	}
	s = filter.Normalize(s)

	if value := c.Query("price_range"); value != "" && value != filter.CustomPriceRange {
		r, ok := filter.FindRange(snap.Sidebar.PriceRanges, value)
		if !ok {
			return s, fmt.Errorf("%w: %q", filter.ErrUnknownPriceRange, value)
		}
		return filter.SelectPriceRange(s, r), nil
	}

	rawMin, hasMin := c.GetQuery("min_price")
	rawMax, hasMax := c.GetQuery("max_price")
	if hasMin || hasMax {
		return filter.SetCustomPrice(s, rawMin, rawMax, snap.Sidebar.MaxPrice), nil
	}
	return s, nil
}
