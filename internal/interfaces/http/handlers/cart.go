// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/config"
	"github.com/your-org/coffee-storefront/internal/domain/cart"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
	"github.com/your-org/coffee-storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	store  storage.Store
	config *config.Config
	log    logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store storage.Store, cfg *config.Config, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{store: store, config: cfg, log: log}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	cart.Item
	Quantity int `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse represents a shopping cart with items and summary
type CartResponse struct {
	SessionID string      `json:"session_id"`
	Items     []cart.Line `json:"items"`
	Totals    cart.Totals `json:"totals"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ledger := h.open(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.response(c, ledger),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ledger := h.open(c)
	if err := ledger.Add(c.Request.Context(), req.Item, req.Quantity); err != nil {
		h.saveFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.response(c, ledger),
	})
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity below 1 removes
// the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ledger := h.open(c)
	if err := ledger.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		h.saveFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    h.response(c, ledger),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	ledger := h.open(c)
	if err := ledger.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.saveFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.response(c, ledger),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	ledger := h.open(c)
	if err := ledger.Clear(c.Request.Context()); err != nil {
		h.saveFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

func (h *CartHandler) open(c *gin.Context) *cart.Ledger {
	store := sessionStore(c, h.store, h.config)
	return cart.Open(c.Request.Context(), store, h.log)
}

func (h *CartHandler) response(c *gin.Context, ledger *cart.Ledger) CartResponse {
	items := ledger.Lines()
	if items == nil {
		items = []cart.Line{}
	}
	return CartResponse{
		SessionID: middleware.GetSessionID(c),
		Items:     items,
		Totals:    ledger.Totals(),
	}
}

func (h *CartHandler) saveFailed(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Failed to save cart",
	})
}
