// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/config"
	"github.com/your-org/coffee-storefront/internal/domain/user"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
	"github.com/your-org/coffee-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/coffee-storefront/internal/pkg/auth"
)

// AuthHandler handles the session user endpoints
type AuthHandler struct {
	store      storage.Store
	jwtManager *auth.JWTManager
	config     *config.Config
	log        logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store storage.Store, jwtManager *auth.JWTManager, cfg *config.Config, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtManager: jwtManager,
		config:     cfg,
		log:        log,
	}
}

// LoginRequest carries the user record returned by the shop's OTP login.
// Token may be empty, in which case one is issued.
type LoginRequest struct {
	User  user.User `json:"user" binding:"required"`
	Token string    `json:"token"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	session := h.open(c)
	token, err := session.Login(c.Request.Context(), req.User, req.Token)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store session",
		})
		return
	}

	current, _ := session.Current()
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"user":  current,
			"token": token,
		},
	})
}

// Logout handles POST /auth/logout. The cart is left as it is.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.open(c).Logout(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// GetProfile handles GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	session := h.open(c)
	current, ok := session.Current()
	if !ok || !session.CheckAuth(c.Request.Context()) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Not logged in",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    current,
	})
}

// UpdateProfile handles PATCH /auth/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var patch user.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.open(c).Update(c.Request.Context(), patch)
	if errors.Is(err, user.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Not logged in",
		})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    updated,
	})
}

// VerifyToken handles GET /auth/token behind AuthMiddleware
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid",
		"data": gin.H{
			"user_id":    claims.UserID,
			"username":   claims.Username,
			"expires_at": claims.ExpiresAt,
		},
	})
}

func (h *AuthHandler) open(c *gin.Context) *user.Session {
	store := sessionStore(c, h.store, h.config)
	return user.Open(c.Request.Context(), store, h.jwtManager, h.log)
}
