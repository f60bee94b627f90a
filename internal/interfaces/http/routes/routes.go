// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/config"
	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
	"github.com/your-org/coffee-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/coffee-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/coffee-storefront/internal/pkg/auth"
)

// Dependencies are the collaborators the API handlers need
type Dependencies struct {
	Config  *config.Config
	Log     logrus.FieldLogger
	Store   storage.Store
	Catalog catalog.Source
	JWT     *auth.JWTManager
}

// SetupCatalogRoutes sets up product listing and content routes
func SetupCatalogRoutes(rg *gin.RouterGroup, deps Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Log)

	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/products", catalogHandler.GetProducts)
		catalogGroup.GET("/products/:id", catalogHandler.GetProduct)
		catalogGroup.GET("/discounts", catalogHandler.GetDiscounts)
		catalogGroup.POST("/filters", catalogHandler.ApplyFilter)
		catalogGroup.GET("/categories", catalogHandler.GetCategories)
		catalogGroup.GET("/articles", catalogHandler.GetArticles)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Store, deps.Config, deps.Log)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupAuthRoutes sets up session user routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Store, deps.JWT, deps.Config, deps.Log)

	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.GetProfile)
		authGroup.PATCH("/me", authHandler.UpdateProfile)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWT))
		{
			protected.GET("/token", authHandler.VerifyToken)
		}
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	SetupCatalogRoutes(rg, deps)

	sessioned := rg.Group("")
	sessioned.Use(middleware.Session(deps.Config))
	SetupCartRoutes(sessioned, deps)
	SetupAuthRoutes(sessioned, deps)
}
