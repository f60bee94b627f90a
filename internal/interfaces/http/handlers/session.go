// internal/interfaces/http/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/coffee-storefront/internal/config"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
	"github.com/your-org/coffee-storefront/internal/interfaces/http/middleware"
)

// sessionStore namespaces store to the caller's session
func sessionStore(c *gin.Context, store storage.Store, cfg *config.Config) storage.Store {
	return storage.Scoped(store, cfg.Storage.KeyPrefix, "session", middleware.GetSessionID(c))
}
