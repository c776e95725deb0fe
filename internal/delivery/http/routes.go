package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wardrobe/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	api.Use(UserIdentityMiddleware())
	{
		closet := api.Group("/closet")
		{
			closet.GET("/categories", handler.ListCategories)
			closet.GET("/category/:id", handler.GetCategory)
			closet.GET("/items/search", handler.SearchItems)
			closet.GET("/items/:id", handler.GetItem)
			closet.POST("/items", handler.CreateItem)
			closet.DELETE("/items/:id", handler.DeleteItem)
		}

		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("/items", handler.ListWishlist)
			wishlist.POST("/items", handler.CreateWishlistItem)
			wishlist.GET("/items/:id", handler.GetWishlistItem)
			wishlist.PUT("/items/:id", handler.UpdateWishlistItem)
			wishlist.DELETE("/items/:id", handler.DeleteWishlistItem)
			wishlist.POST("/items/:id/add-to-closet", handler.AddToCloset)
			wishlist.GET("/items/:id/similar-items", handler.FindSimilarItems)
			wishlist.GET("/stats", handler.WishlistStats)
		}
	}

	return router
}
