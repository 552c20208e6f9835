// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xingluo6/redmart/internal/analytics"
	"github.com/xingluo6/redmart/internal/cache"
	"github.com/xingluo6/redmart/internal/config"
	"github.com/xingluo6/redmart/internal/handlers"
	"github.com/xingluo6/redmart/internal/middleware"
	"github.com/xingluo6/redmart/internal/repository"
	"github.com/xingluo6/redmart/internal/store"
)

func Initialize(s store.Store, cfg *config.Config) *gin.Engine {
	// Initialize repositories and engines
	productCache := cache.NewProductCache(s, time.Duration(cfg.Cache.ProductTTL)*time.Second)
	productRepo := repository.NewProductRepository(s, productCache)
	userRepo := repository.NewUserRepository(s)
	orderRepo := repository.NewOrderRepository(s)
	loader := repository.NewBulkLoader(s)
	engine := analytics.NewEngine(s)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	orderHandler := handlers.NewOrderHandler(orderRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(engine)
	adminHandler := handlers.NewAdminHandler(loader, cfg)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.Default())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		healthy := true
		if err := s.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			healthy = false
		}
		c.JSON(status, gin.H{"healthy": healthy})
	})

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/categories", productHandler.Categories)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.PATCH("/:id/stock", productHandler.AdjustStock)
			products.DELETE("/:id", productHandler.Delete)
		}

		users := v1.Group("/users")
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.POST("", orderHandler.Create)
			orders.GET("/:id", orderHandler.Get)
			orders.PUT("/:id/status", orderHandler.UpdateStatus)
			orders.DELETE("/:id", orderHandler.Delete)
		}

		v1.GET("/analytics", analyticsHandler.Run)

		admin := v1.Group("/admin")
		{
			admin.POST("/seed", adminHandler.Seed)
			admin.POST("/import/retail", adminHandler.ImportRetail)
			admin.DELETE("/flush", adminHandler.Flush)
		}
	}

	return r
}
