// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/repricer-backend/internal/config"
	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/handlers"
	"github.com/javajoker/repricer-backend/internal/middleware"
	"github.com/javajoker/repricer-backend/internal/services"
	"github.com/javajoker/repricer-backend/internal/stockx"
)

func Initialize(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	// Initialize marketplace integration
	authService := stockx.NewAuthService(cfg.StockX, logger)
	client := stockx.NewClient(cfg.StockX, authService, logger)
	mapper := stockx.NewMapper()
	clock := domain.SystemClock()

	// Initialize services
	productService := services.NewProductService(db, client, mapper, logger)
	marketDataService := services.NewMarketDataService(db, client, mapper, clock, cfg.Pricing, logger)
	pricingService := services.NewPricingService(db, cfg.Pricing, clock, logger)
	listingService := services.NewListingService(db, client, mapper, clock, logger)
	collectorService := services.NewDataCollectorService(db, productService, marketDataService, logger)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	marketDataHandler := handlers.NewMarketDataHandler(marketDataService)
	pricingHandler := handlers.NewPricingHandler(pricingService)
	listingHandler := handlers.NewListingHandler(listingService)
	collectorHandler := handlers.NewCollectorHandler(collectorService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit))
	r.Use(middleware.RequestLogMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/search", productHandler.SearchCatalog)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/sync", productHandler.SyncProduct)
			products.POST("/:id/refresh", collectorHandler.RefreshProduct)
			products.POST("/:id/variants/:variantId/market-data/refresh", marketDataHandler.RefreshMarketData)
		}

		// Variant routes
		variants := v1.Group("/variants")
		{
			variants.GET("/:id/market-data", marketDataHandler.GetMarketData)
			variants.GET("/:id/market-data/history", marketDataHandler.GetMarketDataHistory)
			variants.GET("/:id/optimal-price", pricingHandler.GetOptimalPrice)
			variants.GET("/:id/price-statistics", pricingHandler.GetPriceStatistics)
			variants.GET("/:id/listings", listingHandler.GetVariantListings)
			variants.POST("/:id/listings/cancel-all", middleware.BatchRateLimit(), listingHandler.CancelAllActive)
		}

		// Listing routes
		listings := v1.Group("/listings")
		{
			listings.POST("", listingHandler.CreateListing)
			listings.POST("/import", listingHandler.ImportListings)
			listings.POST("/expire-due", listingHandler.ExpireDueListings)
			listings.GET("/:id", listingHandler.GetListing)
			listings.POST("/:id/activate", listingHandler.ActivateListing)
			listings.POST("/:id/sold", listingHandler.MarkListingSold)
			listings.POST("/:id/cancel", listingHandler.CancelListing)
			listings.PATCH("/:id/price", listingHandler.UpdateListingPrice)
			listings.PATCH("/:id/quantity", listingHandler.UpdateListingQuantity)

			batch := listings.Group("/batch")
			batch.Use(middleware.BatchRateLimit())
			{
				batch.POST("/reprice", listingHandler.BatchReprice)
			}
		}

		// Batch operation status
		v1.GET("/batch-operations/:id", listingHandler.GetBatchOperation)

		// Sales history
		v1.POST("/sales", pricingHandler.RecordSale)

		// Collection runs
		collect := v1.Group("/collect")
		collect.Use(middleware.CollectRateLimit())
		{
			collect.POST("", collectorHandler.Collect)
		}
	}

	return r
}
