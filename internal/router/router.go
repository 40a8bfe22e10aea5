package router

import (
	"time"

	"pdv/internal/config"
	"pdv/internal/handler"
	"pdv/internal/infra"
	"pdv/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New returns the configured Gin engine for the loopback API.
// db, rdb and jobsCB are nil unless the storage driver or the worker pool
// uses them.
func New(cfg *config.Config, ctrl handler.Controller, db *gorm.DB, rdb *redis.Client, jobsCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(ctrl)
	warehousesH := handler.NewWarehousesHandler(ctrl)
	cartH := handler.NewCartHandler(ctrl)
	salesH := handler.NewSalesHandler(ctrl, cfg.StoreName)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(cfg.StorageDriver, db, rdb, jobsCB))

	v1 := r.Group("/v1")
	{
		v1.GET("/state", handler.State(ctrl))

		prods := v1.Group("/products")
		{
			prods.GET("", productsH.List)
			prods.POST("", productsH.Save)
			prods.GET("/categories", productsH.Categories)
			prods.GET("/alerts", productsH.Alerts)
			prods.GET("/saleable", productsH.Saleable)
			prods.GET("/margin", productsH.Margin)
			prods.GET("/edit", productsH.EditContext)
			prods.POST("/edit/cancel", productsH.CancelEdit)
			prods.PUT("/draft-stocks/:warehouse_id", productsH.SetDraftStock)
			prods.POST("/:id/edit", productsH.BeginEdit)
			prods.DELETE("/:id", productsH.Remove)
		}

		whs := v1.Group("/warehouses")
		{
			whs.GET("", warehousesH.List)
			whs.POST("", warehousesH.Create)
			whs.PUT("/:id", warehousesH.Rename)
			whs.DELETE("/:id", warehousesH.Remove)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", cartH.Get)
			cart.DELETE("", cartH.Clear)
			cart.POST("/lines", cartH.AddLine)
			cart.DELETE("/lines/:product_id/:warehouse_id", cartH.RemoveLine)
			cart.PUT("/checkout-form", cartH.UpdateCheckoutForm)
			cart.POST("/checkout", cartH.Checkout)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", salesH.List)
			sales.GET("/:id/receipt", salesH.Receipt)
		}
	}

	return r
}
