package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tradux/backend/internal/config"
	"github.com/tradux/backend/internal/server/http/handlers"
	"github.com/tradux/backend/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.TranslationFacade, pinger handlers.Pinger, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	quoteHandler := handlers.NewQuoteHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	documentHandler := handlers.NewDocumentHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, cfg.ReviewBaseURL)
	reviewHandler := handlers.NewReviewHandler(facade)
	healthHandler := handlers.NewHealthHandler(pinger)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	api.POST("/quote", quoteHandler.Create)
	api.GET("/quote/:id", quoteHandler.Get)
	api.POST("/quote/:id/checkout", quoteHandler.Checkout)

	api.POST("/documents", documentHandler.Upload)
	api.GET("/documents/:id", documentHandler.Get)

	api.POST("/webhook/payments", paymentHandler.Webhook)

	review := api.Group("/review")
	review.GET("/:id", reviewHandler.Get)
	review.POST("/:id/approve", reviewHandler.Approve)
	review.POST("/:id/corrections", reviewHandler.RequestCorrections)

	admin := api.Group("/admin")
	admin.POST("/login", authHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(facade))
	adminAuth.GET("/orders", orderHandler.List)
	adminAuth.GET("/orders/:id", orderHandler.Get)
	adminAuth.GET("/orders/:id/documents", orderHandler.Documents)
	adminAuth.GET("/stats", orderHandler.Stats)
	adminAuth.POST("/orders/:id/start", orderHandler.Start)
	adminAuth.POST("/orders/:id/approve", orderHandler.Approve)
	adminAuth.POST("/orders/:id/complete", orderHandler.Complete)
	adminAuth.PUT("/orders/:id/proofread-text", orderHandler.UpdateText)
	adminAuth.POST("/orders/:id/upload", orderHandler.Upload)
	adminAuth.GET("/orders/:id/upload", orderHandler.Download)
	adminAuth.POST("/orders/:id/finalize", orderHandler.Finalize)
	adminAuth.POST("/orders/:id/reissue-token", orderHandler.ReissueToken)

	return engine
}
