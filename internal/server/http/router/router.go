package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quizwallet/internal/config"
	"github.com/polkiloo/quizwallet/internal/server/http/handlers"
	"github.com/polkiloo/quizwallet/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.QuizWalletFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	authHandler := handlers.NewAuthHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, cfg.PaymentCallbackToken)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.POST("/payments/callback", paymentHandler.Callback)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	wallet := authed.Group("/wallet")
	wallet.GET("/balance", walletHandler.Balance)
	wallet.POST("/purchase", walletHandler.Purchase)
	wallet.POST("/deduct", walletHandler.Deduct)
	wallet.GET("/history", walletHandler.History)

	authed.POST("/withdrawals", withdrawalHandler.Request)
	authed.GET("/withdrawals", withdrawalHandler.Mine)
	authed.POST("/payments", paymentHandler.Initiate)

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/users/:id/balance", walletHandler.UserBalance)
	admin.GET("/withdrawals", withdrawalHandler.All)
	admin.GET("/withdrawals/:id", withdrawalHandler.Get)
	admin.PUT("/withdrawals/:id/accept", withdrawalHandler.Accept)
	admin.PUT("/withdrawals/:id/reject", withdrawalHandler.Reject)
	admin.GET("/payments", paymentHandler.List)

	return engine
}
