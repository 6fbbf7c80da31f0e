package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kwatiwellness/commerce-platform/internal/api/handlers"
	"github.com/kwatiwellness/commerce-platform/internal/api/middleware"
	"github.com/kwatiwellness/commerce-platform/internal/catalog"
	"github.com/kwatiwellness/commerce-platform/internal/config"
	"github.com/kwatiwellness/commerce-platform/internal/health"
	"github.com/kwatiwellness/commerce-platform/internal/metrics"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
	service "github.com/kwatiwellness/commerce-platform/internal/services"
	"github.com/kwatiwellness/commerce-platform/pkg/sendGrid"
	"github.com/kwatiwellness/commerce-platform/pkg/stripe"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	db, err := repository.NewDatabase(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	sendGridClient := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	priceCatalog := catalog.NewPriceCatalog(redisClient)
	couponValidator := catalog.NewCouponValidator(cfg)

	cartRepo := repository.NewCartRepo(redisClient)
	wishlistRepo := repository.NewWishlistRepo(redisClient)
	loyaltyRepo := repository.NewLoyaltyRepo(redisClient)
	alertRepo := repository.NewPriceAlertRepo(redisClient)
	paymentMethodRepo := repository.NewPaymentMethodRepo(redisClient)
	donationRepo := repository.NewDonationRepo(db.DB)

	cartService := service.NewCartService(cartRepo, priceCatalog, couponValidator)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistService := service.NewWishlistService(wishlistRepo, cfg)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo, service.NewRepoLedger(loyaltyRepo))
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyService)
	alertService := service.NewPriceAlertService(alertRepo, priceCatalog, sendGridClient)
	alertHandler := handlers.NewPriceAlertHandler(alertService)
	paymentMethodService := service.NewPaymentMethodService(paymentMethodRepo, stripeClient, cfg)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(paymentMethodService)
	donationService := service.NewDonationService(donationRepo)
	donationHandler := handlers.NewDonationHandler(donationService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:           db.DB,
		RedisClient:  redisClient,
		StripeClient: stripeClient,
	})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("GET /api/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("PATCH /api/cart/items/{productId}/options", authMiddleware.Authenticate(cartHandler.UpdateItemOptions()))
	routerMux.HandleFunc("DELETE /api/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/cart/coupons", authMiddleware.Authenticate(cartHandler.ApplyCoupon()))
	routerMux.HandleFunc("DELETE /api/cart/coupons/{code}", authMiddleware.Authenticate(cartHandler.RemoveCoupon()))
	routerMux.HandleFunc("PUT /api/cart/shipping", authMiddleware.Authenticate(cartHandler.SetShippingOption()))
	routerMux.HandleFunc("PUT /api/cart/gift-options", authMiddleware.Authenticate(cartHandler.SetGiftOptions()))

	routerMux.HandleFunc("GET /api/wishlists", authMiddleware.Authenticate(wishlistHandler.ListWishlists()))
	routerMux.HandleFunc("POST /api/wishlists", authMiddleware.Authenticate(wishlistHandler.CreateWishlist()))
	routerMux.HandleFunc("POST /api/wishlists/{id}/items", authMiddleware.Authenticate(wishlistHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/wishlists/{id}/items/{productId}", authMiddleware.Authenticate(wishlistHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/wishlists/{id}/items", authMiddleware.Authenticate(wishlistHandler.ClearWishlist()))
	routerMux.HandleFunc("POST /api/wishlists/{id}/share", authMiddleware.Authenticate(wishlistHandler.ShareWishlist()))
	routerMux.HandleFunc("POST /api/wishlists/{id}/merge", authMiddleware.Authenticate(wishlistHandler.MergeWishlists()))

	routerMux.HandleFunc("GET /api/loyalty", authMiddleware.Authenticate(loyaltyHandler.GetProgram()))
	routerMux.HandleFunc("GET /api/loyalty/progress", authMiddleware.Authenticate(loyaltyHandler.CheckTierProgress()))
	routerMux.HandleFunc("POST /api/loyalty/points", authMiddleware.Authenticate(loyaltyHandler.UpdatePoints()))
	routerMux.HandleFunc("POST /api/loyalty/redeem", authMiddleware.Authenticate(loyaltyHandler.RedeemPoints()))
	routerMux.HandleFunc("POST /api/loyalty/transfer", authMiddleware.Authenticate(loyaltyHandler.TransferPoints()))

	routerMux.HandleFunc("GET /api/price-alerts", authMiddleware.Authenticate(alertHandler.GetActiveAlerts()))
	routerMux.HandleFunc("POST /api/price-alerts", authMiddleware.Authenticate(alertHandler.SetAlert()))
	routerMux.HandleFunc("PATCH /api/price-alerts/batch", authMiddleware.Authenticate(alertHandler.BatchUpdateAlerts()))
	routerMux.HandleFunc("PATCH /api/price-alerts/{productId}", authMiddleware.Authenticate(alertHandler.UpdateAlert()))
	routerMux.HandleFunc("DELETE /api/price-alerts/{productId}", authMiddleware.Authenticate(alertHandler.RemoveAlert()))
	routerMux.HandleFunc("POST /api/price-alerts/check", authMiddleware.Authenticate(alertHandler.CheckAlerts()))

	routerMux.HandleFunc("GET /api/payment-methods", authMiddleware.Authenticate(paymentMethodHandler.ListMethods()))
	routerMux.HandleFunc("POST /api/payment-methods", authMiddleware.Authenticate(paymentMethodHandler.AddMethod()))
	routerMux.HandleFunc("DELETE /api/payment-methods/{id}", authMiddleware.Authenticate(paymentMethodHandler.RemoveMethod()))
	routerMux.HandleFunc("POST /api/payment-methods/{id}/default", authMiddleware.Authenticate(paymentMethodHandler.SetDefault()))
	routerMux.HandleFunc("POST /api/payment-methods/{id}/select", authMiddleware.Authenticate(paymentMethodHandler.SelectMethod()))
	routerMux.HandleFunc("POST /api/payments", authMiddleware.Authenticate(paymentMethodHandler.ProcessPayment()))

	routerMux.HandleFunc("POST /api/donations", authMiddleware.Authenticate(donationHandler.CreateDonation()))
	routerMux.HandleFunc("GET /api/donations", authMiddleware.Authenticate(donationHandler.ListDonations()))
	routerMux.HandleFunc("GET /api/donations/stats", authMiddleware.Authenticate(donationHandler.GetStats()))
	routerMux.HandleFunc("POST /api/donations/{id}/receipt", authMiddleware.Authenticate(donationHandler.GenerateReceipt()))
	routerMux.HandleFunc("POST /api/donations/{id}/impact", authMiddleware.Authenticate(donationHandler.RecordImpact()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
