// Package main is the entry point of the payment BFF. It wires the upstream
// client, the Redis-backed checkout state and the service layer, then serves
// the checkout, refund and history API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"raillo/internal/config"
	"raillo/internal/handlers"
	"raillo/internal/metrics"
	"raillo/internal/middleware"
	"raillo/internal/repositories"
	"raillo/internal/routes"
	"raillo/internal/services/identity"
	"raillo/internal/services/mileage"
	"raillo/internal/services/paymethod"
	"raillo/internal/services/payment"
	"raillo/internal/services/receipt"
	"raillo/internal/services/reconcile"
	"raillo/internal/services/refund"
	"raillo/internal/upstream"
)

func main() {
	config.LoadEnv()

	redisClient := repositories.NewRedisClient(repositories.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	if err := repositories.Ping(context.Background(), redisClient); err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("closing redis: %v", err)
		}
	}()

	sealer, err := repositories.NewSealer([]byte(config.GetEnv("CHECKOUT_SEAL_KEY", "dev-only-key-change-in-prod-0000")))
	if err != nil {
		log.Fatalf("checkout seal key: %v", err)
	}
	cache := repositories.NewCheckoutCache(redisClient, sealer,
		config.GetDurationEnv("CHECKOUT_TTL", 30*time.Minute))
	mirror := repositories.NewClaimsMirror(redisClient)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPromCollector(registry)

	client := upstream.Instrument(upstream.NewHTTPClient(upstream.Config{
		BaseURL: config.GetEnv("UPSTREAM_BASE_URL", "http://localhost:8080/api/v1"),
		Timeout: config.GetDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second),
	}), collector)

	decoder := identity.NewDecoder([]byte(config.GetEnv("JWT_SECRET", "dev-secret")), mirror)
	provider := identity.ContextProvider{}

	mileageSvc := mileage.NewService(client, provider)
	paymentSvc := payment.NewService(client, provider, mileageSvc, cache, collector)
	reconcileSvc := reconcile.NewService(client, provider, cache, reconcile.RetryPolicy{
		InitialDelay: config.GetDurationEnv("RECONCILE_INITIAL_DELAY", 2*time.Second),
		MaxAttempts:  config.GetIntEnv("RECONCILE_MAX_ATTEMPTS", 4),
		Delay:        config.GetDurationEnv("RECONCILE_DELAY", 3*time.Second),
		IsRetryable:  reconcile.RetryableLookupError,
	}, collector)
	refundSvc := refund.NewService(client, collector)
	paymethodSvc := paymethod.NewService(client, provider)
	receiptSvc := receipt.NewService(client)

	app := fiber.New(fiber.Config{
		AppName:      "raillo-payment-bff",
		ReadTimeout:  config.GetDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: config.GetDurationEnv("WRITE_TIMEOUT", 30*time.Second),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:3000"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.SessionHeader,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
		ExposeHeaders:    middleware.SessionHeader,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/v1/payments", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("PAYMENT_RATE_LIMIT", 30),
		Expiration: time.Minute,
	}))

	routes.Setup(app, routes.Handlers{
		Health:    handlers.NewHealthHandler(redisClient),
		Checkout:  handlers.NewCheckoutHandler(cache),
		Payment:   handlers.NewPaymentHandler(paymentSvc, reconcileSvc, cache),
		Mileage:   handlers.NewMileageHandler(mileageSvc),
		PayMethod: handlers.NewPayMethodHandler(paymethodSvc),
		History:   handlers.NewHistoryHandler(client, receiptSvc),
		Refund:    handlers.NewRefundHandler(refundSvc),
	}, middleware.NewIdentity(decoder), registry)

	go func() {
		addr := ":" + config.GetEnv("PORT", "8090")
		if err := app.Listen(addr); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
