// Package routes wires the handlers onto the fiber app.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"raillo/internal/handlers"
	"raillo/internal/middleware"
)

// Handlers groups everything Setup mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Checkout  *handlers.CheckoutHandler
	Payment   *handlers.PaymentHandler
	Mileage   *handlers.MileageHandler
	PayMethod *handlers.PayMethodHandler
	History   *handlers.HistoryHandler
	Refund    *handlers.RefundHandler
}

// Setup registers all routes. Every /api/v1 route runs the identity and
// checkout-session middleware; member-only groups add RequireMember on top.
func Setup(app *fiber.App, h Handlers, id *middleware.Identity, registry *prometheus.Registry) {
	app.Get("/health", h.Health.Check)
	if registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1", id.Handler, middleware.CheckoutSession)

	checkout := api.Group("/checkout")
	checkout.Put("/draft", h.Checkout.SaveDraft)
	checkout.Get("/draft", h.Checkout.Draft)
	checkout.Post("/guest", h.Checkout.SaveGuestIdentity)
	checkout.Get("/keys", h.Checkout.Keys)
	checkout.Delete("/", h.Checkout.Clear)

	payments := api.Group("/payments")
	payments.Post("/calculate", h.Payment.Calculate)
	payments.Post("/preview", h.Payment.Preview)
	payments.Post("/approve", h.Payment.Approve)
	payments.Post("/verify-bank-account", h.Payment.VerifyBankAccount)
	payments.Get("/reconcile/:reservationId", h.Payment.Reconcile)

	api.Get("/mileage/balance", h.Mileage.Balance)

	methods := api.Group("/payment-methods", middleware.RequireMember)
	methods.Get("/", h.PayMethod.List)
	methods.Post("/", h.PayMethod.Save)
	methods.Get("/:id/raw", h.PayMethod.Raw)
	methods.Delete("/:id", h.PayMethod.Delete)
	methods.Put("/:id/default", h.PayMethod.SetDefault)

	history := api.Group("/payment-history")
	history.Get("/", middleware.RequireMember, h.History.Member)
	history.Post("/guest/search", h.History.GuestSearch)
	history.Get("/:id", h.History.Detail)
	history.Get("/:id/receipt", h.History.Receipt)

	refunds := api.Group("/refunds")
	refunds.Post("/calculate", h.Refund.Quote)
	refunds.Post("/process", h.Refund.Confirm)
}
