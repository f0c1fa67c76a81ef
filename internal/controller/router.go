package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Payments *PaymentController
	Webhooks *WebhookController
	Orders   *OrderController
	Contact  *ContactController
	Limiter  *RateLimiter
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Covers the S3P quote+collect round trips.
	r.Use(middleware.Timeout(45 * time.Second))

	r.Get("/health", h.Payments.GetHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/payments/initiate", h.Payments.Initiate)
		r.Get("/payments/initiate", h.Payments.CheckStatus)

		r.Post("/payments/webhook", h.Webhooks.Receive)
		r.Get("/payments/webhook", h.Webhooks.Verify)

		r.Get("/orders/{ref}", h.Orders.Get)

		r.Group(func(r chi.Router) {
			if h.Limiter != nil {
				r.Use(h.Limiter.Middleware)
			}
			r.Post("/orders", h.Orders.Create)
			r.Post("/contact", h.Contact.Send)
		})
	})

	return r
}
