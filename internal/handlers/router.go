package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Health   *HealthHandler
	Pages    *PageHandler
	Products *ProductHandler
	Orders   *OrderHandler
}

// RouterOptions carries the router's configuration
type RouterOptions struct {
	AllowedOrigins []string
	MetricsAPIKeys []string // empty leaves /metrics open
}

// NewRouter builds the storefront's chi router wrapped in otelhttp.
func NewRouter(h Handlers, opts RouterOptions, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "api_key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.ServeHTTP)
	r.With(middleware.APIKeyAuth(opts.MetricsAPIKeys)).Handle("/metrics", promhttp.Handler())
	r.Handle("/assets/*", http.StripPrefix("/assets", web.Assets()))

	r.Get("/", h.Pages.Home)
	r.Get("/shop", h.Pages.Shop)
	r.Get("/about", h.Pages.About)
	r.Get("/contact", h.Pages.Contact)

	r.Get("/product/{id}", h.Products.GetProduct)
	r.Post("/product/{id}/order", h.Orders.CreateOrder)
	r.Get("/order-confirmation", h.Orders.GetConfirmation)

	r.NotFound(h.Pages.NotFound)

	return otelhttp.NewHandler(r, "storefront")
}
