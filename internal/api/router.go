package api

import (
	"customer-registry/internal/api/handler"
	mw "customer-registry/internal/api/middleware"
	"customer-registry/internal/config"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/domain/transaction"
	"customer-registry/internal/web"
	"log/slog"
	"net/http"
	"time"

	_ "customer-registry/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services bundles the domain services the HTTP API exposes.
type Services struct {
	Customers    customer.CustomerService
	Addresses    address.AddressService
	Transactions transaction.TransactionService
}

// SetupRouter builds the HTTP handler tree. The returned func releases
// background resources held by the middleware.
func SetupRouter(svc Services, db handler.Pinger, cfg *config.Config, logger *slog.Logger) (*chi.Mux, func()) {
	router := chi.NewRouter()

	limiter := setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupHealthRoutes(router, db, logger)
	setupAuthRoutes(router, cfg, logger)
	setupAPIRoutes(router, svc, cfg, logger)
	setupSwaggerEndpoint(router, logger)
	setupUI(router, cfg, logger)

	return router, limiter.Close
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) *mw.RateLimiterMiddleware {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limiter := mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(timeout))
	router.Use(limiter.Middleware)
	router.Use(mw.MetricsMiddleware())
	return limiter
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupHealthRoutes(router *chi.Mux, db handler.Pinger, logger *slog.Logger) {
	h := handler.NewHealthHandler(db, logger)
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupAPIRoutes(router *chi.Mux, svc Services, cfg *config.Config, logger *slog.Logger) {
	customers := handler.NewCustomerHandler(svc.Customers, logger)
	addresses := handler.NewAddressHandler(svc.Addresses, logger)
	transactions := handler.NewTransactionHandler(svc.Transactions, logger)

	router.Route("/api", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customers.ListCustomers)
			r.Post("/", customers.CreateCustomer)
			r.Route("/{customerID}", func(r chi.Router) {
				r.Get("/", customers.GetCustomer)
				r.Put("/", customers.UpdateCustomer)
				r.Delete("/", customers.DeleteCustomer)
				r.Get("/addresses", addresses.ListAddresses)
				r.Post("/addresses", addresses.CreateAddress)
				r.Get("/transactions", transactions.ListTransactions)
			})
		})

		r.Route("/addresses/{addressID}", func(r chi.Router) {
			r.Put("/", addresses.UpdateAddress)
			r.Delete("/", addresses.DeleteAddress)
		})
	})
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupUI(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	if !cfg.UI.Enabled {
		logger.Info("Admin UI disabled via configuration")
		return
	}
	logger.Info("Serving admin UI", "path", "/")
	router.Handle("/*", web.Handler())
}
