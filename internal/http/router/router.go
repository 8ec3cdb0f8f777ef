package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/rogerio-castellano/catalog-console/internal/http/docs"
	"github.com/rogerio-castellano/catalog-console/internal/http/handlers"
	"github.com/rogerio-castellano/catalog-console/internal/http/metrics"
	mw "github.com/rogerio-castellano/catalog-console/internal/http/middleware"
	rl "github.com/rogerio-castellano/catalog-console/internal/http/rate_limiter"
)

type Config struct {
	// JWTSecret protects the write routes. Empty leaves them open.
	JWTSecret []byte
	Limiter   *rl.Limiter
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Limiter == nil {
		cfg.Limiter = rl.New(rl.DefaultRate, rl.DefaultBurst)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cfg.Metrics.Middleware)

	r.Get("/healthz", handlers.HealthHandler)
	r.Handle("/metrics", cfg.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/products", func(r chi.Router) {
		r.Use(cfg.Limiter.Middleware)

		r.Get("/", handlers.GetProductsHandler)
		r.Get("/categories", handlers.GetCategoriesHandler)
		r.Get("/statistics", handlers.GetStatisticsHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireToken(cfg.JWTSecret, cfg.Logger))
			r.Post("/", handlers.CreateProductHandler)
			r.Post("/import", handlers.ImportProductsHandler)
			r.Patch("/{id}", handlers.UpdateProductHandler)
			r.Delete("/{id}", handlers.DeleteProductHandler)
		})
	})

	return r
}
