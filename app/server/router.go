package server

import (
	"net/http"
	"time"

	"github.com/burgerhub/menu-ordering/app/admin"
	"github.com/burgerhub/menu-ordering/app/api"
	"github.com/burgerhub/menu-ordering/app/cart"
	"github.com/burgerhub/menu-ordering/app/catalog"
	"github.com/burgerhub/menu-ordering/app/categories"
	"github.com/burgerhub/menu-ordering/app/products"
	"github.com/burgerhub/menu-ordering/auth"
	"github.com/burgerhub/menu-ordering/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const serviceName = "burgerhub"

// Deps are the components the HTTP surface is built on.
type Deps struct {
	Catalog        *models.CatalogRepository
	Cart           *models.Cart
	Session        *auth.Session
	Link           models.DeepLink
	RestaurantName string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	catalogHandler := catalog.NewCatalogHandler(d.Catalog, d.Logger)
	categoryHandler := categories.NewCategoryHandler(d.Catalog, d.Logger)
	productHandler := products.NewProductHandler(d.Catalog, d.Logger)
	cartHandler := cart.NewCartHandler(d.Cart, d.Catalog, d.Link, d.RestaurantName, d.Logger)
	adminHandler := admin.NewAdminHandler(d.Session, d.Logger)

	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.OKResponse(w, map[string]string{"status": "ok"})
	})

	r.Get("/categories", categoryHandler.HandleGetAll)
	r.Get("/catalog", catalogHandler.HandleGet)
	r.Get("/catalog/{id}", catalogHandler.HandleGetProduct)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.HandleGet)
		r.Delete("/", cartHandler.HandleClear)
		r.Post("/items", cartHandler.HandleAddItem)
		r.Patch("/items/{id}", cartHandler.HandleChangeQuantity)
		r.Put("/items/{id}/observation", cartHandler.HandleSetObservation)
		r.Delete("/items/{id}", cartHandler.HandleRemoveItem)
	})
	r.Post("/checkout", cartHandler.HandleCheckout)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminHandler.HandleLogin)
		r.Post("/logout", adminHandler.HandleLogout)
		r.Get("/session", adminHandler.HandleSession)

		r.Group(func(r chi.Router) {
			r.Use(adminHandler.RequireSession)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.HandleGetAll)
				r.Post("/", categoryHandler.HandleCreate)
				r.Put("/{id}", categoryHandler.HandleUpdate)
				r.Delete("/{id}", categoryHandler.HandleDelete)
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.HandleGetAll)
				r.Post("/", productHandler.HandleCreate)
				r.Put("/{id}", productHandler.HandleUpdate)
				r.Delete("/{id}", productHandler.HandleDelete)
			})
		})
	})

	return otelhttp.NewHandler(r, serviceName,
		otelhttp.WithFilter(func(r *http.Request) bool { return r.URL.Path != "/health" }),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}),
	)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
