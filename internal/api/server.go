// Package api exposes the catalog, carts and orders over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chrisdamba/fooddash/internal/cart"
	"github.com/chrisdamba/fooddash/internal/catalog"
	"github.com/chrisdamba/fooddash/internal/metrics"
	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/orders"
)

type Config struct {
	Catalog     *catalog.Catalog
	Carts       *cart.Service
	Orders      *orders.Service
	Metrics     *metrics.Metrics
	Preferences models.Preferences

	// LiveTracking starts a background tracker for every placed order. Trackers stop
	// when TrackingContext is done.
	LiveTracking    bool
	TrackingContext context.Context
}

type Server struct {
	catalog  *catalog.Catalog
	carts    *cart.Service
	orders   *orders.Service
	metrics  *metrics.Metrics
	prefs    models.Preferences
	live     bool
	trackCtx context.Context
}

func NewServer(cfg Config) *Server {
	trackCtx := cfg.TrackingContext
	if trackCtx == nil {
		trackCtx = context.Background()
	}
	return &Server{
		catalog:  cfg.Catalog,
		carts:    cfg.Carts,
		orders:   cfg.Orders,
		metrics:  cfg.Metrics,
		prefs:    cfg.Preferences,
		live:     cfg.LiveTracking,
		trackCtx: trackCtx,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(instrument(s.metrics))

	r.Get("/health", s.handleHealth)
	r.Get("/categories", s.handleCategories)
	r.Get("/payment-methods", s.handlePaymentMethods)
	r.Get("/addresses", s.handleAddresses)
	r.Get("/under/{price}", s.handleItemsUnder)

	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", s.handleFeed)
		r.Get("/{id}", s.handleRestaurant)
		r.Get("/{id}/menu", s.handleMenu)
		r.Post("/{id}/items/{itemID}/quote", s.handleQuote)
	})

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", s.handleCreateCart)
		r.Get("/{id}", s.handleGetCart)
		r.Post("/{id}/items", s.handleAddItem)
		r.Patch("/{id}/items/{entryID}", s.handleUpdateQuantity)
		r.Post("/{id}/checkout", s.handleCheckout)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/{id}", s.handleGetOrder)
		r.Post("/{id}/feedback", s.handleFeedback)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
