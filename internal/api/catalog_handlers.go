package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/chrisdamba/fooddash/internal/catalog"
	"github.com/chrisdamba/fooddash/internal/pricing"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferences(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, s.catalog.Categories(prefs))
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferences(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	restaurants, err := s.catalog.Feed(r.Context(), catalog.FeedQuery{
		Category:    r.URL.Query().Get("category"),
		Preferences: prefs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, restaurants)
}

func (s *Server) handleRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := s.catalog.Restaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, restaurant)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferences(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sections, err := s.catalog.Menu(r.Context(), chi.URLParam(r, "id"), prefs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sections)
}

type quoteRequest struct {
	Selections pricing.Selections `json:"selections"`
	Quantity   *int               `json:"quantity"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	quantity, err := quantityOrDefault(req.Quantity)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := s.carts.Quote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req.Selections, quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, quote)
}

func (s *Server) handleItemsUnder(w http.ResponseWriter, r *http.Request) {
	limit, err := decimal.NewFromString(chi.URLParam(r, "price"))
	if err != nil || limit.IsNegative() {
		writeError(w, r, http.StatusBadRequest, "price must be a non-negative number")
		return
	}
	prefs, err := s.preferences(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	items, err := s.catalog.ItemsUnder(r.Context(), limit, prefs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.catalog.PaymentMethods())
}

func (s *Server) handleAddresses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.catalog.Addresses())
}
