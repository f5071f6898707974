package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/pricing"
)

type cartResponse struct {
	Cart *models.Cart `json:"cart"`
	Bill models.Bill  `json:"bill"`
}

func (s *Server) cartResponse(c *models.Cart) cartResponse {
	return cartResponse{Cart: c, Bill: s.carts.Bill(c)}
}

func (s *Server) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusCreated, s.cartResponse(s.carts.Create()))
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.cartResponse(c))
}

type addItemRequest struct {
	RestaurantID string             `json:"restaurant_id"`
	ItemID       string             `json:"item_id"`
	Selections   pricing.Selections `json:"selections"`
	Quantity     *int               `json:"quantity"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.RestaurantID == "" || req.ItemID == "" {
		writeError(w, r, http.StatusBadRequest, "restaurant_id and item_id are required")
		return
	}
	quantity, err := quantityOrDefault(req.Quantity)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.carts.Add(r.Context(), chi.URLParam(r, "id"), req.RestaurantID, req.ItemID, req.Selections, quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.cartResponse(c))
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Delta < -maxDelta || req.Delta > maxDelta {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("delta must be between -%d and %d", maxDelta, maxDelta))
		return
	}
	c, err := s.carts.UpdateQuantity(chi.URLParam(r, "id"), chi.URLParam(r, "entryID"), req.Delta)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.cartResponse(c))
}
