package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/orders"
)

type checkoutRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
	AddressID       string `json:"address_id"`
}

// handleCheckout claims the cart and places the order.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	cartID := chi.URLParam(r, "id")
	checkout, err := s.carts.Checkout(cartID, req.PaymentMethodID, req.AddressID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	order, err := s.orders.PlaceOrder(r.Context(), checkout)
	if err != nil {
		s.carts.Restore(checkout)
		writeServiceError(w, r, err)
		return
	}

	if s.live {
		s.orders.StartTracking(s.trackCtx, order.ID)
	}
	log.Printf("checkout cart=%s order=%s", cartID, order.ID)
	writeJSON(w, r, http.StatusCreated, order)
}

type orderResponse struct {
	Order *models.Order `json:"order"`
	orders.Progress
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, orderResponse{Order: order, Progress: s.orders.Progress(order)})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req orders.FeedbackInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	order, err := s.orders.SubmitFeedback(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, order)
}
