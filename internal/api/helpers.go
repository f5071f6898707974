package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/chrisdamba/fooddash/internal/cart"
	"github.com/chrisdamba/fooddash/internal/catalog"
	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/orders"
	"github.com/chrisdamba/fooddash/internal/pricing"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrRestaurantNotFound),
		errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrEntryNotFound),
		errors.Is(err, orders.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, orders.ErrInvalidRating),
		errors.Is(err, orders.ErrInvalidTip),
		errors.Is(err, orders.ErrUnknownTag):
		status = http.StatusBadRequest
	case errors.Is(err, cart.ErrRestaurantMismatch),
		errors.Is(err, orders.ErrOrderNotDelivered),
		errors.Is(err, orders.ErrFeedbackExists):
		status = http.StatusConflict
	case errors.Is(err, pricing.ErrUnknownGroup),
		errors.Is(err, pricing.ErrUnknownOption),
		errors.Is(err, pricing.ErrTooManyOptions),
		errors.Is(err, pricing.ErrMissingRequired),
		errors.Is(err, pricing.ErrDuplicateOption),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrPaymentMethodRequired),
		errors.Is(err, catalog.ErrPaymentNotFound),
		errors.Is(err, catalog.ErrAddressNotFound):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, status, "internal error")
		return
	}
	writeError(w, r, status, err.Error())
}

// decodeJSON reads exactly one JSON object from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("body must contain only one JSON object")
	}
	return nil
}

// maxDelta bounds a quantity change so entry quantities cannot overflow.
const maxDelta = 1000

// quantityOrDefault treats an omitted quantity as 1. An explicit value must be at least 1.
func quantityOrDefault(q *int) (int, error) {
	if q == nil {
		return 1, nil
	}
	if *q < 1 {
		return 0, fmt.Errorf("quantity must be at least 1")
	}
	return *q, nil
}

// preferences applies the ?veg= query parameter over the configured defaults.
func (s *Server) preferences(r *http.Request) (models.Preferences, error) {
	prefs := s.prefs
	if raw := r.URL.Query().Get("veg"); raw != "" {
		veg, err := strconv.ParseBool(raw)
		if err != nil {
			return prefs, fmt.Errorf("veg must be true or false")
		}
		prefs.VegMode = veg
	}
	return prefs, nil
}
