package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"muskan-shop/internal/order"
	myErr "muskan-shop/internal/types/errors"
)

type OrderHandler struct {
	Logger  *zap.SugaredLogger
	Tracker *order.Tracker
}

func NewOrderHandler(l *zap.SugaredLogger, tracker *order.Tracker) *OrderHandler {
	return &OrderHandler{
		Logger:  l,
		Tracker: tracker,
	}
}

// Track handles GET /api/orders/{number}?phone=
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	phone := r.URL.Query().Get("phone")

	tracking, err := h.Tracker.Track(r.Context(), number, phone)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(tracking); err != nil {
		h.Logger.Errorf("failed to encode tracking: %v", err)
		return
	}

	h.Logger.Infof("tracked order %s", tracking.Order.Number)
}
