package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"muskan-shop/internal/inventory"
	myErr "muskan-shop/internal/types/errors"
)

type InventoryHandler struct {
	Logger        *zap.SugaredLogger
	InventoryRepo inventory.InventoryRepo
}

func NewInventoryHandler(l *zap.SugaredLogger, ir inventory.InventoryRepo) *InventoryHandler {
	return &InventoryHandler{
		Logger:        l,
		InventoryRepo: ir,
	}
}

// List handles GET /api/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	stock, err := h.InventoryRepo.ListAll(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(stock); err != nil {
		h.Logger.Errorf("failed to encode inventory: %v", err)
	}
}

// GetByProductID handles GET /api/inventory/{productID}
func (h *InventoryHandler) GetByProductID(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productID"]
	if productID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	status, err := h.InventoryRepo.GetByProductID(r.Context(), productID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(status); err != nil {
		h.Logger.Errorf("failed to encode inventory status: %v", err)
	}
}
