package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"muskan-shop/internal/offer"
	myErr "muskan-shop/internal/types/errors"
)

type OfferHandler struct {
	Logger    *zap.SugaredLogger
	OfferRepo offer.OfferRepo
	now       func() time.Time
}

func NewOfferHandler(l *zap.SugaredLogger, or offer.OfferRepo) *OfferHandler {
	return &OfferHandler{
		Logger:    l,
		OfferRepo: or,
		now:       time.Now,
	}
}

// OfferView акция с подписью для бейджа
type OfferView struct {
	offer.Offer
	Label string `json:"label"`
}

// ListActive handles GET /api/offers
// Отдает только акции, действующие прямо сейчас
func (h *OfferHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	offers, err := h.OfferRepo.ListActive(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	now := h.now()
	views := make([]OfferView, 0, len(offers))
	for _, o := range offers {
		if o.IsValidAt(now) {
			views = append(views, OfferView{Offer: o, Label: o.Label()})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(views); err != nil {
		h.Logger.Errorf("failed to encode offers: %v", err)
		return
	}

	h.Logger.Infof("fetched %d active offers", len(views))
}
