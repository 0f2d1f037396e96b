package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"muskan-shop/internal/newsletter"
	myErr "muskan-shop/internal/types/errors"
)

type NewsletterHandler struct {
	Logger         *zap.SugaredLogger
	SubscriberRepo newsletter.SubscriberRepo
}

func NewNewsletterHandler(l *zap.SugaredLogger, sr newsletter.SubscriberRepo) *NewsletterHandler {
	return &NewsletterHandler{
		Logger:         l,
		SubscriberRepo: sr,
	}
}

// Subscribe handles POST /api/newsletter
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var form newsletter.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	sub, err := h.SubscriberRepo.Subscribe(r.Context(), form)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(sub); err != nil {
		h.Logger.Errorf("failed to encode subscriber: %v", err)
		return
	}

	h.Logger.Infof("newsletter subscriber added: %s", sub.ID)
}
