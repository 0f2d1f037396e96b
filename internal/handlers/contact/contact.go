package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"muskan-shop/internal/messaging"
	myErr "muskan-shop/internal/types/errors"
)

// Shop контактные данные магазина
type Shop struct {
	Name           string
	WhatsAppNumber string
	Phones         []string
	Address        string
	MapsQuery      string
	Hours          string
}

type phoneView struct {
	Number string `json:"number"`
	TelURI string `json:"tel_uri"`
}

type quickQuestion struct {
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url"`
}

type contactInfo struct {
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Hours          string          `json:"hours,omitempty"`
	MapsURL        string          `json:"maps_url"`
	WhatsAppNumber string          `json:"whatsapp_number"`
	WhatsAppURL    string          `json:"whatsapp_url"`
	Phones         []phoneView     `json:"phones"`
	QuickQuestions []quickQuestion `json:"quick_questions"`
}

type inquiryForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type inquiryResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

type ContactHandler struct {
	Logger *zap.SugaredLogger
	Shop   Shop
}

func NewContactHandler(l *zap.SugaredLogger, shop Shop) *ContactHandler {
	return &ContactHandler{
		Logger: l,
		Shop:   shop,
	}
}

// Info handles GET /api/contact
func (h *ContactHandler) Info(w http.ResponseWriter, r *http.Request) {
	mapsQuery := h.Shop.MapsQuery
	if mapsQuery == "" {
		mapsQuery = h.Shop.Address
	}

	info := contactInfo{
		Name:           h.Shop.Name,
		Address:        h.Shop.Address,
		Hours:          h.Shop.Hours,
		MapsURL:        messaging.MapsURL(mapsQuery),
		WhatsAppNumber: h.Shop.WhatsAppNumber,
		WhatsAppURL:    messaging.WhatsAppURL(h.Shop.WhatsAppNumber, messaging.DefaultMessage),
		Phones:         make([]phoneView, 0, len(h.Shop.Phones)),
		QuickQuestions: make([]quickQuestion, 0, len(messaging.QuickQuestions)),
	}
	for _, p := range h.Shop.Phones {
		info.Phones = append(info.Phones, phoneView{Number: p, TelURI: messaging.TelURI(p)})
	}
	for _, q := range messaging.QuickQuestions {
		info.QuickQuestions = append(info.QuickQuestions, quickQuestion{
			Text:        q,
			WhatsAppURL: messaging.WhatsAppURL(h.Shop.WhatsAppNumber, q),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		h.Logger.Errorf("failed to encode contact info: %v", err)
	}
}

// Inquiry handles POST /api/contact/inquiry
func (h *ContactHandler) Inquiry(w http.ResponseWriter, r *http.Request) {
	var form inquiryForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	var missing []string
	if strings.TrimSpace(form.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(form.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(form.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		err := myErr.NewValidationError(missing...)
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	msg := messaging.InquiryMessage(form.Name, form.Phone, form.Message)
	resp := inquiryResponse{
		Message:     msg,
		WhatsAppURL: messaging.WhatsAppURL(h.Shop.WhatsAppNumber, msg),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Errorf("failed to encode inquiry: %v", err)
		return
	}

	h.Logger.Infow("inquiry prepared", "phone", strings.TrimSpace(form.Phone))
}
