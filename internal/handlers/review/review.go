package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"muskan-shop/internal/review"
	myErr "muskan-shop/internal/types/errors"
)

const DefaultLimit = 6

type ReviewHandler struct {
	Logger     *zap.SugaredLogger
	ReviewRepo review.ReviewRepo
}

func NewReviewHandler(l *zap.SugaredLogger, rr review.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{
		Logger:     l,
		ReviewRepo: rr,
	}
}

type reviewsResponse struct {
	review.Summary
	Reviews []review.Review `json:"reviews"`
}

// List handles GET /api/reviews?limit=N
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			myErr.SendErrorTo(w, myErr.NewValidationError("limit"), http.StatusBadRequest, h.Logger)
			return
		}
		limit = n
	}

	summary, err := h.ReviewRepo.Summary(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	reviews, err := h.ReviewRepo.ListApproved(r.Context(), limit)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(reviewsResponse{Summary: *summary, Reviews: reviews}); err != nil {
		h.Logger.Errorf("failed to encode reviews: %v", err)
	}
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form review.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	created, err := h.ReviewRepo.Create(r.Context(), form)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(created); err != nil {
		h.Logger.Errorf("failed to encode review: %v", err)
		return
	}

	h.Logger.Infof("review %s submitted for moderation", created.ID)
}
