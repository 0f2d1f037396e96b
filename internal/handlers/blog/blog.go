package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"muskan-shop/internal/blog"
	myErr "muskan-shop/internal/types/errors"
)

// DefaultLimit сколько статей показывает лента без параметра limit
const DefaultLimit = 6

type BlogHandler struct {
	Logger   *zap.SugaredLogger
	PostRepo blog.PostRepo
}

func NewBlogHandler(l *zap.SugaredLogger, pr blog.PostRepo) *BlogHandler {
	return &BlogHandler{
		Logger:   l,
		PostRepo: pr,
	}
}

// List handles GET /api/blog?limit=N, limit=0 отдает все статьи
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			myErr.SendErrorTo(w, myErr.NewValidationError("limit"), http.StatusBadRequest, h.Logger)
			return
		}
		limit = n
	}

	posts, err := h.PostRepo.ListPublished(r.Context(), limit)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	// В ленте полный текст не нужен
	for i := range posts {
		posts[i].Content = ""
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(posts); err != nil {
		h.Logger.Errorf("failed to encode posts: %v", err)
		return
	}

	h.Logger.Infof("fetched %d blog posts", len(posts))
}

// GetBySlug handles GET /api/blog/{slug}
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	post, err := h.PostRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(post); err != nil {
		h.Logger.Errorf("failed to encode post: %v", err)
		return
	}

	h.Logger.Infof("fetched blog post: %s", slug)
}
