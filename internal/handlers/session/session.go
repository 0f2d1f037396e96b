package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"muskan-shop/internal/session"
	myErr "muskan-shop/internal/types/errors"
)

type SessionHandler struct {
	Logger         *zap.SugaredLogger
	SessionManager session.SessionRepo
}

func NewSessionHandler(l *zap.SugaredLogger, sm session.SessionRepo) *SessionHandler {
	return &SessionHandler{
		Logger:         l,
		SessionManager: sm,
	}
}

// Start handles POST /api/session и выдает токен анонимной сессии
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess, token, err := h.SessionManager.CreateSession(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(map[string]string{"token": token}); err != nil {
		h.Logger.Errorf("failed to encode token: %v", err)
		return
	}

	h.Logger.Infof("session %s started", sess.ID)
}
