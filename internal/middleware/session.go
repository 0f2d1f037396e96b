package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"muskan-shop/internal/session"
	myErr "muskan-shop/internal/types/errors"
)

type SessKey string

var sessKey SessKey = "sessionKey"

// Session пропускает запрос дальше только с живой сессией посетителя.
// Каждый успешный запрос продлевает сессию
func Session(sm session.SessionRepo, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sm.CheckSession(r)
			if err != nil {
				myErr.SendErrorTo(w, err, http.StatusUnauthorized, logger)
				return
			}

			if err := sm.ExtendSession(r.Context(), sess.ID); err != nil {
				logger.Warnw("failed to extend session", "sessionID", sess.ID, "err", err)
			}

			ctx := ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	// создаем новый контекст с нашим ключом и сессией
	return context.WithValue(ctx, sessKey, s)
}

func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessKey).(*session.Session)
	return s, ok && s != nil
}

// OptionalSession кладет сессию в контекст, если токен валиден, но запрос не отклоняет.
// Нужен публичным ручкам, которые пишут события аналитики
func OptionalSession(sm session.SessionRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sm.CheckSession(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
		})
	}
}
