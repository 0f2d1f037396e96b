package session

import (
	"context"
	"net/http"
	"time"
)

// Session анонимная сессия посетителя, к ней привязана корзина
type Session struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
}

// SessionRepo - репозиторий для работы с сессиями
//
//go:generate mockgen -source=session.go -destination=../mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateSession - создает новую сессию посетителя и кладет ее в Redis
	// Возвращает Session и подписанный JWT
	CreateSession(ctx context.Context) (*Session, string, error)
	// CheckSession - проверяет токен из заголовка Authorization, существование сессии в Redis и не истекла ли она
	CheckSession(r *http.Request) (*Session, error)
	// ExtendSession - продлевает сессию, пока посетитель пользуется магазином
	ExtendSession(ctx context.Context, sessionID string) error
}
