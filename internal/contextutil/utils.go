package contextutil

import (
	"context"

	"muskan-shop/internal/middleware"
)

// GetSessionIDFromContext извлекает id сессии посетителя из контекста
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := middleware.SessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return sess.ID, true
}
