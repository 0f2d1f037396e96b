package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"muskan-shop/internal/middleware"
	"muskan-shop/internal/session"
)

func TestGetSessionIDFromContext(t *testing.T) {
	id, ok := GetSessionIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)

	ctx := middleware.ContextWithSession(context.Background(), &session.Session{ID: "visitor-1"})
	id, ok = GetSessionIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "visitor-1", id)

	ctx = middleware.ContextWithSession(context.Background(), nil)
	_, ok = GetSessionIDFromContext(ctx)
	assert.False(t, ok)
}
