package session

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"muskan-shop/internal/types/errors"
)

func setupTestRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	logger := zaptest.NewLogger(t).Sugar()
	repo := NewSessionRepository(rdb, logger, "secret", 15*time.Minute)

	return repo, mr
}

func TestCreateSession(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sess, token, err := repo.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, token)

	// Проверка записи в Redis
	val, err := mr.Get(keyPrefix + sess.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, val)

	// Токен проходит проверку
	req := httptest.NewRequest("GET", "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	checked, err := repo.CheckSession(req)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, checked.ID)
}

func TestCheckSession_Success(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sessionData := Session{
		ID:        "session-1",
		StartTime: time.Now().Add(-5 * time.Minute),
		EndTime:   time.Now().Add(10 * time.Minute),
	}
	data, err := json.Marshal(sessionData)
	require.NoError(t, err)
	require.NoError(t, mr.Set(keyPrefix+"session-1", string(data)))

	tokenStr := generateJWT(t, "secret", sessionData.ID)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	result, err := repo.CheckSession(req)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, sessionData.ID, result.ID)
}

func TestCheckSession_MissingAuthHeader(t *testing.T) {
	repo, _ := setupTestRepo(t)

	req := httptest.NewRequest("GET", "/", nil)

	sess, err := repo.CheckSession(req)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_InvalidToken(t *testing.T) {
	repo, _ := setupTestRepo(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.value")

	sess, err := repo.CheckSession(req)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_WrongSecret(t *testing.T) {
	repo, _ := setupTestRepo(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+generateJWT(t, "other-secret", "session-1"))

	_, err := repo.CheckSession(req)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_SessionNotFound(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+generateJWT(t, "secret", "gone"))

	_, err := repo.CheckSession(req)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestCheckSession_SessionExpired(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sessionData := Session{
		ID:        "expired-session",
		StartTime: time.Now().Add(-30 * time.Minute),
		EndTime:   time.Now().Add(-10 * time.Minute),
	}
	data, err := json.Marshal(sessionData)
	require.NoError(t, err)
	require.NoError(t, mr.Set(keyPrefix+"expired-session", string(data)))

	tokenStr := generateJWT(t, "secret", sessionData.ID)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	sess, err := repo.CheckSession(req)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrSessionIsExpired)

	assert.False(t, mr.Exists(keyPrefix+"expired-session"))
}

func TestExtendSession(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	clock := time.Now()
	repo.now = func() time.Time { return clock }

	sess, token, err := repo.CreateSession(context.Background())
	require.NoError(t, err)

	clock = clock.Add(10 * time.Minute)
	mr.FastForward(10 * time.Minute)
	require.NoError(t, repo.ExtendSession(context.Background(), sess.ID))

	// исходный срок в 15 минут уже прошел, продленная сессия жива до 25-й минуты
	clock = clock.Add(10 * time.Minute)
	mr.FastForward(10 * time.Minute)
	assert.True(t, mr.Exists(keyPrefix+sess.ID))

	req := httptest.NewRequest("GET", "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	checked, err := repo.CheckSession(req)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, checked.ID)

	// без продления сессия истекает
	clock = clock.Add(10 * time.Minute)
	_, err = repo.CheckSession(req)
	assert.ErrorIs(t, err, errors.ErrSessionIsExpired)

	assert.ErrorIs(t, repo.ExtendSession(context.Background(), "unknown"), errors.ErrSessionNotFound)
}

func TestCreateSession_TokenHasNoExpiry(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	_, token, err := repo.CreateSession(context.Background())
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.NotContains(t, claims, "exp")
	assert.NotEmpty(t, claims["session_id"])
}

func generateJWT(t *testing.T, secret, sessionID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenStr
}
