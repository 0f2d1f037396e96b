package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

const keyPrefix = "muskan-session:"

type SessionRepository struct {
	RedisClient  *redis.Client
	Logger       *zap.SugaredLogger
	tokenSecret  string
	baseDuration time.Duration
	now          func() time.Time
}

func NewSessionRepository(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	tokenSecret string,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		RedisClient:  redisClient,
		Logger:       logger,
		tokenSecret:  tokenSecret,
		baseDuration: baseDuration,
		now:          time.Now,
	}
}

func (sr *SessionRepository) CreateSession(ctx context.Context) (*Session, string, error) {
	now := sr.now()

	session := &Session{
		ID:        uuid.New().String(),
		StartTime: now,
		EndTime:   now.Add(sr.baseDuration),
	}

	if err := sr.saveSessionToRedis(ctx, session); err != nil {
		// Логируется внутри saveSessionToRedis
		return nil, "", err
	}

	// Срок жизни сессии задает только Redis, exp в токен не пишется
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat":        session.StartTime.Unix(),
		"session_id": session.ID,
	})

	tokenStr, err := token.SignedString([]byte(sr.tokenSecret))
	if err != nil {
		sr.Logger.Error("Failed to sign JWT token", zap.Error(err))
		return nil, "", fmt.Errorf("error signing token: %w", err)
	}

	sr.Logger.Infof("Visitor session %s created", session.ID)
	return session, tokenStr, nil
}

func (sr *SessionRepository) CheckSession(r *http.Request) (*Session, error) { // nolint:gocyclo
	const bearerPrefix = "Bearer "

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, myErr.ErrNoAuth
	}

	tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			sr.Logger.Warnf("Unexpected signing method: %v", token.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(sr.tokenSecret), nil
	})
	if err != nil || !token.Valid {
		sr.Logger.Warnf("Invalid JWT token: %v", err)
		return nil, myErr.ErrNoAuth
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		sr.Logger.Warn("Unexpected JWT claims")
		return nil, myErr.ErrNoAuth
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		sr.Logger.Warn("Missing session_id claim in JWT")
		return nil, myErr.ErrNoAuth
	}

	ctx := r.Context()
	session, err := sr.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return nil, err // уже логируется внутри
	}

	if sr.now().After(session.EndTime) {
		_ = sr.RedisClient.Del(ctx, keyPrefix+sessionID).Err() // nolint:errcheck
		return nil, myErr.ErrSessionIsExpired
	}

	return session, nil
}

func (sr *SessionRepository) ExtendSession(ctx context.Context, sessionID string) error {
	session, err := sr.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return err
	}

	session.EndTime = sr.now().Add(sr.baseDuration)

	return sr.saveSessionToRedis(ctx, session)
}

func (sr *SessionRepository) saveSessionToRedis(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		sr.Logger.Error("Failed encode session to JSON", zap.Error(err), zap.String("sessionID", session.ID))
		return err
	}

	err = sr.RedisClient.Set(ctx, keyPrefix+session.ID, data, sr.baseDuration).Err()
	if err != nil {
		sr.Logger.Error("Failed save session to Redis", zap.Error(err), zap.String("sessionID", session.ID))
		return err
	}

	return nil
}

func (sr *SessionRepository) getSessionFromRedis(ctx context.Context, sessionID string) (*Session, error) {
	data, err := sr.RedisClient.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			sr.Logger.Warnf("Session %s not found in Redis", sessionID)
			return nil, myErr.ErrSessionNotFound
		}

		sr.Logger.Error("Failed get session from Redis", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, err
	}

	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		sr.Logger.Error("Failed decode session from JSON", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, err
	}

	return &session, nil
}
