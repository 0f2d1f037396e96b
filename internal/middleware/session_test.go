package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"muskan-shop/internal/mocks"
	"muskan-shop/internal/session"
	myErr "muskan-shop/internal/types/errors"
)

func echoSession(t *testing.T, wantSession bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		assert.Equal(t, wantSession, ok)
		if ok {
			w.Header().Set("X-Session", sess.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestSession(t *testing.T) {
	tests := []struct {
		name           string
		mockBehavior   func(repo *mocks.MockSessionRepo)
		expectedStatus int
		expectedID     string
	}{
		{
			name: "валидная сессия",
			mockBehavior: func(repo *mocks.MockSessionRepo) {
				repo.EXPECT().CheckSession(gomock.Any()).Return(&session.Session{ID: "s-1"}, nil)
				repo.EXPECT().ExtendSession(gomock.Any(), "s-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedID:     "s-1",
		},
		{
			name: "продление не удалось",
			mockBehavior: func(repo *mocks.MockSessionRepo) {
				repo.EXPECT().CheckSession(gomock.Any()).Return(&session.Session{ID: "s-2"}, nil)
				repo.EXPECT().ExtendSession(gomock.Any(), "s-2").Return(errors.New("redis down"))
			},
			expectedStatus: http.StatusOK,
			expectedID:     "s-2",
		},
		{
			name: "нет токена",
			mockBehavior: func(repo *mocks.MockSessionRepo) {
				repo.EXPECT().CheckSession(gomock.Any()).Return(nil, myErr.ErrNoAuth)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSessionRepo(ctrl)
			tt.mockBehavior(repo)

			h := Session(repo, zaptest.NewLogger(t).Sugar())(echoSession(t, true))

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedID, rr.Header().Get("X-Session"))
		})
	}
}

func TestOptionalSession(t *testing.T) {
	t.Run("без заголовка", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSessionRepo(ctrl)

		rr := httptest.NewRecorder()
		OptionalSession(repo)(echoSession(t, false)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("невалидный токен", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSessionRepo(ctrl)
		repo.EXPECT().CheckSession(gomock.Any()).Return(nil, myErr.ErrSessionIsExpired)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rr := httptest.NewRecorder()
		OptionalSession(repo)(echoSession(t, false)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("валидный токен", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSessionRepo(ctrl)
		repo.EXPECT().CheckSession(gomock.Any()).Return(&session.Session{ID: "s-3"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Authorization", "Bearer ok")
		rr := httptest.NewRecorder()
		OptionalSession(repo)(echoSession(t, true)).ServeHTTP(rr, req)

		assert.Equal(t, "s-3", rr.Header().Get("X-Session"))
	})
}
