package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap/zaptest"

	"muskan-shop/internal/mocks"
	"muskan-shop/internal/newsletter"
	myErr "muskan-shop/internal/types/errors"
)

func TestNewsletterHandler_Subscribe(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockBehavior   func(repo *mocks.MockSubscriberRepo)
		expectedStatus int
	}{
		{
			name: "новый подписчик",
			body: `{"email":"Ramesh@Example.com","name":"Ramesh"}`,
			mockBehavior: func(repo *mocks.MockSubscriberRepo) {
				repo.EXPECT().
					Subscribe(gomock.Any(), newsletter.Form{Email: "Ramesh@Example.com", Name: "Ramesh"}).
					Return(&newsletter.Subscriber{ID: "sub-1", Email: "ramesh@example.com", IsActive: true}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "уже подписан",
			body: `{"email":"ramesh@example.com"}`,
			mockBehavior: func(repo *mocks.MockSubscriberRepo) {
				repo.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "пустой email",
			body: `{"email":""}`,
			mockBehavior: func(repo *mocks.MockSubscriberRepo) {
				repo.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil, myErr.NewValidationError("email"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "кривой email",
			body: `{"email":"not-an-email"}`,
			mockBehavior: func(repo *mocks.MockSubscriberRepo) {
				repo.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrInvalidEmail)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "битый json",
			body:           `{`,
			mockBehavior:   func(repo *mocks.MockSubscriberRepo) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "ошибка базы",
			body: `{"email":"ramesh@example.com"}`,
			mockBehavior: func(repo *mocks.MockSubscriberRepo) {
				repo.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrDBInternal)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSubscriberRepo(ctrl)
			tt.mockBehavior(repo)

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/newsletter", bytes.NewBufferString(tt.body))
			NewNewsletterHandler(zaptest.NewLogger(t).Sugar(), repo).Subscribe(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
