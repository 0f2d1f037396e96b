package newsletter

import (
	"context"
	"net/mail"
	"strings"
	"time"

	myErr "muskan-shop/internal/types/errors"
)

// Form данные формы подписки
type Form struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Name         *string   `json:"name,omitempty"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Normalize приводит форму к виду для записи: email в нижнем регистре,
// пустые телефон и имя становятся nil
func (f Form) Normalize() (*Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(f.Email))
	if email == "" {
		return nil, myErr.NewValidationError("email")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, myErr.ErrInvalidEmail
	}

	s := &Subscriber{Email: email, IsActive: true}
	if phone := strings.TrimSpace(f.Phone); phone != "" {
		s.Phone = &phone
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		s.Name = &name
	}

	return s, nil
}

// SubscriberRepo интерфейс для работы с подписчиками
//
//go:generate mockgen -source=newsletter.go -destination=../mocks/mock_newsletter_repo.go -package=mocks
type SubscriberRepo interface {
	// Subscribe добавляет подписчика, повторный email дает ErrAlreadyExists
	Subscribe(ctx context.Context, form Form) (*Subscriber, error)
}
