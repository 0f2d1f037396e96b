package order

import (
	"context"
	"strings"

	myErr "muskan-shop/internal/types/errors"
)

// Tracking ответ на запрос отслеживания заказа
type Tracking struct {
	Order       *Order `json:"order"`
	StatusLabel string `json:"status_label"`
	Progress    []Step `json:"progress"`
}

type Tracker struct {
	Repo OrderRepo
}

func NewTracker(repo OrderRepo) *Tracker {
	return &Tracker{Repo: repo}
}

// Track ищет заказ по номеру. Если передан телефон, он должен совпасть с телефоном покупателя
func (t *Tracker) Track(ctx context.Context, number, phone string) (*Tracking, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, myErr.NewValidationError("order_number")
	}

	o, err := t.Repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if phone = strings.TrimSpace(phone); phone != "" && phone != o.CustomerPhone {
		return nil, myErr.ErrPhoneMismatch
	}

	return &Tracking{
		Order:       o,
		StatusLabel: StatusLabel(o.Status),
		Progress:    Progress(o.Status),
	}, nil
}
