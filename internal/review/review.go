package review

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	myErr "muskan-shop/internal/types/errors"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review отзыв покупателя о магазине
type Review struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Location  *string   `json:"location,omitempty"`
	Approved  bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary средняя оценка по одобренным отзывам, с точностью до десятых
type Summary struct {
	Average decimal.Decimal `json:"average_rating"`
	Count   int             `json:"total"`
}

// Form данные формы отзыва
type Form struct {
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Location string `json:"location"`
}

// Normalize проверяет форму и готовит отзыв к записи.
// Новый отзыв попадает на сайт только после одобрения
func (f Form) Normalize() (*Review, error) {
	var missing []string
	name := strings.TrimSpace(f.Name)
	if name == "" {
		missing = append(missing, "name")
	}
	comment := strings.TrimSpace(f.Comment)
	if comment == "" {
		missing = append(missing, "comment")
	}
	if len(missing) > 0 {
		return nil, myErr.NewValidationError(missing...)
	}

	if f.Rating < MinRating || f.Rating > MaxRating {
		return nil, myErr.ErrInvalidRating
	}

	r := &Review{Name: name, Rating: f.Rating, Comment: comment}
	if location := strings.TrimSpace(f.Location); location != "" {
		r.Location = &location
	}

	return r, nil
}

// ReviewRepo интерфейс для работы с отзывами
//
//go:generate mockgen -source=review.go -destination=../mocks/mock_review_repo.go -package=mocks
type ReviewRepo interface {
	// Create сохраняет отзыв на модерацию
	Create(ctx context.Context, form Form) (*Review, error)
	// ListApproved одобренные отзывы, новые первыми. limit <= 0 - все
	ListApproved(ctx context.Context, limit int) ([]Review, error)
	// Summary средняя оценка и число одобренных отзывов
	Summary(ctx context.Context) (*Summary, error)
}
