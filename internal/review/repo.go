package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

type ReviewDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewReviewDBRepository(db *sql.DB, l *zap.SugaredLogger) *ReviewDBRepository {
	return &ReviewDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (rr *ReviewDBRepository) Create(ctx context.Context, form Form) (*Review, error) {
	r, err := form.Normalize()
	if err != nil {
		return nil, err
	}
	r.ID = uuid.NewString()

	err = rr.DB.QueryRowContext(ctx, `
	INSERT INTO reviews (id, name, rating, comment, location, approved)
	VALUES ($1, $2, $3, $4, $5, FALSE)
	RETURNING created_at`,
		r.ID, r.Name, r.Rating, r.Comment, r.Location,
	).Scan(&r.CreatedAt)
	if err != nil {
		rr.Logger.Warnf("Ошибка при создании отзыва: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return r, nil
}

func (rr *ReviewDBRepository) ListApproved(ctx context.Context, limit int) ([]Review, error) {
	query := `
	SELECT id, name, rating, comment, location, created_at
	FROM reviews
	WHERE approved = TRUE
	ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := rr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		rr.Logger.Warnf("Ошибка при получении отзывов: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		r := Review{Approved: true}
		if err := rows.Scan(&r.ID, &r.Name, &r.Rating, &r.Comment, &r.Location, &r.CreatedAt); err != nil {
			rr.Logger.Warnf("Ошибка при сканировании отзыва: %v", err)
			return nil, myErr.ErrDBInternal
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		rr.Logger.Warnf("Ошибка при чтении отзывов: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return reviews, nil
}

func (rr *ReviewDBRepository) Summary(ctx context.Context) (*Summary, error) {
	var (
		count   int
		average float64
	)
	err := rr.DB.QueryRowContext(ctx, `
	SELECT COUNT(*), COALESCE(AVG(rating), 0)
	FROM reviews
	WHERE approved = TRUE`,
	).Scan(&count, &average)
	if err != nil {
		rr.Logger.Warnf("Ошибка при подсчете рейтинга: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &Summary{
		Average: decimal.NewFromFloat(average).Round(1),
		Count:   count,
	}, nil
}
