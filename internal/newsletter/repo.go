package newsletter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

const uniqueViolation = "23505"

type SubscriberDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewSubscriberDBRepository(db *sql.DB, l *zap.SugaredLogger) *SubscriberDBRepository {
	return &SubscriberDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (sr *SubscriberDBRepository) Subscribe(ctx context.Context, form Form) (*Subscriber, error) {
	s, err := form.Normalize()
	if err != nil {
		return nil, err
	}
	s.ID = uuid.NewString()

	err = sr.DB.QueryRowContext(ctx, `
	INSERT INTO newsletter_subscribers (id, email, phone, name, is_active)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING subscribed_at`,
		s.ID, s.Email, s.Phone, s.Name, s.IsActive,
	).Scan(&s.SubscribedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, myErr.ErrAlreadyExists
		}
		sr.Logger.Errorf("Error subscribing %s: %v", s.Email, err)
		return nil, myErr.ErrDBInternal
	}

	return s, nil
}
