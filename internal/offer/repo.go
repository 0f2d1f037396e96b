package offer

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

const selectOffers = `
	SELECT id, title, description, discount_type, discount_value, minimum_order_amount,
		promo_code, is_active, valid_from, valid_until, created_at
	FROM offers`

type OfferDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewOfferDBRepository(db *sql.DB, l *zap.SugaredLogger) *OfferDBRepository {
	return &OfferDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (or *OfferDBRepository) ListActive(ctx context.Context) ([]Offer, error) {
	rows, err := or.DB.QueryContext(ctx, selectOffers+`
	WHERE is_active = TRUE
	ORDER BY created_at DESC`)
	if err != nil {
		or.Logger.Errorf("Error listing offers: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	offers := []Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			or.Logger.Errorf("Error scanning offer: %v", err)
			return nil, myErr.ErrDBInternal
		}
		offers = append(offers, *o)
	}
	if err := rows.Err(); err != nil {
		or.Logger.Errorf("Error iterating offers: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return offers, nil
}

func (or *OfferDBRepository) GetByPromoCode(ctx context.Context, code string) (*Offer, error) {
	row := or.DB.QueryRowContext(ctx, selectOffers+`
	WHERE is_active = TRUE AND UPPER(promo_code) = $1`, strings.ToUpper(strings.TrimSpace(code)))

	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		or.Logger.Errorf("Error getting offer by promo code %s: %v", code, err)
		return nil, myErr.ErrDBInternal
	}

	return o, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffer(s rowScanner) (*Offer, error) {
	var (
		o          Offer
		minimum    decimal.NullDecimal
		promoCode  sql.NullString
		validUntil sql.NullTime
	)

	err := s.Scan(
		&o.ID, &o.Title, &o.Description, &o.DiscountType, &o.DiscountValue, &minimum,
		&promoCode, &o.IsActive, &o.ValidFrom, &validUntil, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if minimum.Valid {
		o.MinimumOrderAmount = &minimum.Decimal
	}
	if promoCode.Valid {
		o.PromoCode = &promoCode.String
	}
	if validUntil.Valid {
		o.ValidUntil = &validUntil.Time
	}

	return &o, nil
}
