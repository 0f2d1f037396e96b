package order

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

type OrderDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewOrderDBRepository(db *sql.DB, l *zap.SugaredLogger) *OrderDBRepository {
	return &OrderDBRepository{
		DB:     db,
		Logger: l,
	}
}

// Create записывает заказ и его позиции в одной транзакции
func (or *OrderDBRepository) Create(ctx context.Context, o *Order) error {
	o.ID = uuid.NewString()
	if o.Number == "" {
		o.Number = NewNumber()
	}
	if o.Status == "" {
		o.Status = StatusProcessing
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentCashOnDelivery
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now

	tx, err := or.DB.BeginTx(ctx, nil)
	if err != nil {
		or.Logger.Errorf("Error starting order transaction: %v", err)
		return myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	_, err = tx.ExecContext(ctx, `
	INSERT INTO orders (
		id, order_number, customer_name, customer_phone, customer_address, customer_email,
		notes, promo_code, discount_amount, total_amount, status, payment_method,
		payment_status, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.Number, o.CustomerName, o.CustomerPhone, o.CustomerAddress, o.CustomerEmail,
		o.Notes, o.PromoCode, o.DiscountAmount, o.TotalAmount, o.Status, o.PaymentMethod,
		o.PaymentStatus, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		or.Logger.Errorf("Error inserting order %s: %v", o.Number, err)
		return myErr.ErrDBInternal
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), o.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.TotalPrice,
		)
		if err != nil {
			or.Logger.Errorf("Error inserting item %s of order %s: %v", it.ProductID, o.Number, err)
			return myErr.ErrDBInternal
		}
	}

	if err := tx.Commit(); err != nil {
		or.Logger.Errorf("Error committing order %s: %v", o.Number, err)
		return myErr.ErrDBInternal
	}

	return nil
}

func (or *OrderDBRepository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	var (
		o         Order
		email     sql.NullString
		notes     sql.NullString
		promoCode sql.NullString
	)

	err := or.DB.QueryRowContext(ctx, `
	SELECT id, order_number, customer_name, customer_phone, customer_address, customer_email,
		notes, promo_code, discount_amount, total_amount, status, payment_method,
		payment_status, created_at, updated_at
	FROM orders
	WHERE order_number = $1`, strings.TrimSpace(number)).Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &email,
		&notes, &promoCode, &o.DiscountAmount, &o.TotalAmount, &o.Status, &o.PaymentMethod,
		&o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		or.Logger.Errorf("Error getting order %s: %v", number, err)
		return nil, myErr.ErrDBInternal
	}

	if email.Valid {
		o.CustomerEmail = &email.String
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	if promoCode.Valid {
		o.PromoCode = &promoCode.String
	}

	rows, err := or.DB.QueryContext(ctx, `
	SELECT product_id, product_name, quantity, unit_price, total_price
	FROM order_items
	WHERE order_id = $1
	ORDER BY created_at ASC`, o.ID)
	if err != nil {
		or.Logger.Errorf("Error getting items of order %s: %v", number, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	o.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			or.Logger.Errorf("Error scanning item of order %s: %v", number, err)
			return nil, myErr.ErrDBInternal
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		or.Logger.Errorf("Error iterating items of order %s: %v", number, err)
		return nil, myErr.ErrDBInternal
	}

	return &o, nil
}
