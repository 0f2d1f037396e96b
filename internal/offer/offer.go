package offer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"muskan-shop/internal/money"
	myErr "muskan-shop/internal/types/errors"
)

const (
	TypePercentage   = "percentage"
	TypeFixedAmount  = "fixed_amount"
	TypeFreeShipping = "free_shipping"
)

// Offer акция магазина, может иметь промокод
type Offer struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	DiscountType       string           `json:"discount_type"`
	DiscountValue      decimal.Decimal  `json:"discount_value"`
	MinimumOrderAmount *decimal.Decimal `json:"minimum_order_amount,omitempty"`
	PromoCode          *string          `json:"promo_code,omitempty"`
	IsActive           bool             `json:"is_active"`
	ValidFrom          time.Time        `json:"valid_from"`
	ValidUntil         *time.Time       `json:"valid_until,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// Discount результат применения акции к сумме заказа
type Discount struct {
	Amount       decimal.Decimal `json:"amount"`
	FreeDelivery bool            `json:"free_delivery"`
}

// Quote расчет корзины с примененным промокодом
type Quote struct {
	PromoCode    string          `json:"promo_code"`
	Label        string          `json:"label"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	FreeDelivery bool            `json:"free_delivery"`
}

// Label подпись скидки для витрины
func (o Offer) Label() string {
	switch o.DiscountType {
	case TypePercentage:
		return o.DiscountValue.String() + "% OFF"
	case TypeFixedAmount:
		return money.Plain(o.DiscountValue) + " OFF"
	case TypeFreeShipping:
		return "FREE DELIVERY"
	default:
		return "SPECIAL OFFER"
	}
}

// IsValidAt действует ли акция в момент now
func (o Offer) IsValidAt(now time.Time) bool {
	if !o.IsActive || now.Before(o.ValidFrom) {
		return false
	}

	return o.ValidUntil == nil || !now.After(*o.ValidUntil)
}

// Apply считает скидку для суммы заказа.
// Скидка не может превышать сумму, бесплатная доставка сумму не уменьшает
func (o Offer) Apply(subtotal decimal.Decimal) (Discount, error) {
	if o.MinimumOrderAmount != nil && subtotal.LessThan(*o.MinimumOrderAmount) {
		return Discount{}, myErr.ErrOfferNotApplicable
	}

	switch o.DiscountType {
	case TypePercentage:
		amount := subtotal.Mul(o.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
		return Discount{Amount: decimal.Min(amount, subtotal)}, nil
	case TypeFixedAmount:
		return Discount{Amount: decimal.Min(o.DiscountValue, subtotal)}, nil
	case TypeFreeShipping:
		return Discount{Amount: decimal.Zero, FreeDelivery: true}, nil
	default:
		return Discount{Amount: decimal.Zero}, nil
	}
}

// QuoteFor применяет акцию к сумме и собирает расчет
func (o Offer) QuoteFor(subtotal decimal.Decimal) (*Quote, error) {
	d, err := o.Apply(subtotal)
	if err != nil {
		return nil, err
	}

	code := ""
	if o.PromoCode != nil {
		code = *o.PromoCode
	}

	return &Quote{
		PromoCode:    code,
		Label:        o.Label(),
		Subtotal:     subtotal,
		Discount:     d.Amount,
		Total:        subtotal.Sub(d.Amount),
		FreeDelivery: d.FreeDelivery,
	}, nil
}

// OfferRepo интерфейс для работы с акциями
//
//go:generate mockgen -source=offer.go -destination=../mocks/mock_offer_repo.go -package=mocks
type OfferRepo interface {
	// ListActive возвращает включенные акции, новые первыми
	ListActive(ctx context.Context) ([]Offer, error)
	// GetByPromoCode ищет включенную акцию по промокоду без учета регистра
	GetByPromoCode(ctx context.Context, code string) (*Offer, error)
}
