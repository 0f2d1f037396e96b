package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"muskan-shop/internal/cart"
)

const (
	StatusProcessing     = "processing"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"

	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentPending        = "pending"

	numberPrefix = "MS-"
)

// statusFlow порядок статусов доставки, отмена в него не входит
var statusFlow = []string{
	StatusProcessing,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

var statusLabels = map[string]string{
	StatusProcessing:     "Processing",
	StatusConfirmed:      "Confirmed",
	StatusPreparing:      "Preparing",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusCancelled:      "Cancelled",
}

// Item позиция заказа, цена фиксируется на момент оформления
type Item struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	CustomerEmail   *string         `json:"customer_email,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	PromoCode       *string         `json:"promo_code,omitempty"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []Item          `json:"items"`
}

// Step шаг прогресса доставки
type Step struct {
	Status    string `json:"status"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// NewNumber генерирует номер заказа вида MS-1A2B3C4D
func NewNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return numberPrefix + strings.ToUpper(id[:8])
}

// FromCart собирает заказ из корзины. Сумма заказа считается по корзине за вычетом скидки
func FromCart(c *cart.Cart, customer cart.Customer, discount decimal.Decimal) *Order {
	lines := c.Lines()
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{
			ProductID:   l.ID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price,
			TotalPrice:  l.Total(),
		})
	}

	return &Order{
		CustomerName:    strings.TrimSpace(customer.Name),
		CustomerPhone:   strings.TrimSpace(customer.Phone),
		CustomerAddress: strings.TrimSpace(customer.Address),
		DiscountAmount:  discount,
		TotalAmount:     c.TotalAmount().Sub(discount),
		Status:          StatusProcessing,
		PaymentMethod:   PaymentCashOnDelivery,
		PaymentStatus:   PaymentPending,
		Items:           items,
	}
}

// StatusLabel человекочитаемое название статуса
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}

	return status
}

// Progress шаги доставки для статуса заказа.
// Для отмененного заказа шагов нет
func Progress(status string) []Step {
	if status == StatusCancelled {
		return nil
	}

	current := -1
	for i, s := range statusFlow {
		if s == status {
			current = i
			break
		}
	}

	steps := make([]Step, 0, len(statusFlow))
	for i, s := range statusFlow {
		steps = append(steps, Step{
			Status:    s,
			Label:     statusLabels[s],
			Completed: i <= current,
			Active:    i == current,
		})
	}

	return steps
}

// OrderRepo интерфейс для работы с заказами
//
//go:generate mockgen -source=order.go -destination=../mocks/mock_order_repo.go -package=mocks
type OrderRepo interface {
	// Create сохраняет заказ вместе с позициями и проставляет id, номер и даты
	Create(ctx context.Context, o *Order) error
	// GetByNumber возвращает заказ с позициями по номеру
	GetByNumber(ctx context.Context, number string) (*Order, error)
}
