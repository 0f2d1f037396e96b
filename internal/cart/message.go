package cart

import (
	"fmt"
	"strings"

	"muskan-shop/internal/money"
	myErr "muskan-shop/internal/types/errors"
)

const orderHeader = "🛒 NEW ORDER from Muskan Meat Shop Website"

// Validate проверяет, что имя, телефон и адрес заполнены
func (c Customer) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(c.Address) == "" {
		missing = append(missing, "address")
	}

	if len(missing) > 0 {
		return myErr.NewValidationError(missing...)
	}

	return nil
}

// OrderMessage формирует текст заказа для отправки в мессенджер:
// по строке на каждую позицию корзины и итоги.
// При незаполненных данных покупателя возвращает ValidationError и пустую строку
func (c *Cart) OrderMessage(customer Customer) (string, error) {
	if err := customer.Validate(); err != nil {
		return "", err
	}

	details := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		details = append(details, fmt.Sprintf("%s - %d %s × %s = %s",
			l.Name, l.Quantity, l.Unit, money.Plain(l.Price), money.Plain(l.Total()),
		))
	}

	var b strings.Builder
	b.WriteString(orderHeader + "\n\n")
	fmt.Fprintf(&b, "👤 Customer: %s\n", strings.TrimSpace(customer.Name))
	fmt.Fprintf(&b, "📞 Phone: %s\n", strings.TrimSpace(customer.Phone))
	fmt.Fprintf(&b, "📍 Address: %s\n\n", strings.TrimSpace(customer.Address))
	fmt.Fprintf(&b, "📦 Order Details:\n%s\n\n", strings.Join(details, "\n"))
	fmt.Fprintf(&b, "💰 Total Amount: %s\n", money.Grouped(c.TotalAmount()))
	fmt.Fprintf(&b, "📊 Total Items: %d", c.TotalItems())

	return b.String(), nil
}
