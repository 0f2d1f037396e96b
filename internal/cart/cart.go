package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"muskan-shop/internal/catalog"
)

// Line строка корзины: товар и его количество.
// Товар встраивается, чтобы сериализованная корзина была плоским списком полей товара с quantity
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Total стоимость строки
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Customer данные покупателя для сообщения о заказе
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Cart упорядоченная корзина посетителя.
// Порядок строк совпадает с порядком первого добавления, на один товар приходится одна строка,
// количество в строке всегда не меньше 1
type Cart struct {
	lines []Line
}

// New создает пустую корзину
func New() *Cart {
	return &Cart{}
}

// FromLines собирает корзину из сохраненных строк.
// Повторяющиеся товары складываются, строки с количеством меньше 1 отбрасываются
func FromLines(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		c.Add(l.Product, l.Quantity)
	}

	return c
}

// Add добавляет quantity единиц товара. Если строка уже есть, количество увеличивается,
// иначе строка добавляется в конец. Количество меньше 1 игнорируется
func (c *Cart) Add(p catalog.Product, quantity int) {
	if quantity < 1 {
		return
	}

	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		return
	}

	c.lines = append(c.lines, Line{Product: p, Quantity: quantity})
}

// UpdateQuantity выставляет количество в строке товара.
// Количество 0 и меньше удаляет строку, отсутствующий товар ничего не меняет
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	i := c.index(productID)
	if i < 0 {
		return
	}

	if quantity < 1 {
		c.removeAt(i)
		return
	}

	c.lines[i].Quantity = quantity
}

// Remove удаляет строку товара, если она есть
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.removeAt(i)
	}
}

// Clear очищает корзину
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines возвращает копию строк корзины
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)

	return lines
}

// IsEmpty true для пустой корзины
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Contains проверяет наличие товара в корзине
func (c *Cart) Contains(productID string) bool {
	return c.index(productID) >= 0
}

// TotalItems сумма количеств по всем строкам
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}

	return total
}

// TotalAmount сумма price * quantity по всем строкам, считается при каждом вызове
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}

	return total
}

// Categories категории товаров корзины без повторов, в порядке строк
func (c *Cart) Categories() []string {
	seen := make(map[string]struct{}, len(c.lines))
	categories := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		if _, ok := seen[l.Category]; ok {
			continue
		}
		seen[l.Category] = struct{}{}
		categories = append(categories, l.Category)
	}

	return categories
}

func (c *Cart) index(productID string) int {
	for i, l := range c.lines {
		if l.ID == productID {
			return i
		}
	}

	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Store хранилище сериализованных корзин
//
//go:generate mockgen -source=cart.go -destination=../mocks/mock_cart_store.go -package=mocks
type Store interface {
	// Load возвращает сохраненные данные корзины, для отсутствующего ключа ErrNotFound
	Load(ctx context.Context, key string) ([]byte, error)
	// Save сохраняет данные корзины под ключом
	Save(ctx context.Context, key string, data []byte) error
	// Delete удаляет корзину
	Delete(ctx context.Context, key string) error
	// Update атомарно заменяет данные корзины результатом fn.
	// Для отсутствующего ключа fn получает nil
	Update(ctx context.Context, key string, fn func(data []byte) ([]byte, error)) error
}
