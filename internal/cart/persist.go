package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	myErr "muskan-shop/internal/types/errors"
)

// ErrCorrupt данные корзины в хранилище не читаются
var ErrCorrupt = errors.New("corrupt cart data")

// DefaultKeyPrefix префикс ключа, под которым хранится корзина посетителя
const DefaultKeyPrefix = "muskan-cart"

// Key ключ хранения корзины сессии
func Key(prefix, sessionID string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return prefix + ":" + sessionID
}

// MarshalJSON сериализует корзину плоским списком строк
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Lines())
}

// UnmarshalJSON восстанавливает корзину с нормализацией строк
func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}

	*c = *FromLines(lines)

	return nil
}

// Save записывает корзину в хранилище
func (c *Cart) Save(ctx context.Context, store Store, key string) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save cart %s: %w", key, err)
	}

	return nil
}

// Load читает корзину из хранилища.
// Отсутствующая корзина не ошибка. При битых данных или ошибке хранилища
// возвращается пустая корзина вместе с ошибкой, чтобы вызывающий мог ее залогировать и продолжить
func Load(ctx context.Context, store Store, key string) (*Cart, error) {
	data, err := store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			return New(), nil
		}
		return New(), fmt.Errorf("load cart %s: %w", key, err)
	}

	c := New()
	if err := json.Unmarshal(data, c); err != nil {
		return New(), fmt.Errorf("%w %s: %v", ErrCorrupt, key, err)
	}

	return c, nil
}

// Update загружает корзину, применяет fn и сохраняет результат одной операцией хранилища.
// Битые данные заменяются пустой корзиной, ошибка чтения хранилища возвращается без записи
func Update(ctx context.Context, store Store, key string, fn func(c *Cart)) (*Cart, error) {
	var result *Cart
	err := store.Update(ctx, key, func(data []byte) ([]byte, error) {
		c := New()
		if data != nil {
			if err := json.Unmarshal(data, c); err != nil {
				c = New()
			}
		}

		fn(c)
		result = c

		return json.Marshal(c)
	})
	if err != nil {
		return nil, fmt.Errorf("update cart %s: %w", key, err)
	}

	return result, nil
}
