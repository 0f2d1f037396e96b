package inventory

import "context"

const (
	StatusInStock    = "in_stock"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// Status складской остаток товара
type Status struct {
	ProductID         string `json:"product_id"`
	StockQuantity     int    `json:"stock_quantity"`
	Status            string `json:"status"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// Available можно ли заказать товар
func (s Status) Available() bool {
	return s.Status != StatusOutOfStock && s.StockQuantity > 0
}

// InventoryRepo интерфейс для работы с остатками
//
//go:generate mockgen -source=inventory.go -destination=../mocks/mock_inventory_repo.go -package=mocks
type InventoryRepo interface {
	// ListAll возвращает остатки всех товаров по id товара
	ListAll(ctx context.Context) (map[string]Status, error)
	// GetByProductID возвращает остаток одного товара
	GetByProductID(ctx context.Context, productID string) (*Status, error)
}
