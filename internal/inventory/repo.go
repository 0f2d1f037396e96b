package inventory

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

type InventoryDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewInventoryDBRepository(db *sql.DB, l *zap.SugaredLogger) *InventoryDBRepository {
	return &InventoryDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (ir *InventoryDBRepository) ListAll(ctx context.Context) (map[string]Status, error) {
	rows, err := ir.DB.QueryContext(ctx, `
	SELECT product_id, stock_quantity, status, low_stock_threshold
	FROM inventory`)
	if err != nil {
		ir.Logger.Errorf("Error listing inventory: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	result := make(map[string]Status)
	for rows.Next() {
		var s Status
		if err := rows.Scan(&s.ProductID, &s.StockQuantity, &s.Status, &s.LowStockThreshold); err != nil {
			ir.Logger.Errorf("Error scanning inventory: %v", err)
			return nil, myErr.ErrDBInternal
		}
		result[s.ProductID] = s
	}
	if err := rows.Err(); err != nil {
		ir.Logger.Errorf("Error iterating inventory: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return result, nil
}

func (ir *InventoryDBRepository) GetByProductID(ctx context.Context, productID string) (*Status, error) {
	var s Status
	err := ir.DB.QueryRowContext(ctx, `
	SELECT product_id, stock_quantity, status, low_stock_threshold
	FROM inventory
	WHERE product_id = $1`, productID).Scan(&s.ProductID, &s.StockQuantity, &s.Status, &s.LowStockThreshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ir.Logger.Errorf("Error getting inventory of product %s: %v", productID, err)
		return nil, myErr.ErrDBInternal
	}

	return &s, nil
}
