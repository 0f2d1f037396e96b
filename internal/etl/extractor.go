package etl

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"muskan-shop/internal/catalog"
)

const selectUnindexed = `
	SELECT id, name, COALESCE(description, ''), category, featured
	FROM products
	WHERE indexed = FALSE
	ORDER BY sort_order ASC`

type PostgresExtractor struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:     db,
		Logger: logger,
	}
}

// ExtractNew достает товары, которые еще не попали в поисковый индекс
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]catalog.Product, error) {
	rows, err := e.DB.QueryContext(ctx, selectUnindexed)
	if err != nil {
		e.Logger.Errorw("Failed to execute query", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Featured); err != nil {
			e.Logger.Errorw("Failed to scan rows", zap.Error(err))
			return nil, err
		}
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		e.Logger.Errorw("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}
