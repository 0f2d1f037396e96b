package analytics

import (
	"context"
	"database/sql"
	"sort"

	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// UpdatePopularity прибавляет веса категориям в одной транзакции.
// Категории обходятся по алфавиту, чтобы параллельные транзакции брали блокировки в одном порядке
func (r *Repository) UpdatePopularity(ctx context.Context, weights map[string]int) error {
	categories := make([]string, 0, len(weights))
	for c := range weights {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	for _, category := range categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO category_popularity (category, weight)
			VALUES ($1, $2)
			ON CONFLICT (category)
			DO UPDATE SET weight = category_popularity.weight + EXCLUDED.weight, updated_at = NOW()
		`, category, weights[category])

		if err != nil {
			r.logger.Errorf("Failed to update popularity of %s: %v", category, err)
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetTopCategories(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category
		FROM category_popularity
		ORDER BY weight DESC, category ASC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}
