package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

const selectProducts = `
	SELECT id, name, price, unit, category, image, description, featured
	FROM products`

var sortClauses = map[string]string{
	SortNameAsc:   "name ASC",
	SortNameDesc:  "name DESC",
	SortPriceAsc:  "price ASC, name ASC",
	SortPriceDesc: "price DESC, name ASC",
	SortFeatured:  "featured DESC, sort_order ASC",
}

type ProductDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewProductDBRepository(db *sql.DB, l *zap.SugaredLogger) *ProductDBRepository {
	return &ProductDBRepository{
		DB:     db,
		Logger: l,
	}
}

// List выбирает товары, условия фильтра собираются динамически
func (pr *ProductDBRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	conds := []string{}
	args := []interface{}{}
	argID := 1

	if len(f.Categories) > 0 {
		conds = append(conds, "category = ANY($"+strconv.Itoa(argID)+")")
		args = append(args, pq.Array(f.Categories))
		argID++
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= $"+strconv.Itoa(argID))
		args = append(args, *f.MinPrice)
		argID++
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= $"+strconv.Itoa(argID))
		args = append(args, *f.MaxPrice)
		argID++
	}
	if f.FeaturedOnly {
		conds = append(conds, "featured = TRUE")
	}

	query := selectProducts
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	order, ok := sortClauses[f.Sort]
	if !ok {
		order = "sort_order ASC"
	}
	query += " ORDER BY " + order // nolint:gosec

	rows, err := pr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		pr.Logger.Errorf("Error listing products: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		pr.Logger.Errorf("Error scanning products: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return products, nil
}

func (pr *ProductDBRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := pr.DB.QueryRowContext(ctx, selectProducts+" WHERE id = $1", id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		pr.Logger.Errorf("Error getting product %s: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	return p, nil
}

func (pr *ProductDBRepository) GetByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := pr.DB.QueryContext(ctx, selectProducts+" WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		pr.Logger.Errorf("Error getting products by ids: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	found, err := scanProducts(rows)
	if err != nil {
		pr.Logger.Errorf("Error scanning products: %v", err)
		return nil, myErr.ErrDBInternal
	}

	byID := make(map[string]Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}

	return products, nil
}

func (pr *ProductDBRepository) Categories(ctx context.Context) ([]string, error) {
	query := `
	SELECT category FROM products
	GROUP BY category
	ORDER BY MIN(sort_order)
	`

	rows, err := pr.DB.QueryContext(ctx, query)
	if err != nil {
		pr.Logger.Errorf("Error getting categories: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, myErr.ErrDBInternal
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		pr.Logger.Errorf("Error iterating categories: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return categories, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p           Product
		image       sql.NullString
		description sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Unit,
		&p.Category,
		&image,
		&description,
		&p.Featured,
	)
	if err != nil {
		return nil, err
	}

	p.Image = image.String
	p.Description = description.String

	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}
