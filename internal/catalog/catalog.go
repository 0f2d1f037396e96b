package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	myErr "muskan-shop/internal/types/errors"
)

const (
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortFeatured  = "featured"
)

// AllCategories псевдо-категория для витрины, означает отсутствие фильтра
const AllCategories = "All"

// Product товар каталога
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Featured    bool            `json:"featured,omitempty"`
}

// Filter параметры выборки каталога
type Filter struct {
	Categories   []string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	FeaturedOnly bool
	Sort         string
}

// Validate проверяет сортировку и диапазон цен
func (f Filter) Validate() error {
	if f.Sort != "" {
		if _, ok := sortClauses[f.Sort]; !ok {
			return myErr.ErrInvalidSort
		}
	}

	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return myErr.ErrInvalidPrice
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return myErr.ErrInvalidPrice
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return myErr.ErrInvalidPrice
	}

	return nil
}

// ProductRepo интерфейс репозитория каталога
//
//go:generate mockgen -source=catalog.go -destination=../mocks/mock_product_repo.go -package=mocks
type ProductRepo interface {
	// List возвращает товары по фильтру
	List(ctx context.Context, f Filter) ([]Product, error)
	// GetByID возвращает товар по id
	GetByID(ctx context.Context, id string) (*Product, error)
	// GetByIDs возвращает товары в порядке переданных id, отсутствующие пропускаются
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	// Categories возвращает категории в порядке витрины
	Categories(ctx context.Context) ([]string, error)
}
