package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	myErr "muskan-shop/internal/types/errors"
)

var productColumns = []string{"id", "name", "price", "unit", "category", "image", "description", "featured"}

func setup(t *testing.T) (*ProductDBRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("ошибка при создании mock db: %s", err)
	}

	repo := NewProductDBRepository(db, zaptest.NewLogger(t).Sugar())

	return repo, mock, func() { db.Close() }
}

func TestProductDBRepository_List(t *testing.T) {
	minPrice := decimal.NewFromInt(300)
	maxPrice := decimal.NewFromInt(500)

	tests := []struct {
		name          string
		filter        Filter
		mockBehavior  func(mock sqlmock.Sqlmock)
		expectedIDs   []string
		expectedError error
	}{
		{
			name:   "без фильтра в порядке витрины",
			filter: Filter{},
			mockBehavior: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow("1", "Whole Chicken (With Skin)", "360", "kg", "Chicken", "chicken.jpg", nil, true).
					AddRow("2", "Chicken Curry Cut", "380", "kg", "Chicken", nil, nil, true)
				mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY sort_order ASC")).
					WillReturnRows(rows)
			},
			expectedIDs: []string{"1", "2"},
		},
		{
			name: "категории, цена и сортировка",
			filter: Filter{
				Categories: []string{"Chicken", "Mutton"},
				MinPrice:   &minPrice,
				MaxPrice:   &maxPrice,
				Sort:       SortPriceDesc,
			},
			mockBehavior: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow("4", "Chicken Drumsticks", "420", "kg", "Chicken", nil, nil, false)
				mock.ExpectQuery(regexp.QuoteMeta(
					"WHERE category = ANY($1) AND price >= $2 AND price <= $3 ORDER BY price DESC, name ASC",
				)).
					WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnRows(rows)
			},
			expectedIDs: []string{"4"},
		},
		{
			name:   "только избранные",
			filter: Filter{FeaturedOnly: true, Sort: SortFeatured},
			mockBehavior: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow("7", "Mutton Curry Cut", "1100", "kg", "Mutton", nil, nil, true)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE featured = TRUE ORDER BY featured DESC, sort_order ASC")).
					WillReturnRows(rows)
			},
			expectedIDs: []string{"7"},
		},
		{
			name:   "ошибка БД",
			filter: Filter{},
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM products")).
					WillReturnError(errors.New("db error"))
			},
			expectedError: myErr.ErrDBInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setup(t)
			defer cleanup()

			tt.mockBehavior(mock)

			res, err := repo.List(context.Background(), tt.filter)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				ids := make([]string, 0, len(res))
				for _, p := range res {
					ids = append(ids, p.ID)
				}
				assert.Equal(t, tt.expectedIDs, ids)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductDBRepository_GetByID(t *testing.T) {
	t.Run("найден", func(t *testing.T) {
		repo, mock, cleanup := setup(t)
		defer cleanup()

		rows := sqlmock.NewRows(productColumns).
			AddRow("2", "Chicken Curry Cut", "380", "kg", "Chicken", "pieces.jpg", "Fresh curry cut", true)
		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
			WithArgs("2").
			WillReturnRows(rows)

		p, err := repo.GetByID(context.Background(), "2")
		require.NoError(t, err)
		assert.Equal(t, "Chicken Curry Cut", p.Name)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(380)))
		assert.Equal(t, "pieces.jpg", p.Image)
		assert.Equal(t, "Fresh curry cut", p.Description)
		assert.True(t, p.Featured)
	})

	t.Run("не найден", func(t *testing.T) {
		repo, mock, cleanup := setup(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
			WithArgs("404").
			WillReturnRows(sqlmock.NewRows(productColumns))

		_, err := repo.GetByID(context.Background(), "404")
		assert.ErrorIs(t, err, myErr.ErrNotFound)
	})
}

func TestProductDBRepository_GetByIDs(t *testing.T) {
	repo, mock, cleanup := setup(t)
	defer cleanup()

	rows := sqlmock.NewRows(productColumns).
		AddRow("1", "Whole Chicken (With Skin)", "360", "kg", "Chicken", nil, nil, true).
		AddRow("18", "Prawns (Medium)", "950", "kg", "Fish & Seafood", nil, nil, true)
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	res, err := repo.GetByIDs(context.Background(), []string{"18", "missing", "1"})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "18", res[0].ID)
	assert.Equal(t, "1", res[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDBRepository_Categories(t *testing.T) {
	repo, mock, cleanup := setup(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"category"}).
		AddRow("Chicken").
		AddRow("Mutton").
		AddRow("Buffalo")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT category FROM products GROUP BY category")).
		WillReturnRows(rows)

	res, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken", "Mutton", "Buffalo"}, res)
}

func TestFilter_Validate(t *testing.T) {
	low := decimal.NewFromInt(100)
	high := decimal.NewFromInt(2000)
	negative := decimal.NewFromInt(-1)

	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{MinPrice: &low, MaxPrice: &high, Sort: SortNameDesc}.Validate())
	assert.ErrorIs(t, Filter{Sort: "random"}.Validate(), myErr.ErrInvalidSort)
	assert.ErrorIs(t, Filter{MinPrice: &high, MaxPrice: &low}.Validate(), myErr.ErrInvalidPrice)
	assert.ErrorIs(t, Filter{MinPrice: &negative}.Validate(), myErr.ErrInvalidPrice)
}
