package etl

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"muskan-shop/internal/catalog"
	"muskan-shop/internal/types/elastic"
	myErr "muskan-shop/internal/types/errors"
)

var productColumns = []string{"id", "name", "description", "category", "featured"}

type fakeIndexer struct {
	docs []elastic.ProductDoc
	err  error
}

func (f *fakeIndexer) BulkIndex(_ context.Context, docs []elastic.ProductDoc) error {
	f.docs = append(f.docs, docs...)
	return f.err
}

func TestPostgresExtractor_ExtractNew(t *testing.T) {
	logger := zap.NewNop().Sugar()

	tests := []struct {
		name          string
		mockQuery     func(mock sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "две строки",
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow("1", "Whole Chicken", "", "Chicken", false).
					AddRow("2", "Chicken Curry Cut", "Bone-in", "Chicken", true)
				mock.ExpectQuery(regexp.QuoteMeta(selectUnindexed)).WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "ошибка запроса",
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectUnindexed)).WillReturnError(errors.New("query failed"))
			},
			expectedError: true,
		},
		{
			name: "ошибка итерации",
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow("1", "Whole Chicken", "", "Chicken", false).
					RowError(0, errors.New("row broken"))
				mock.ExpectQuery(regexp.QuoteMeta(selectUnindexed)).WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mockQuery(mock)

			results, err := NewPostgresExtractor(db, logger).ExtractNew(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, results, tt.expectedCount)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransformer_Transform(t *testing.T) {
	transformer := NewTransformer(zap.NewNop().Sugar())

	got := transformer.Transform([]catalog.Product{
		{ID: "2", Name: " Chicken Curry Cut ", Description: "Bone-in ", Category: "Chicken", Featured: true},
		{ID: "20", Name: "Crab (On Order)", Category: "Fish & Seafood"},
	})

	assert.Equal(t, []elastic.ProductDoc{
		{ID: "2", Name: "Chicken Curry Cut", Description: "Bone-in", Category: "Chicken", Featured: true},
		{ID: "20", Name: "Crab (On Order)", Category: "Fish & Seafood"},
	}, got)

	assert.Empty(t, transformer.Transform(nil))
}

func TestElasticLoader_Load(t *testing.T) {
	docs := []elastic.ProductDoc{{ID: "1"}, {ID: "2"}}
	markQuery := regexp.QuoteMeta("UPDATE products SET indexed = TRUE WHERE id IN ($1, $2)")

	t.Run("помечает проиндексированные", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(markQuery).WithArgs("1", "2").WillReturnResult(sqlmock.NewResult(0, 2))

		idx := &fakeIndexer{}
		err = NewElasticLoader(idx, zap.NewNop().Sugar(), db).Load(context.Background(), docs)
		require.NoError(t, err)
		assert.Len(t, idx.docs, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка индекса не трогает базу", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		idx := &fakeIndexer{err: myErr.ErrIndexing}
		err = NewElasticLoader(idx, zap.NewNop().Sugar(), db).Load(context.Background(), docs)
		assert.ErrorIs(t, err, myErr.ErrIndexing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка базы", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(markQuery).WillReturnError(errors.New("db down"))

		err = NewElasticLoader(&fakeIndexer{}, zap.NewNop().Sugar(), db).Load(context.Background(), docs)
		assert.ErrorIs(t, err, myErr.ErrDBInternal)
	})

	t.Run("пустой список", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		idx := &fakeIndexer{}
		require.NoError(t, NewElasticLoader(idx, zap.NewNop().Sugar(), db).Load(context.Background(), nil))
		assert.Empty(t, idx.docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPipeline_RunOnce(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("загружает новые товары", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(selectUnindexed)).WillReturnRows(
			sqlmock.NewRows(productColumns).AddRow("7", "Mutton Curry Cut", "", "Mutton", false),
		)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET indexed = TRUE WHERE id IN ($1)")).
			WithArgs("7").
			WillReturnResult(sqlmock.NewResult(0, 1))

		idx := &fakeIndexer{}
		p := NewPipeline(NewPostgresExtractor(db, logger), NewTransformer(logger), NewElasticLoader(idx, logger, db), logger, 0)

		n, err := p.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "Mutton Curry Cut", idx.docs[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("нечего загружать", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(selectUnindexed)).WillReturnRows(sqlmock.NewRows(productColumns))

		idx := &fakeIndexer{}
		p := NewPipeline(NewPostgresExtractor(db, logger), NewTransformer(logger), NewElasticLoader(idx, logger, db), logger, 0)

		n, err := p.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, idx.docs)
	})

	t.Run("ошибка загрузки", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(selectUnindexed)).WillReturnRows(
			sqlmock.NewRows(productColumns).AddRow("7", "Mutton Curry Cut", "", "Mutton", false),
		)

		idx := &fakeIndexer{err: myErr.ErrIndexing}
		p := NewPipeline(NewPostgresExtractor(db, logger), NewTransformer(logger), NewElasticLoader(idx, logger, db), logger, 0)

		n, err := p.RunOnce(context.Background())
		assert.ErrorIs(t, err, myErr.ErrIndexing)
		assert.Zero(t, n)
	})
}
