package analytics

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

const upsertPopularity = `
	INSERT INTO category_popularity (category, weight)
	VALUES ($1, $2)
	ON CONFLICT (category)
	DO UPDATE SET weight = category_popularity.weight + EXCLUDED.weight, updated_at = NOW()
`

// Тест UpdatePopularity: для каждой категории выполняется INSERT ... ON CONFLICT ...
// в алфавитном порядке, транзакция коммитится.
func TestRepository_UpdatePopularity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening a stub database connection: %s", err)
	}
	defer db.Close()

	repo := NewRepository(db, zapTestLogger(t))

	weights := map[string]int{
		"Mutton":  3,
		"Chicken": 1,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertPopularity)).
		WithArgs("Chicken", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertPopularity)).
		WithArgs("Mutton", 3).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.UpdatePopularity(context.Background(), weights); err != nil {
		t.Errorf("UpdatePopularity returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRepository_UpdatePopularity_Rollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening a stub database connection: %s", err)
	}
	defer db.Close()

	repo := NewRepository(db, zapTestLogger(t))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertPopularity)).
		WithArgs("Buffalo", 2).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	if err := repo.UpdatePopularity(context.Background(), map[string]int{"Buffalo": 2}); err == nil {
		t.Error("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// Тест GetTopCategories: возвращаются именно те категории, которые «лежат» в rows.
func TestRepository_GetTopCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening a stub database connection: %s", err)
	}
	defer db.Close()

	repo := NewRepository(db, zapTestLogger(t))
	limit := 2

	rows := sqlmock.NewRows([]string{"category"}).
		AddRow("Mutton").
		AddRow("Chicken")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT category
		FROM category_popularity
		ORDER BY weight DESC, category ASC
		LIMIT $1
	`)).
		WithArgs(limit).
		WillReturnRows(rows)

	result, err := repo.GetTopCategories(context.Background(), limit)
	if err != nil {
		t.Fatalf("GetTopCategories returned error: %v", err)
	}

	expected := []string{"Mutton", "Chicken"}
	if len(result) != len(expected) {
		t.Fatalf("expected %d items, got %d", len(expected), len(result))
	}
	for i := range expected {
		if result[i] != expected[i] {
			t.Errorf("expected category %s at position %d, got %s", expected[i], i, result[i])
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// Вспомогательная функция для создания логгера в тестах.
func zapTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	logger, err := zap.NewDevelopmentConfig().Build(zap.AddCallerSkip(1))
	if err != nil {
		t.Fatalf("failed to create zap logger: %v", err)
	}
	return logger.Sugar()
}
