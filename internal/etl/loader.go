package etl

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"muskan-shop/internal/types/elastic"
	myErr "muskan-shop/internal/types/errors"
)

// Indexer куда загружаются документы
type Indexer interface {
	BulkIndex(ctx context.Context, docs []elastic.ProductDoc) error
}

type ElasticLoader struct {
	Indexer Indexer
	Logger  *zap.SugaredLogger
	DB      *sql.DB
}

func NewElasticLoader(indexer Indexer, logger *zap.SugaredLogger, db *sql.DB) *ElasticLoader {
	return &ElasticLoader{
		Indexer: indexer,
		Logger:  logger,
		DB:      db,
	}
}

// Load загружает документы в индекс и помечает товары как проиндексированные
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.ProductDoc) error {
	if len(docs) == 0 {
		l.Logger.Infow("No documents to load")
		return nil
	}

	l.Logger.Infow("Loading documents to Elasticsearch", "count", len(docs))
	if err := l.Indexer.BulkIndex(ctx, docs); err != nil {
		l.Logger.Errorw("Failed to bulk index documents", zap.Error(err))
		return err
	}

	ids := make([]interface{}, len(docs))
	placeholders := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"UPDATE products SET indexed = TRUE WHERE id IN (%s)",
		strings.Join(placeholders, ", "),
	)

	if _, err := l.DB.ExecContext(ctx, query, ids...); err != nil {
		l.Logger.Errorw("Failed to mark products as indexed", zap.Error(err))
		return myErr.ErrDBInternal
	}

	l.Logger.Infow("Successfully indexed documents", "count", len(docs))

	return nil
}
