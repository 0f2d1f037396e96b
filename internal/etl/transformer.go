package etl

import (
	"strings"

	"go.uber.org/zap"

	"muskan-shop/internal/catalog"
	"muskan-shop/internal/types/elastic"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform переводит товары каталога в документы поискового индекса
func (t *Transformer) Transform(input []catalog.Product) []elastic.ProductDoc {
	docs := make([]elastic.ProductDoc, 0, len(input))
	for _, p := range input {
		docs = append(docs, elastic.ProductDoc{
			ID:          p.ID,
			Name:        strings.TrimSpace(p.Name),
			Description: strings.TrimSpace(p.Description),
			Category:    p.Category,
			Featured:    p.Featured,
		})
	}

	t.Logger.Infof("Transformed %d docs successfully", len(input))

	return docs
}
