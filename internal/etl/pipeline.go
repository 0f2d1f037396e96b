package etl

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pipeline struct {
	extractor   *PostgresExtractor
	transformer *Transformer
	loader      *ElasticLoader
	logger      *zap.SugaredLogger
	interval    time.Duration
}

func NewPipeline(
	extractor *PostgresExtractor,
	transformer *Transformer,
	loader *ElasticLoader,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		interval:    interval,
	}
}

// RunOnce одна итерация extract -> transform -> load, возвращает число загруженных документов
func (p *Pipeline) RunOnce(ctx context.Context) (int, error) {
	products, err := p.extractor.ExtractNew(ctx)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	docs := p.transformer.Transform(products)

	if err = p.loader.Load(ctx, docs); err != nil {
		return 0, err
	}

	return len(docs), nil
}

// Run запускает первую итерацию сразу, дальше по тикеру до отмены ctx
func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("ETL pipeline started", "interval", p.interval)

	for {
		n, err := p.RunOnce(ctx)
		switch {
		case err != nil:
			p.logger.Errorw("ETL iteration failed", zap.Error(err))
		case n == 0:
			p.logger.Debugw("No new products to index")
		default:
			p.logger.Infof("ETL pipeline completed, successfully loaded %d docs", n)
		}

		select {
		case <-ctx.Done():
			p.logger.Infow("ETL pipeline stopped")
			return
		case <-ticker.C:
		}
	}
}
