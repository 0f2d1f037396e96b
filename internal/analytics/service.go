package analytics

import (
	"context"

	"go.uber.org/zap"

	"muskan-shop/internal/kafka"
)

// Веса событий для популярности категорий
const (
	weightSearch      = 1
	weightView        = 2
	weightAddToCart   = 2
	weightOrderPlaced = 3
)

type Service struct {
	repo   AnalyticsRepo
	logger *zap.SugaredLogger
}

func NewService(repo AnalyticsRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.SessionID == "" {
		return nil // Игнорируем события без сессии
	}

	weights := make(map[string]int)
	switch event.Type {
	case kafka.EventTypeSearch:
		for _, cat := range event.Categories {
			weights[cat] += weightSearch
		}
	case kafka.EventTypeView:
		if len(event.Categories) > 0 {
			weights[event.Categories[0]] += weightView
		}
	case kafka.EventTypeAddToCart:
		if len(event.Categories) > 0 {
			weights[event.Categories[0]] += weightAddToCart
		}
	case kafka.EventTypeOrderPlaced:
		for _, cat := range event.Categories {
			weights[cat] += weightOrderPlaced
		}
	default:
		s.logger.Debugf("skipping event of unknown type %q", event.Type)
	}

	if len(weights) == 0 {
		return nil
	}

	return s.repo.UpdatePopularity(ctx, weights)
}

func (s *Service) GetTopCategories(ctx context.Context, limit int) ([]string, error) {
	return s.repo.GetTopCategories(ctx, limit)
}
