package analytics

import (
	"context"

	"muskan-shop/internal/kafka"
)

// AnalyticsRepo интерфейс репозитория популярности категорий.
type AnalyticsRepo interface {
	UpdatePopularity(ctx context.Context, weights map[string]int) error
	GetTopCategories(ctx context.Context, limit int) ([]string, error)
}

// AnalyticsService интерфейс сервиса аналитики.
type AnalyticsService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	GetTopCategories(ctx context.Context, limit int) ([]string, error)
}
