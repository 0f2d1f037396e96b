package blog

import (
	"context"
	"time"
)

// Post статья блога, content хранится в HTML
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Author        string    `json:"author"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PostRepo интерфейс для работы со статьями
//
//go:generate mockgen -source=blog.go -destination=../mocks/mock_blog_repo.go -package=mocks
type PostRepo interface {
	// ListPublished возвращает опубликованные статьи, новые первыми. limit <= 0 значит все
	ListPublished(ctx context.Context, limit int) ([]Post, error)
	// GetBySlug возвращает опубликованную статью по slug
	GetBySlug(ctx context.Context, slug string) (*Post, error)
}
