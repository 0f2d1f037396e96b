package blog

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

const selectPosts = `
	SELECT id, title, slug, content, excerpt, featured_image, author, published, created_at, updated_at
	FROM blog_posts`

type PostDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostDBRepository(db *sql.DB, l *zap.SugaredLogger) *PostDBRepository {
	return &PostDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (pr *PostDBRepository) ListPublished(ctx context.Context, limit int) ([]Post, error) {
	query := selectPosts + `
	WHERE published = TRUE
	ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := pr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		pr.Logger.Errorf("Error listing blog posts: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			pr.Logger.Errorf("Error scanning blog post: %v", err)
			return nil, myErr.ErrDBInternal
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		pr.Logger.Errorf("Error iterating blog posts: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return posts, nil
}

func (pr *PostDBRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	row := pr.DB.QueryRowContext(ctx, selectPosts+`
	WHERE slug = $1 AND published = TRUE`, slug)

	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		pr.Logger.Errorf("Error getting blog post %s: %v", slug, err)
		return nil, myErr.ErrDBInternal
	}

	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPost при пустом анонсе собирает его из текста статьи
func scanPost(s rowScanner) (*Post, error) {
	var (
		p       Post
		excerpt sql.NullString
		image   sql.NullString
	)

	err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &excerpt, &image, &p.Author, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Excerpt = excerpt.String
	if p.Excerpt == "" {
		p.Excerpt = Excerpt(p.Content, ExcerptLength)
	}
	p.FeaturedImage = image.String

	return &p, nil
}
