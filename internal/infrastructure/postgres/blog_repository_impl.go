package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, thumbnail, content, author_name, author_email, author_role, status, created_at, updated_at`

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, thumbnail, content, author_name, author_email, author_role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Thumbnail, b.Content, b.AuthorName, b.AuthorEmail, b.AuthorRole, b.Status)
	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	b := &entity.Blog{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+blogColumns+` FROM blogs WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.Thumbnail, &b.Content, &b.AuthorName, &b.AuthorEmail,
		&b.AuthorRole, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) List(ctx context.Context, status entity.BlogStatus) ([]entity.Blog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+blogColumns+` FROM blogs
		WHERE status = COALESCE(NULLIF($1, ''), status)
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := make([]entity.Blog, 0)
	for rows.Next() {
		b := entity.Blog{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Thumbnail, &b.Content, &b.AuthorName,
			&b.AuthorEmail, &b.AuthorRole, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) UpdateStatus(ctx context.Context, id string, status entity.BlogStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE blogs SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
