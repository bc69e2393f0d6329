package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"microblog/internal/model"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) List(ctx context.Context, filter model.BlogFilter) ([]model.Blog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, author, author_id, tags, created_at, updated_at
		 FROM blogs
		 WHERE ($1 = '' OR author_id = $1)
		   AND ($2 = '' OR $2 = ANY(tags))
		 ORDER BY created_at DESC`,
		filter.AuthorID, filter.Tag)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0)
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.AuthorID,
			&b.Tags, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (model.Blog, error) {
	var b model.Blog
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, author, author_id, tags, created_at, updated_at
		 FROM blogs WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.AuthorID,
			&b.Tags, &b.CreatedAt, &b.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Blog{}, model.ErrBlogNotFound
	}
	if err != nil {
		return model.Blog{}, fmt.Errorf("find blog by id: %w", err)
	}
	return b, nil
}

func (r *BlogRepository) Create(ctx context.Context, b model.Blog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO blogs (id, title, content, author, author_id, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.Title, b.Content, b.Author, b.AuthorID, b.Tags, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, b model.Blog) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE blogs SET title = $2, content = $3, tags = $4, updated_at = $5
		 WHERE id = $1`,
		b.ID, b.Title, b.Content, b.Tags, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}
