package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
)

type AuthorRepository struct {
	pool *pgxpool.Pool
}

func NewAuthorRepository(pool *pgxpool.Pool) *AuthorRepository {
	return &AuthorRepository{pool: pool}
}

func (r *AuthorRepository) Create(ctx context.Context, a *entity.Author) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO authors (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`, a.Name)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *AuthorRepository) GetByID(ctx context.Context, id string) (*entity.Author, error) {
	a := &entity.Author{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM authors
		WHERE id = $1
	`, id)
	if err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AuthorRepository) List(ctx context.Context) ([]entity.Author, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM authors
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]entity.Author, 0)
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *AuthorRepository) Update(ctx context.Context, a *entity.Author) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE authors
		SET name = $1, updated_at = now()
		WHERE id = $2
	`, a.Name, a.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AuthorRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM authors`).Scan(&n)
	return n, err
}

var _ repository.AuthorRepository = (*AuthorRepository)(nil)
