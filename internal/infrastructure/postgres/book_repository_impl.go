package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `
	b.id, b.title, b.author_id, a.name, b.publication_year, b.created_at, b.updated_at
`

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.AuthorID, &b.AuthorName,
		&b.PublicationYear, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, author_id, publication_year)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, b.Title, b.AuthorID, b.PublicationYear)
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	b := &entity.Book{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookColumns+`
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1
	`, id)
	if err := scanBook(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookRepository) List(ctx context.Context) ([]entity.Book, error) {
	return r.queryBooks(ctx, `
		SELECT `+bookColumns+`
		FROM books b
		JOIN authors a ON a.id = b.author_id
		ORDER BY b.publication_year DESC, b.title
	`)
}

func (r *BookRepository) ListByAuthor(ctx context.Context, authorID string) ([]entity.Book, error) {
	return r.queryBooks(ctx, `
		SELECT `+bookColumns+`
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.author_id = $1
		ORDER BY b.publication_year DESC, b.title
	`, authorID)
}

func (r *BookRepository) queryBooks(ctx context.Context, sql string, args ...any) ([]entity.Book, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]entity.Book, 0)
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookRepository) Update(ctx context.Context, b *entity.Book) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE books
		SET title = $1, author_id = $2, publication_year = $3, updated_at = now()
		WHERE id = $4
	`, b.Title, b.AuthorID, b.PublicationYear, b.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return int(res.RowsAffected()), nil
}

func (r *BookRepository) UpdatePublicationYear(ctx context.Context, ids []string, year int) (int, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE books
		SET publication_year = $1, updated_at = now()
		WHERE id = ANY($2)
	`, year, ids)
	if err != nil {
		return 0, err
	}
	return int(res.RowsAffected()), nil
}

func (r *BookRepository) ExistsByTitleAndAuthor(ctx context.Context, title, authorID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM books WHERE lower(title) = lower($1) AND author_id = $2
		)
	`, title, authorID).Scan(&exists)
	return exists, err
}

func (r *BookRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&n)
	return n, err
}

var _ repository.BookRepository = (*BookRepository)(nil)
