package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
)

type LibraryRepository struct {
	pool *pgxpool.Pool
}

func NewLibraryRepository(pool *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{pool: pool}
}

func (r *LibraryRepository) Create(ctx context.Context, l *entity.Library) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO libraries (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`, l.Name)
	if err := row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *LibraryRepository) GetByID(ctx context.Context, id string) (*entity.Library, error) {
	l := &entity.Library{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM libraries
		WHERE id = $1
	`, id)
	if err := row.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *LibraryRepository) List(ctx context.Context) ([]entity.Library, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM libraries
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	libs := make([]entity.Library, 0)
	for rows.Next() {
		var l entity.Library
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		libs = append(libs, l)
	}
	return libs, rows.Err()
}

func (r *LibraryRepository) Update(ctx context.Context, l *entity.Library) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE libraries
		SET name = $1, updated_at = now()
		WHERE id = $2
	`, l.Name, l.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LibraryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM libraries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LibraryRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM libraries`).Scan(&n)
	return n, err
}

func (r *LibraryRepository) AttachBook(ctx context.Context, libraryID, bookID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO library_books (library_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (library_id, book_id) DO NOTHING
	`, libraryID, bookID)
	return mapError(err)
}

func (r *LibraryRepository) DetachBook(ctx context.Context, libraryID, bookID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM library_books
		WHERE library_id = $1 AND book_id = $2
	`, libraryID, bookID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LibraryRepository) ListBooks(ctx context.Context, libraryID string) ([]entity.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookColumns+`
		FROM library_books lb
		JOIN books b ON b.id = lb.book_id
		JOIN authors a ON a.id = b.author_id
		WHERE lb.library_id = $1
		ORDER BY b.publication_year DESC, b.title
	`, libraryID)
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

func (r *LibraryRepository) CreateLibrarian(ctx context.Context, lb *entity.Librarian) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO librarians (name, library_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, lb.Name, lb.LibraryID)
	if err := row.Scan(&lb.ID, &lb.CreatedAt, &lb.UpdatedAt); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *LibraryRepository) GetLibrarianByLibrary(ctx context.Context, libraryID string) (*entity.Librarian, error) {
	lb := &entity.Librarian{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, library_id, created_at, updated_at
		FROM librarians
		WHERE library_id = $1
	`, libraryID)
	if err := row.Scan(&lb.ID, &lb.Name, &lb.LibraryID, &lb.CreatedAt, &lb.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lb, nil
}

func (r *LibraryRepository) ListLibrarians(ctx context.Context) ([]entity.Librarian, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, library_id, created_at, updated_at
		FROM librarians
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Librarian, 0)
	for rows.Next() {
		var lb entity.Librarian
		if err := rows.Scan(&lb.ID, &lb.Name, &lb.LibraryID, &lb.CreatedAt, &lb.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, lb)
	}
	return out, rows.Err()
}

func (r *LibraryRepository) DeleteLibrarian(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM librarians WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.LibraryRepository = (*LibraryRepository)(nil)
