package repository

import (
	"context"

	"github.com/librarium/librarium/internal/domain/entity"
)

// BookRepository defines the interface for book persistence.
// List results carry the joined author name and are ordered by
// publication year descending, then title.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	List(ctx context.Context) ([]entity.Book, error)
	ListByAuthor(ctx context.Context, authorID string) ([]entity.Book, error)
	Update(ctx context.Context, b *entity.Book) error
	Delete(ctx context.Context, id string) error
	// DeleteMany removes the given IDs and returns how many rows went away.
	DeleteMany(ctx context.Context, ids []string) (int, error)
	// UpdatePublicationYear sets the year on all given IDs and returns the
	// number of rows touched.
	UpdatePublicationYear(ctx context.Context, ids []string, year int) (int, error)
	// ExistsByTitleAndAuthor backs the (title, author) uniqueness check with a
	// case-insensitive title match.
	ExistsByTitleAndAuthor(ctx context.Context, title, authorID string) (bool, error)
	Count(ctx context.Context) (int, error)
}
