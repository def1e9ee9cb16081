package repository

import (
	"context"

	"github.com/librarium/librarium/internal/domain/entity"
)

// LibraryRepository defines the interface for library and librarian persistence.
type LibraryRepository interface {
	Create(ctx context.Context, l *entity.Library) error
	GetByID(ctx context.Context, id string) (*entity.Library, error)
	List(ctx context.Context) ([]entity.Library, error)
	Update(ctx context.Context, l *entity.Library) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// Many-to-many book membership.
	AttachBook(ctx context.Context, libraryID, bookID string) error
	DetachBook(ctx context.Context, libraryID, bookID string) error
	ListBooks(ctx context.Context, libraryID string) ([]entity.Book, error)

	// One-to-one librarian link. CreateLibrarian fails when the library
	// already has one.
	CreateLibrarian(ctx context.Context, lb *entity.Librarian) error
	GetLibrarianByLibrary(ctx context.Context, libraryID string) (*entity.Librarian, error)
	ListLibrarians(ctx context.Context) ([]entity.Librarian, error)
	DeleteLibrarian(ctx context.Context, id string) error
}
