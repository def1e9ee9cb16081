package repository

import (
	"context"

	"github.com/librarium/librarium/internal/domain/entity"
)

// AuthorRepository defines the interface for author persistence.
type AuthorRepository interface {
	Create(ctx context.Context, a *entity.Author) error
	GetByID(ctx context.Context, id string) (*entity.Author, error)
	List(ctx context.Context) ([]entity.Author, error)
	Update(ctx context.Context, a *entity.Author) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
