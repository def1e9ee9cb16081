package repository

import (
	"context"

	"github.com/librarium/librarium/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Create inserts the user and its profile row in one transaction, so a user
// can never exist without a profile.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User, p *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Count(ctx context.Context) (int, error)

	GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, p *entity.UserProfile) error
	SetRole(ctx context.Context, userID, role string) error
}
