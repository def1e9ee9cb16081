package repository

import (
	"context"

	"github.com/librarium/librarium/internal/domain/entity"
)

// AccessRepository resolves group membership and permission grants.
type AccessRepository interface {
	ListGroups(ctx context.Context) ([]entity.Group, error)
	GetGroupByName(ctx context.Context, name string) (*entity.Group, error)
	// UserPermissions returns the distinct permission codes granted to the
	// user through its groups.
	UserPermissions(ctx context.Context, userID string) ([]string, error)
	// SetUserGroups replaces the user's group memberships.
	SetUserGroups(ctx context.Context, userID string, groupIDs []string) error
	AddUserToGroup(ctx context.Context, userID, groupID string) error
}
