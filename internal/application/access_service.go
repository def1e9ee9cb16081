package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
	"github.com/librarium/librarium/internal/infrastructure/postgres"
)

// AccessService resolves permissions and roles. Permission sets are
// cached in Redis per user and invalidated whenever group membership
// changes, so the hot path in middleware stays off the database.
type AccessService struct {
	Access   repository.AccessRepository
	Users    repository.UserRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewAccessService(access repository.AccessRepository, users repository.UserRepository, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *AccessService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AccessService{Access: access, Users: users, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

func permCacheKey(userID string) string {
	return "user:perms:" + userID
}

// HasPermission reports whether the user holds the permission code
// through any of its groups.
func (s *AccessService) HasPermission(ctx context.Context, userID, perm string) (bool, error) {
	perms, err := s.permissions(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if p == perm {
			return true, nil
		}
	}
	return false, nil
}

func (s *AccessService) permissions(ctx context.Context, userID string) ([]string, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, permCacheKey(userID)).Result(); err == nil {
			if cached == "" {
				return nil, nil
			}
			return strings.Split(cached, ","), nil
		}
	}

	perms, err := s.Access.UserPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, permCacheKey(userID), strings.Join(perms, ","), s.CacheTTL).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("permission cache write failed")
		}
	}
	return perms, nil
}

func (s *AccessService) invalidate(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, permCacheKey(userID)).Err()
	}
}

// RoleOf returns the profile role for the user.
func (s *AccessService) RoleOf(ctx context.Context, userID string) (string, error) {
	p, err := s.Users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return p.Role, nil
}

func (s *AccessService) ListGroups(ctx context.Context) ([]entity.Group, error) {
	return s.Access.ListGroups(ctx)
}

// UserPermissions returns the resolved permission codes, bypassing the
// cache so admin views always see current state.
func (s *AccessService) UserPermissions(ctx context.Context, userID string) ([]string, error) {
	return s.Access.UserPermissions(ctx, userID)
}

// SetUserGroups replaces the user's group memberships by name and drops
// the cached permission set.
func (s *AccessService) SetUserGroups(ctx context.Context, userID string, groupNames []string) error {
	if u, err := s.Users.GetByID(ctx, userID); err != nil || u == nil {
		return ErrUserNotFound
	}
	ids := make([]string, 0, len(groupNames))
	for _, name := range groupNames {
		g, err := s.Access.GetGroupByName(ctx, strings.TrimSpace(name))
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		ids = append(ids, g.ID)
	}
	if err := s.Access.SetUserGroups(ctx, userID, ids); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "groups": groupNames}).Info("user groups updated")
	}
	return nil
}

// SetRole updates the profile role. Role changes also drop the cached
// permission set since seeded role groups mirror roles.
func (s *AccessService) SetRole(ctx context.Context, userID, role string) error {
	if !entity.ValidRole(role) {
		return ErrInvalidRole
	}
	if u, err := s.Users.GetByID(ctx, userID); err != nil || u == nil {
		return ErrUserNotFound
	}
	if err := s.Users.SetRole(ctx, userID, role); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	// Keep the session role in sync so role middleware sees the change
	// without a re-login.
	if s.Redis != nil {
		key := sessionKey(userID)
		if n, err := s.Redis.Exists(ctx, key).Result(); err == nil && n > 0 {
			_ = s.Redis.HSet(ctx, key, "role", role).Err()
		}
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "role": role}).Info("role updated")
	}
	return nil
}
