package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/librarium/internal/domain/entity"
)

func newAccessFixture(t *testing.T) (*AccessService, *memAccess, *memUsers) {
	t.Helper()
	access := newMemAccess()
	users := newMemUsers()
	svc := NewAccessService(access, users, nil, nil, time.Minute)
	return svc, access, users
}

func seedUser(t *testing.T, users *memUsers, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Name: "Test User", Password: "hash"}
	p := &entity.UserProfile{Role: role}
	require.NoError(t, users.Create(context.Background(), u, p))
	return u
}

func TestHasPermission(t *testing.T) {
	svc, access, users := newAccessFixture(t)
	ctx := context.Background()

	access.addGroup("g1", entity.GroupViewers, entity.PermBookView, entity.PermBookViewAll)
	u := seedUser(t, users, "member@example.com", entity.RoleMember)
	require.NoError(t, access.AddUserToGroup(ctx, u.ID, "g1"))

	ok, err := svc.HasPermission(ctx, u.ID, entity.PermBookView)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPermission(ctx, u.ID, entity.PermBookDelete)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionNoGroups(t *testing.T) {
	svc, _, users := newAccessFixture(t)
	u := seedUser(t, users, "lonely@example.com", entity.RoleMember)

	ok, err := svc.HasPermission(context.Background(), u.ID, entity.PermBookView)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetUserGroups(t *testing.T) {
	svc, access, users := newAccessFixture(t)
	ctx := context.Background()

	access.addGroup("g1", entity.GroupViewers, entity.PermBookView)
	access.addGroup("g2", entity.GroupAdmins, entity.PermBookView, entity.PermBookDelete)
	u := seedUser(t, users, "member@example.com", entity.RoleMember)
	require.NoError(t, access.AddUserToGroup(ctx, u.ID, "g1"))

	require.NoError(t, svc.SetUserGroups(ctx, u.ID, []string{entity.GroupAdmins}))

	ok, err := svc.HasPermission(ctx, u.ID, entity.PermBookDelete)
	require.NoError(t, err)
	assert.True(t, ok)

	err = svc.SetUserGroups(ctx, u.ID, []string{"Nonexistent"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.SetUserGroups(ctx, "e0000000-0000-0000-0000-000000000099", []string{entity.GroupAdmins})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetRole(t *testing.T) {
	svc, _, users := newAccessFixture(t)
	ctx := context.Background()
	u := seedUser(t, users, "member@example.com", entity.RoleMember)

	require.NoError(t, svc.SetRole(ctx, u.ID, entity.RoleLibrarian))

	role, err := svc.RoleOf(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleLibrarian, role)

	assert.ErrorIs(t, svc.SetRole(ctx, u.ID, "Superuser"), ErrInvalidRole)
	assert.ErrorIs(t, svc.SetRole(ctx, "e0000000-0000-0000-0000-000000000099", entity.RoleAdmin), ErrUserNotFound)
}

func TestRoleOfUnknownUser(t *testing.T) {
	svc, _, _ := newAccessFixture(t)
	_, err := svc.RoleOf(context.Background(), "e0000000-0000-0000-0000-000000000099")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListGroups(t *testing.T) {
	svc, access, _ := newAccessFixture(t)
	access.addGroup("g1", entity.GroupViewers, entity.PermBookView)
	access.addGroup("g2", entity.GroupAdmins, entity.PermBookDelete)

	groups, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}
