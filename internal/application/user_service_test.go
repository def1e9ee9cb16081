package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/pkg/helpers"
	"github.com/librarium/librarium/pkg/mailer"
	"github.com/librarium/librarium/pkg/sanitize"
)

type capturePublisher struct {
	jobs []mailer.EmailJob
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	if job, ok := body.(mailer.EmailJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return nil
}

func newUserFixture(t *testing.T) (*UserService, *memUsers, *memAccess, *capturePublisher) {
	t.Helper()
	users := newMemUsers()
	access := newMemAccess()
	access.addGroup("g1", entity.GroupViewers, entity.PermBookView, entity.PermBookViewAll)
	pub := &capturePublisher{}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc := NewUserService(users, access, jwt, nil, "", nil, nil, pub, true, "Librarium")
	return svc, users, access, pub
}

func TestRegister(t *testing.T) {
	svc, users, access, pub := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: " Reader@Example.COM ", Password: "password123", Name: "Jean Reader"})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", u.Email)

	// Profile is created with the default role.
	p, err := users.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, p.Role)

	// New accounts land in the Viewers group.
	perms, err := access.UserPermissions(ctx, u.ID)
	require.NoError(t, err)
	assert.Contains(t, perms, entity.PermBookView)

	// A welcome email job was enqueued.
	require.Len(t, pub.jobs, 1)
	assert.Equal(t, "reader@example.com", pub.jobs[0].To)
	assert.Equal(t, mailer.TemplateWelcome, pub.jobs[0].Template)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "password123", Name: "Jean Reader"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "password456", Name: "Other Reader"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegisterRejectsBadName(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "x@example.com", Password: "password123", Name: "<script>x</script>"})
	assert.ErrorIs(t, err, sanitize.ErrSuspicious)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "password123", Name: "Jean Reader"})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "reader@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", u.Email)

	_, err = svc.Authenticate(ctx, "reader@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "password123", Name: "Jean Reader"})
	require.NoError(t, err)

	res, pair, err := svc.Login(ctx, "reader@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, res.Role)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "password123", Name: "Jean Reader"})
	require.NoError(t, err)
	res, pair, err := svc.Login(ctx, "reader@example.com", "password123")
	require.NoError(t, err)

	newPair, uid, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, uid)

	oldClaims, err := svc.JWT.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	newClaims, err := svc.JWT.ParseRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldClaims.SessionID, newClaims.SessionID)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "password123", Name: "Jean Reader"})
	require.NoError(t, err)

	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	acc, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: "Jean R. Reader", DateOfBirth: &dob})
	require.NoError(t, err)
	assert.Equal(t, "Jean R. Reader", acc.User.Name)
	require.NotNil(t, acc.Profile.DateOfBirth)
	assert.Equal(t, dob, *acc.Profile.DateOfBirth)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jean R. Reader", stored.Name)
}

func TestUploadPhotoRejectsNonImage(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "reader@example.com", Password: "password123", Name: "Jean Reader"})
	require.NoError(t, err)

	_, err = svc.UploadPhoto(ctx, u.ID, nil, "resume.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrNotImage)
}
