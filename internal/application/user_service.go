package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
	"github.com/librarium/librarium/internal/infrastructure/postgres"
	"github.com/librarium/librarium/pkg/helpers"
	"github.com/librarium/librarium/pkg/mailer"
	"github.com/librarium/librarium/pkg/sanitize"
)

// EmailPublisher is the slice of the queue publisher the service needs.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService implements accounts: registration, login and session
// handling, profile reads and updates, and the profile photo upload.
type UserService struct {
	Users       repository.UserRepository
	Access      repository.AccessRepository
	JWT         *helpers.JWTManager
	GCS         *storage.Client
	GCSBucket   string
	Redis       *redis.Client
	Logger      *logrus.Logger
	Pub         EmailPublisher
	MailEnabled bool
	AppName     string
}

func NewUserService(users repository.UserRepository, access repository.AccessRepository, jwt *helpers.JWTManager, gcs *storage.Client, gcsBucket string, rdb *redis.Client, logger *logrus.Logger, pub EmailPublisher, mailEnabled bool, appName string) *UserService {
	return &UserService{
		Users:       users,
		Access:      access,
		JWT:         jwt,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
		Redis:       rdb,
		Logger:      logger,
		Pub:         pub,
		MailEnabled: mailEnabled,
		AppName:     appName,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return helpers.SessionKey(userID)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates the user with its profile (role Member), puts the new
// account into the Viewers group, and enqueues a welcome email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name, err := sanitize.CleanName(in.Name)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Email: strings.ToLower(strings.TrimSpace(in.Email)), Password: hash, Name: name}
	p := &entity.UserProfile{Role: entity.RoleMember}
	if err := s.Users.Create(ctx, u, p); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	if s.Access != nil {
		if g, err := s.Access.GetGroupByName(ctx, entity.GroupViewers); err == nil {
			if err := s.Access.AddUserToGroup(ctx, u.ID, g.ID); err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("user_id", u.ID).Warn("default group assignment failed")
			}
		} else if s.Logger != nil {
			s.Logger.WithError(err).Warn("viewers group missing; run the seed command")
		}
	}

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Name": u.Name, "AppName": s.AppName},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in
// Redis, including the profile role so middleware can gate by role
// without a database read.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	role := entity.RoleMember
	if p, err := s.Users.GetProfile(ctx, u.ID); err == nil {
		role = p.Role
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"role":       role,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

type LoginResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	res := &LoginResult{UserID: u.ID, Email: u.Email, Name: u.Name, Role: entity.RoleMember}
	if p, err := s.Users.GetProfile(ctx, u.ID); err == nil {
		res.Role = p.Role
	}
	return res, pair, nil
}

// Refresh rotates the session id and both tokens after checking the
// refresh token's sid against the active session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		key := sessionKey(u.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the Redis session so stale access tokens stop working.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil && userID != "" {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}

// AccountProfile is the user together with its profile row.
type AccountProfile struct {
	User    entity.User        `json:"user"`
	Profile entity.UserProfile `json:"profile"`
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*AccountProfile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	p, err := s.Users.GetProfile(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &AccountProfile{User: *u, Profile: *p}, nil
}

type UpdateProfileInput struct {
	Name        string
	DateOfBirth *time.Time
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*AccountProfile, error) {
	acc, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		name, err := sanitize.CleanName(in.Name)
		if err != nil {
			return nil, err
		}
		acc.User.Name = name
		if err := s.Users.Update(ctx, &acc.User); err != nil {
			return nil, err
		}
	}
	if in.DateOfBirth != nil {
		acc.Profile.DateOfBirth = in.DateOfBirth
	}
	if err := s.Users.UpdateProfile(ctx, &acc.Profile); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(userID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"name":       acc.User.Name,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return acc, nil
}

// UploadPhoto stores a profile photo in GCS and records its public URL.
func (s *UserService) UploadPhoto(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	acc, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", userID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	acc.Profile.PhotoURL = url
	if err := s.Users.UpdateProfile(ctx, &acc.Profile); err != nil {
		return "", err
	}
	return url, nil
}
